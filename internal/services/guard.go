package services

import "github.com/localnerve/jam-build-bookmarks/internal/types"

// AuthorizeOwner allows a mutation only when the verified caller owns the resource
func AuthorizeOwner(claims *Claims, ownerID string) error {
	if claims == nil {
		return types.NewInvalidToken()
	}
	if claims.UserID != ownerID {
		return types.NewForbidden()
	}
	return nil
}
