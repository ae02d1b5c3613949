package models

import "time"

// The view types are the public JSON shape of the records. Internal columns and
// the password hash never leave the service.

// OwnerView is the reduced user projection embedded in bookmarks
type OwnerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// OwnedBookmarkView is the reduced bookmark projection embedded in users
type OwnedBookmarkView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	LikesCount int64     `json:"likesCount"`
}

type BookmarkView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	User        *OwnerView `json:"user"`
	Likes       []string   `json:"likes"`
	LikesCount  int64      `json:"likesCount"`
}

type UserView struct {
	ID        string              `json:"id"`
	Username  string              `json:"username"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	FullName  string              `json:"fullName"`
	JoinDate  time.Time           `json:"joinDate"`
	Bookmarks []OwnedBookmarkView `json:"bookmarks"`
}

// NewBookmarkView converts a bookmark, with its owner and likes preloaded, to its public form
func NewBookmarkView(b *Bookmark) BookmarkView {
	view := BookmarkView{
		ID:          b.ID,
		Title:       b.Title,
		URL:         b.URL,
		Description: b.Description,
		Date:        b.Date,
		Likes:       make([]string, 0, len(b.Likes)),
		LikesCount:  b.LikesCount,
	}
	if b.User != nil {
		view.User = &OwnerView{
			ID:       b.User.ID,
			Username: b.User.Username,
			FullName: b.User.FullName,
		}
	}
	for _, like := range b.Likes {
		view.Likes = append(view.Likes, like.UserID)
	}
	return view
}

// NewBookmarkViews converts a list of bookmarks
func NewBookmarkViews(bookmarks []Bookmark) []BookmarkView {
	views := make([]BookmarkView, 0, len(bookmarks))
	for i := range bookmarks {
		views = append(views, NewBookmarkView(&bookmarks[i]))
	}
	return views
}

// NewUserView converts a user, with bookmarks preloaded, to its public form
func NewUserView(u *User) UserView {
	view := UserView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		JoinDate:  u.JoinDate,
		Bookmarks: make([]OwnedBookmarkView, 0, len(u.Bookmarks)),
	}
	for _, b := range u.Bookmarks {
		view.Bookmarks = append(view.Bookmarks, OwnedBookmarkView{
			ID:         b.ID,
			Title:      b.Title,
			Date:       b.Date,
			LikesCount: b.LikesCount,
		})
	}
	return view
}

// NewUserViews converts a list of users
func NewUserViews(users []User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views
}
