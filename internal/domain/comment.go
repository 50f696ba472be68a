package domain

import "time"

// Comment is one message in a section's discussion. Comments are displayed
// oldest first.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	AvatarURL string    `json:"avatarUrl"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Fallback author fields used when a guest posts a comment.
const (
	GuestUserID   = "anon"
	GuestUserName = "Traveler"
)
