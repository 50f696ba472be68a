package domain

// Profile is the editable personal profile of a signed-in user.
// AvatarURL may hold an embedded image and is the first field dropped when
// the store runs out of space.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ProfileSaveResult reports how a profile save was degraded, if at all.
type ProfileSaveResult struct {
	AvatarDropped bool `json:"avatarDropped"`
}
