package domain

// Role is the permission tier of the acting user.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleContributor Role = "contributor"
	RoleViewer      Role = "viewer"
)

// NormalizeRole maps unknown or empty role names to RoleViewer.
func NormalizeRole(role string) Role {
	switch Role(role) {
	case RoleAdmin, RoleContributor, RoleViewer:
		return Role(role)
	default:
		return RoleViewer
	}
}

// User is an identity known to the role provider.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	Role      Role   `json:"role"`
}

// ActingUser is the identity on whose behalf a workflow call runs.
// It is passed explicitly into every service method that checks permissions.
// The zero value is the guest: no identity, read-only visibility.
type ActingUser struct {
	ID        string
	Name      string
	AvatarURL string
	Role      Role
}

// Acting converts a directory user into the value passed to workflow calls.
func (u User) Acting() ActingUser {
	return ActingUser{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL, Role: u.Role}
}

// IsGuest reports whether no user is signed in.
func (a ActingUser) IsGuest() bool { return a.ID == "" }

// IsAdmin reports whether the user may perform admin-only mutations.
func (a ActingUser) IsAdmin() bool { return !a.IsGuest() && a.Role == RoleAdmin }

// IsContributor reports whether the user is a signed-in contributor.
func (a ActingUser) IsContributor() bool { return !a.IsGuest() && a.Role == RoleContributor }
