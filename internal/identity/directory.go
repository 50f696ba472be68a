// Package identity provides the self-asserted test-user directory, the
// signed tokens that carry the chosen user between requests, and the request
// context plumbing for the acting user.
package identity

import (
	"fmt"
	"slices"

	"github.com/ustinerary/planner/internal/domain"
)

// TestUsers is the built-in directory: three admins, two contributors and a viewer.
var TestUsers = []domain.User{
	{ID: "u1", Name: "Steve Rogers", Email: "steve@example.com", Role: domain.RoleAdmin},
	{ID: "u2", Name: "Peter Parker", Email: "peter@example.com", Role: domain.RoleAdmin},
	{ID: "u3", Name: "Bruce Wayne", Email: "bruce@example.com", Role: domain.RoleAdmin},
	{ID: "u4", Name: "Clark Kent", Email: "clark@example.com", Role: domain.RoleContributor},
	{ID: "u5", Name: "Matt Murdock", Email: "matt@example.com", Role: domain.RoleContributor},
	{ID: "u6", Name: "Dick Grayson", Email: "richard@example.com", Role: domain.RoleViewer},
}

// Directory is an immutable list of known users.
type Directory struct {
	users []domain.User
}

// NewDirectory returns a directory over users. Unknown role names are
// normalized to viewer.
func NewDirectory(users []domain.User) *Directory {
	d := &Directory{users: slices.Clone(users)}
	for i := range d.users {
		d.users[i].Role = domain.NormalizeRole(string(d.users[i].Role))
	}
	return d
}

// List returns every user in directory order.
func (d *Directory) List() []domain.User {
	return slices.Clone(d.users)
}

// Lookup returns the user with id or domain.ErrNotFound.
func (d *Directory) Lookup(id string) (domain.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: user %q", domain.ErrNotFound, id)
}
