package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the moderation state of a detail entry.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	return s == StatusApproved || s == StatusPending || s == StatusRejected
}

// DefaultStatus is the initial status of an entry authored by role:
// contributor entries wait for approval, everyone else's are approved.
func DefaultStatus(role Role) Status {
	if role == RoleContributor {
		return StatusPending
	}
	return StatusApproved
}

// Transition validates a status change. Moving to the current state is
// allowed and changes nothing.
func Transition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	if from == to {
		return nil
	}
	switch {
	case from == StatusPending && (to == StatusApproved || to == StatusRejected),
		from == StatusRejected && to == StatusApproved,
		from == StatusApproved && to == StatusRejected:
		return nil
	}
	return fmt.Errorf("%w: cannot move entry from %s to %s", ErrValidation, from, to)
}

// DetailEntry is one structured record (e.g. one hotel stay) attached to a
// section. Entries are addressed by ID; their position in the section's list
// is display order only.
type DetailEntry struct {
	ID             string
	Status         Status
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Notes          string
	PollingEnabled bool
	Details        Details
}

// DetailInput carries a create (EntryID empty) or update (EntryID set) of an entry.
// StatusOverride replaces the stored status on update and is honoured for admins only.
type DetailInput struct {
	EntryID        string
	Notes          string
	PollingEnabled bool
	Details        Details
	StatusOverride *Status
}

// EntryView is an entry as seen by a particular user.
type EntryView struct {
	DetailEntry
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

// Visible reports whether user may see e: admins see everything, everyone
// sees approved entries, and authors see their own pending entries.
func Visible(e DetailEntry, user ActingUser) bool {
	switch {
	case user.IsAdmin():
		return true
	case e.Status == StatusApproved:
		return true
	case e.Status == StatusPending:
		return !user.IsGuest() && e.CreatedBy == user.ID
	default:
		return false
	}
}

// CanModify reports whether user may edit or delete e.
func CanModify(e DetailEntry, user ActingUser) bool {
	if user.IsAdmin() {
		return true
	}
	return e.Status == StatusPending && user.IsContributor() && e.CreatedBy == user.ID
}

type entryJSON struct {
	ID             string          `json:"id"`
	Kind           DetailKind      `json:"kind"`
	Status         Status          `json:"status"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Notes          string          `json:"notes"`
	PollingEnabled bool            `json:"pollingEnabled"`
	Details        json.RawMessage `json:"details,omitempty"`
}

// MarshalJSON writes the entry with its variant tagged by "kind".
func (e DetailEntry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		ID:             e.ID,
		Kind:           KindNote,
		Status:         e.Status,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Notes:          e.Notes,
		PollingEnabled: e.PollingEnabled,
	}
	if e.Details != nil {
		out.Kind = e.Details.Kind()
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return nil, err
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads an entry written by MarshalJSON.
func (e *DetailEntry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	details, err := DecodeDetails(in.Kind, in.Details)
	if err != nil {
		return err
	}
	*e = DetailEntry{
		ID:             in.ID,
		Status:         in.Status,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      in.CreatedAt,
		UpdatedAt:      in.UpdatedAt,
		Notes:          in.Notes,
		PollingEnabled: in.PollingEnabled,
		Details:        details,
	}
	if !e.Status.Valid() {
		e.Status = StatusApproved
	}
	return nil
}

// MarshalJSON flattens the view so the permission flags sit next to the entry fields.
func (v EntryView) MarshalJSON() ([]byte, error) {
	entry, err := json.Marshal(v.DetailEntry)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, err
	}
	fields["canEdit"], _ = json.Marshal(v.CanEdit)
	fields["canDelete"], _ = json.Marshal(v.CanDelete)
	return json.Marshal(fields)
}

// SectionDetails holds every detail entry of one trip keyed by section.
type SectionDetails map[string][]DetailEntry

// Find returns the position of entry id within section key.
func (d SectionDetails) Find(key, id string) (int, bool) {
	for i, e := range d[key] {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Lookup searches every section for entry id.
func (d SectionDetails) Lookup(id string) (DetailEntry, string, bool) {
	for key, entries := range d {
		for _, e := range entries {
			if e.ID == id {
				return e, key, true
			}
		}
	}
	return DetailEntry{}, "", false
}
