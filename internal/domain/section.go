package domain

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Built-in section keys. These exist on every trip and can be neither
// renamed nor deleted.
const (
	SectionHotels        = "hotels"
	SectionAirTravel     = "airTravel"
	SectionGroundTransit = "groundTransit"
	SectionAttractions   = "attractions"
	SectionFoodDining    = "foodDining"
	SectionPackList      = "packList"
)

// BuiltInSections lists the built-in keys in display order.
var BuiltInSections = []string{
	SectionHotels,
	SectionAirTravel,
	SectionGroundTransit,
	SectionAttractions,
	SectionFoodDining,
	SectionPackList,
}

var defaultItems = map[string][]string{
	SectionHotels:        {"Book hotel rooms", "Confirm reservations", "Check-in online"},
	SectionAirTravel:     {"Book flights", "Check baggage policy", "Print boarding passes"},
	SectionGroundTransit: {"Arrange airport transfer", "Rent car", "Check public transit options"},
	SectionAttractions:   {"Research must-see places", "Buy tickets in advance", "Plan daily itinerary"},
	SectionFoodDining:    {"Find popular restaurants", "Make reservations", "Check dietary options"},
	SectionPackList:      {"Clothes", "Travel documents", "Electronics & chargers"},
}

// IsBuiltIn reports whether key names one of the built-in sections.
func IsBuiltIn(key string) bool {
	return slices.Contains(BuiltInSections, key)
}

// DeriveSectionKey turns a user-entered section name into its key:
// whitespace and non-alphanumerics are stripped and the first character is
// lower-cased, so "Visa Tasks" becomes "visaTasks".
func DeriveSectionKey(name string) (string, error) {
	var b strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	key := b.String()
	if key == "" {
		return "", fmt.Errorf("%w: section name must contain a letter or digit", ErrValidation)
	}
	return strings.ToLower(key[:1]) + key[1:], nil
}

// Checklist holds the sections of one trip and their plain checklist items.
// Order keeps display order; Items is keyed by section key. Checkbox state
// is a view concern and is not stored.
type Checklist struct {
	Order []string            `json:"order"`
	Items map[string][]string `json:"items"`
}

// DefaultChecklist returns the built-in sections seeded with their default items.
func DefaultChecklist() Checklist {
	c := Checklist{Items: map[string][]string{}}
	for _, key := range BuiltInSections {
		c.Order = append(c.Order, key)
		c.Items[key] = slices.Clone(defaultItems[key])
	}
	return c
}

// Has reports whether the checklist contains a section with key.
func (c Checklist) Has(key string) bool {
	_, ok := c.Items[key]
	return ok
}

// Add appends a new empty section.
func (c *Checklist) Add(key string) {
	if c.Items == nil {
		c.Items = map[string][]string{}
	}
	c.Items[key] = []string{}
	c.Order = append(c.Order, key)
}

// Rename moves the items of oldKey to newKey, keeping its display position.
func (c *Checklist) Rename(oldKey, newKey string) {
	c.Items[newKey] = c.Items[oldKey]
	delete(c.Items, oldKey)
	if i := slices.Index(c.Order, oldKey); i >= 0 {
		c.Order[i] = newKey
	} else {
		c.Order = append(c.Order, newKey)
	}
}

// Remove deletes the section and its items.
func (c *Checklist) Remove(key string) {
	delete(c.Items, key)
	c.Order = slices.DeleteFunc(c.Order, func(k string) bool { return k == key })
}

// Sections returns the section keys in display order. Keys present in Items
// but missing from Order (e.g. hand-edited data) are appended at the end.
func (c Checklist) Sections() []string {
	out := make([]string, 0, len(c.Items))
	seen := map[string]bool{}
	for _, k := range c.Order {
		if _, ok := c.Items[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range c.Items {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}
