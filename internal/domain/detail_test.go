package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
)

var (
	admin       = domain.ActingUser{ID: "u1", Name: "Steve Rogers", Role: domain.RoleAdmin}
	contributor = domain.ActingUser{ID: "u4", Name: "Clark Kent", Role: domain.RoleContributor}
	other       = domain.ActingUser{ID: "u5", Name: "Matt Murdock", Role: domain.RoleContributor}
	viewer      = domain.ActingUser{ID: "u6", Name: "Dick Grayson", Role: domain.RoleViewer}
	guest       = domain.ActingUser{}
)

// ---- date/time pairs -------------------------------------------------------

func TestHotelDetails_CheckoutBeforeCheckinSameDay(t *testing.T) {
	d := domain.HotelDetails{
		CheckIn: "2025-06-10", CheckInTime: "18:00",
		CheckOut: "2025-06-10", CheckOutTime: "10:00",
	}

	err := d.Validate()

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "check-out must not be before check-in")
}

func TestHotelDetails_SameInstantIsValid(t *testing.T) {
	d := domain.HotelDetails{
		CheckIn: "2025-06-10", CheckInTime: "10:00",
		CheckOut: "2025-06-10", CheckOutTime: "10:00",
	}

	assert.NoError(t, d.Validate())
}

func TestHotelDetails_MissingHalfSkipsCheck(t *testing.T) {
	d := domain.HotelDetails{CheckIn: "2025-06-10", CheckInTime: "18:00"}

	assert.NoError(t, d.Validate())
}

func TestFlightDetails_MissingTimeMeansMidnight(t *testing.T) {
	// Arrival on the same day without a time is midnight, which precedes 09:00.
	d := domain.FlightDetails{
		DepartureDate: "2025-06-10", DepartureTime: "09:00",
		ArrivalDate: "2025-06-10",
	}

	err := d.Validate()

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "arrival")
}

func TestTransitDetails_BadDate(t *testing.T) {
	d := domain.TransitDetails{PickupDate: "10/06/2025"}

	assert.ErrorIs(t, d.Validate(), domain.ErrValidation)
}

func TestTransitDetails_DropoffNextDay(t *testing.T) {
	d := domain.TransitDetails{
		PickupDate: "2025-06-10", PickupTime: "23:00",
		DropoffDate: "2025-06-11", DropoffTime: "01:00",
	}

	assert.NoError(t, d.Validate())
}

func TestKindForSection(t *testing.T) {
	assert.Equal(t, domain.KindHotel, domain.KindForSection("hotels"))
	assert.Equal(t, domain.KindFlight, domain.KindForSection("airTravel"))
	assert.Equal(t, domain.KindTransit, domain.KindForSection("groundTransit"))
	assert.Equal(t, domain.KindAttraction, domain.KindForSection("attractions"))
	assert.Equal(t, domain.KindDining, domain.KindForSection("foodDining"))
	assert.Equal(t, domain.KindNote, domain.KindForSection("packList"))
	assert.Equal(t, domain.KindNote, domain.KindForSection("visaTasks"))
}

// ---- status machine --------------------------------------------------------

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, domain.StatusApproved, domain.DefaultStatus(domain.RoleAdmin))
	assert.Equal(t, domain.StatusPending, domain.DefaultStatus(domain.RoleContributor))
	assert.Equal(t, domain.StatusApproved, domain.DefaultStatus(domain.RoleViewer))
}

func TestTransition(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		ok       bool
	}{
		{domain.StatusPending, domain.StatusApproved, true},
		{domain.StatusPending, domain.StatusRejected, true},
		{domain.StatusRejected, domain.StatusApproved, true},
		{domain.StatusApproved, domain.StatusRejected, true},
		{domain.StatusApproved, domain.StatusApproved, true},
		{domain.StatusApproved, domain.StatusPending, false},
		{domain.StatusRejected, domain.StatusPending, false},
		{domain.StatusPending, "archived", false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			err := domain.Transition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrValidation)
			}
		})
	}
}

// ---- visibility and edit rights -------------------------------------------

func TestVisible(t *testing.T) {
	pending := domain.DetailEntry{Status: domain.StatusPending, CreatedBy: contributor.ID}
	rejected := domain.DetailEntry{Status: domain.StatusRejected, CreatedBy: contributor.ID}
	approved := domain.DetailEntry{Status: domain.StatusApproved, CreatedBy: contributor.ID}

	assert.True(t, domain.Visible(pending, contributor), "author sees own pending entry")
	assert.True(t, domain.Visible(pending, admin))
	assert.False(t, domain.Visible(pending, other))
	assert.False(t, domain.Visible(pending, viewer))
	assert.False(t, domain.Visible(pending, guest))

	assert.True(t, domain.Visible(rejected, admin))
	assert.False(t, domain.Visible(rejected, contributor), "rejected entries are admin-only")

	for _, u := range []domain.ActingUser{admin, contributor, other, viewer, guest} {
		assert.True(t, domain.Visible(approved, u))
	}
}

func TestCanModify(t *testing.T) {
	pending := domain.DetailEntry{Status: domain.StatusPending, CreatedBy: contributor.ID}
	approved := domain.DetailEntry{Status: domain.StatusApproved, CreatedBy: contributor.ID}
	viewerPending := domain.DetailEntry{Status: domain.StatusPending, CreatedBy: viewer.ID}

	assert.True(t, domain.CanModify(pending, admin))
	assert.True(t, domain.CanModify(pending, contributor))
	assert.False(t, domain.CanModify(pending, other))
	assert.False(t, domain.CanModify(approved, contributor), "approved entries are locked for contributors")
	assert.True(t, domain.CanModify(approved, admin))
	assert.False(t, domain.CanModify(viewerPending, viewer), "viewers never edit")
}

// ---- JSON envelope ---------------------------------------------------------

func TestDetailEntry_JSONKeepsVariant(t *testing.T) {
	in := domain.DetailEntry{
		ID:             "e1",
		Status:         domain.StatusPending,
		CreatedBy:      "u4",
		Notes:          "late arrival",
		PollingEnabled: true,
		Details:        domain.HotelDetails{HotelName: "Hotel Lutetia", CheckIn: "2025-06-10"},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"hotel"`)

	var out domain.DetailEntry
	require.NoError(t, json.Unmarshal(raw, &out))
	hotel, ok := out.Details.(domain.HotelDetails)
	require.True(t, ok, "expected HotelDetails, got %T", out.Details)
	assert.Equal(t, "Hotel Lutetia", hotel.HotelName)
	assert.Equal(t, in.Notes, out.Notes)
	assert.True(t, out.PollingEnabled)
}

func TestDetailEntry_MissingStatusReadsAsApproved(t *testing.T) {
	var out domain.DetailEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e1","kind":"note","notes":"x"}`), &out))

	assert.Equal(t, domain.StatusApproved, out.Status)
	assert.Equal(t, domain.NoteDetails{}, out.Details)
}

func TestDecodeDetails_UnknownKind(t *testing.T) {
	_, err := domain.DecodeDetails("cruise", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
