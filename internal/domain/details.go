package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DetailKind tags the variant of a detail entry's payload.
type DetailKind string

const (
	KindHotel      DetailKind = "hotel"
	KindFlight     DetailKind = "flight"
	KindTransit    DetailKind = "transit"
	KindAttraction DetailKind = "attraction"
	KindDining     DetailKind = "dining"
	KindNote       DetailKind = "note"
)

// KindForSection returns the payload variant a section accepts. Custom
// sections and the pack list carry notes only.
func KindForSection(key string) DetailKind {
	switch key {
	case SectionHotels:
		return KindHotel
	case SectionAirTravel:
		return KindFlight
	case SectionGroundTransit:
		return KindTransit
	case SectionAttractions:
		return KindAttraction
	case SectionFoodDining:
		return KindDining
	default:
		return KindNote
	}
}

// Details is the section-specific payload of a detail entry. Each variant
// checks its own date/time pairs.
type Details interface {
	Kind() DetailKind
	Validate() error
}

// HotelDetails describes one hotel stay.
type HotelDetails struct {
	HotelName    string `json:"hotelName"`
	Location     string `json:"location"`
	CheckIn      string `json:"checkIn"`
	CheckInTime  string `json:"checkInTime"`
	CheckOut     string `json:"checkOut"`
	CheckOutTime string `json:"checkOutTime"`
}

func (HotelDetails) Kind() DetailKind { return KindHotel }

func (d HotelDetails) Validate() error {
	return validatePair("check-in", d.CheckIn, d.CheckInTime, "check-out", d.CheckOut, d.CheckOutTime)
}

// FlightDetails describes one flight.
type FlightDetails struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	DepartureDate string `json:"departureDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalDate   string `json:"arrivalDate"`
	ArrivalTime   string `json:"arrivalTime"`
}

func (FlightDetails) Kind() DetailKind { return KindFlight }

func (d FlightDetails) Validate() error {
	return validatePair("departure", d.DepartureDate, d.DepartureTime, "arrival", d.ArrivalDate, d.ArrivalTime)
}

// TransitDetails describes one ground transfer or rental.
type TransitDetails struct {
	Provider        string `json:"provider"`
	Type            string `json:"type"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	PickupDate      string `json:"pickupDate"`
	PickupTime      string `json:"pickupTime"`
	DropoffDate     string `json:"dropoffDate"`
	DropoffTime     string `json:"dropoffTime"`
}

func (TransitDetails) Kind() DetailKind { return KindTransit }

func (d TransitDetails) Validate() error {
	return validatePair("pickup", d.PickupDate, d.PickupTime, "dropoff", d.DropoffDate, d.DropoffTime)
}

// AttractionDetails describes one planned visit.
type AttractionDetails struct {
	AttractionName string `json:"attractionName"`
	Location       string `json:"location"`
	Date           string `json:"date"`
}

func (AttractionDetails) Kind() DetailKind { return KindAttraction }

func (d AttractionDetails) Validate() error {
	_, _, err := instant("date", d.Date, "")
	return err
}

// DiningDetails describes one restaurant reservation.
type DiningDetails struct {
	RestaurantName  string `json:"restaurantName"`
	Location        string `json:"location"`
	ReservationTime string `json:"reservationTime"`
}

func (DiningDetails) Kind() DetailKind { return KindDining }

func (DiningDetails) Validate() error { return nil }

// NoteDetails is the empty payload of pack-list and custom-section entries.
type NoteDetails struct{}

func (NoteDetails) Kind() DetailKind { return KindNote }

func (NoteDetails) Validate() error { return nil }

// DecodeDetails decodes the raw payload of the given kind. An empty payload
// yields the zero value of the variant.
func DecodeDetails(kind DetailKind, raw json.RawMessage) (Details, error) {
	var d Details
	switch kind {
	case KindHotel:
		d = &HotelDetails{}
	case KindFlight:
		d = &FlightDetails{}
	case KindTransit:
		d = &TransitDetails{}
	case KindAttraction:
		d = &AttractionDetails{}
	case KindDining:
		d = &DiningDetails{}
	case KindNote, "":
		return NoteDetails{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown detail kind %q", ErrValidation, kind)
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, d); err != nil {
			return nil, fmt.Errorf("%w: %s details: %v", ErrValidation, kind, err)
		}
	}
	return deref(d), nil
}

// deref stores variants by value so type switches never see pointers.
func deref(d Details) Details {
	switch v := d.(type) {
	case *HotelDetails:
		return *v
	case *FlightDetails:
		return *v
	case *TransitDetails:
		return *v
	case *AttractionDetails:
		return *v
	case *DiningDetails:
		return *v
	}
	return d
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// instant combines an ISO date and an optional HH:MM clock. A missing date
// means the half is absent; a missing clock means midnight.
func instant(label, date, clock string) (time.Time, bool, error) {
	if date == "" {
		return time.Time{}, false, nil
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s date %q is not YYYY-MM-DD", ErrValidation, label, date)
	}
	if clock == "" {
		return d, true, nil
	}
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s time %q is not HH:MM", ErrValidation, label, clock)
	}
	return d.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), true, nil
}

// validatePair rejects an end instant that precedes its start. The check
// only applies when both halves carry a date.
func validatePair(startLabel, startDate, startClock, endLabel, endDate, endClock string) error {
	start, hasStart, err := instant(startLabel, startDate, startClock)
	if err != nil {
		return err
	}
	end, hasEnd, err := instant(endLabel, endDate, endClock)
	if err != nil {
		return err
	}
	if hasStart && hasEnd && end.Before(start) {
		return fmt.Errorf("%w: %s must not be before %s", ErrValidation, endLabel, startLabel)
	}
	return nil
}
