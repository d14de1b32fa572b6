package types

import "fmt"

// Coordinate is a lat/lng pair in decimal degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Station represents a metro station from the reference list
type Station struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Activity is a raw slot record from the Playo listing API.
// Lat/Lng are pointers: the API sometimes returns null coordinates,
// and those records must be skipped, not defaulted to (0, 0).
type Activity struct {
	ID           string   `json:"id"`
	VenueID      string   `json:"venueId"`
	AltVenueID   string   `json:"vanueId"` // misspelled variant seen in some responses
	VenueName    string   `json:"venueName"`
	StartTime    string   `json:"startTime"` // ISO-8601 UTC instant
	EndTime      string   `json:"endTime"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	ActivityType int      `json:"activityType"` // 0 = bookable court slot
	JoineeCount  int      `json:"joineeCount"`
	Location     string   `json:"location"`
}

// ResolveVenueID returns the venue id, falling back to the misspelled
// field when the primary one is empty
func (a *Activity) ResolveVenueID() string {
	if a.VenueID != "" {
		return a.VenueID
	}
	return a.AltVenueID
}

// VenueSlot is one unique (venue, time slot) aggregate with the number
// of courts still open for it
type VenueSlot struct {
	VenueID        string
	VenueName      string
	Start          string // local display time, e.g. "10:00 PM"
	End            string
	CourtCount     int
	NearestStation string  // empty when no station data was available
	DistanceKm     float64 // +Inf when no station data was available
}

// BookingURL is the public booking page for this venue
func (v *VenueSlot) BookingURL() string {
	return fmt.Sprintf("https://playo.co/venue/%s", v.VenueID)
}

// TimeQuery is the structured result of parsing a free-form request
// like "tomorrow 8pm to 10pm"
type TimeQuery struct {
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
	Date      string `json:"date"`       // "YYYY-MM-DD"
}
