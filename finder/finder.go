package finder

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/hafeezhmha/goodminton/config"
	"github.com/hafeezhmha/goodminton/geo"
	"github.com/hafeezhmha/goodminton/types"
)

// ListingClient interface so tests can stub the Playo API
type ListingClient interface {
	Search(center types.Coordinate, radiusKm float64, sportID, dateToken string, bookingOnly bool) ([]types.Activity, error)
}

type Finder struct {
	Client   ListingClient
	Stations *geo.StationIndex

	// IncludeFull keeps slots that already have participants beyond
	// the organizer instead of filtering them out
	IncludeFull bool
}

func New(client ListingClient, stations *geo.StationIndex) *Finder {
	return &Finder{
		Client:   client,
		Stations: stations,
	}
}

// FindCourts runs one search: fetch raw activities for the window's
// date, reduce them to unique venue/time slots with court counts and
// nearest metro, and rank by metro proximity. A transport failure
// aborts the search; a bad individual record only skips that record.
func (f *Finder) FindCourts(center types.Coordinate, radiusKm float64, sportID string, w *Window) ([]types.VenueSlot, error) {
	activities, err := f.Client.Search(center, radiusKm, sportID, DateToken(w.Start), true)
	if err != nil {
		return nil, err
	}

	log.Printf("🔍 Got %d raw slots from Playo, grouping by venue and time...", len(activities))

	slots := f.aggregate(activities, w)
	return rank(slots), nil
}

// aggregate filters raw records and collapses identical venue/time
// postings into one slot per (venueId, minute-rounded local start),
// incrementing the court count on repeats. Scan order is listing
// order, so first-seen wins on ties later in ranking.
func (f *Finder) aggregate(activities []types.Activity, w *Window) []types.VenueSlot {
	grouped := make(map[string]int) // grouping key -> index into slots
	slots := make([]types.VenueSlot, 0)

	for i := range activities {
		a := &activities[i]

		if a.Lat == nil || a.Lng == nil {
			continue
		}
		if a.ActivityType != 0 {
			continue // not a bookable court posting
		}
		if !f.IncludeFull && a.JoineeCount > 1 {
			continue // already has a participant beyond the organizer
		}

		start, err := time.Parse(time.RFC3339, a.StartTime)
		if err != nil {
			log.Printf("⏭️ Skipping activity %s: bad startTime %q", a.ID, a.StartTime)
			continue
		}
		if !w.Contains(start) {
			continue
		}

		venueID := a.ResolveVenueID()
		if venueID == "" {
			log.Printf("⏭️ Skipping activity %s: no venue id", a.ID)
			continue
		}

		localStart := start.In(w.Location).Truncate(time.Minute)
		key := fmt.Sprintf("%s_%s", venueID, localStart.Format("2006-01-02 15:04"))

		if idx, seen := grouped[key]; seen {
			slots[idx].CourtCount++
			continue
		}

		slot := types.VenueSlot{
			VenueID:    venueID,
			VenueName:  a.VenueName,
			Start:      localStart.Format("03:04 PM"),
			CourtCount: 1,
		}
		if end, err := time.Parse(time.RFC3339, a.EndTime); err == nil {
			slot.End = end.In(w.Location).Format("03:04 PM")
		}

		point := types.Coordinate{Lat: *a.Lat, Lng: *a.Lng}
		slot.NearestStation, slot.DistanceKm = f.Stations.Nearest(point)

		grouped[key] = len(slots)
		slots = append(slots, slot)
	}

	return slots
}

// rank sorts ascending by distance to the nearest metro, keeping
// encounter order on ties, and caps the list for display
func rank(slots []types.VenueSlot) []types.VenueSlot {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].DistanceKm < slots[j].DistanceKm
	})
	if len(slots) > config.MAX_RESULTS {
		slots = slots[:config.MAX_RESULTS]
	}
	return slots
}
