package finder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafeezhmha/goodminton/geo"
	"github.com/hafeezhmha/goodminton/types"
)

type stubClient struct {
	activities []types.Activity
	err        error

	gotRadius  float64
	gotSportID string
	gotToken   string
	gotBooking bool
}

func (s *stubClient) Search(center types.Coordinate, radiusKm float64, sportID, dateToken string, bookingOnly bool) ([]types.Activity, error) {
	s.gotRadius = radiusKm
	s.gotSportID = sportID
	s.gotToken = dateToken
	s.gotBooking = bookingOnly
	return s.activities, s.err
}

func f64(v float64) *float64 { return &v }

// activity returns a record inside the 19:00-20:00 IST window on
// 2024-07-03 (13:30 UTC = 19:00 IST) unless startTime is overridden
func activity(id, venueID string, mutate func(*types.Activity)) types.Activity {
	a := types.Activity{
		ID:        id,
		VenueID:   venueID,
		VenueName: "Venue " + venueID,
		StartTime: "2024-07-03T13:30:00.000000Z",
		EndTime:   "2024-07-03T14:30:00.000000Z",
		Lat:       f64(12.9783),
		Lng:       f64(77.6408),
	}
	if mutate != nil {
		mutate(&a)
	}
	return a
}

func testWindow(t *testing.T) *Window {
	t.Helper()
	w, err := ResolveWindow("2024-07-03", "19:00", "20:00", kolkata(t))
	require.NoError(t, err)
	return w
}

func emptyStations() *geo.StationIndex {
	return geo.NewStationIndex(nil)
}

func findWith(t *testing.T, client *stubClient, stations *geo.StationIndex) []types.VenueSlot {
	t.Helper()
	slots, err := New(client, stations).FindCourts(
		types.Coordinate{Lat: 12.9783692, Lng: 77.6408356}, 5, "SP5", testWindow(t))
	require.NoError(t, err)
	return slots
}

func TestFindCourts_PassesSearchParameters(t *testing.T) {
	client := &stubClient{}

	findWith(t, client, emptyStations())

	assert.Equal(t, 5.0, client.gotRadius)
	assert.Equal(t, "SP5", client.gotSportID)
	assert.Equal(t, "2024-07-03T13:30:00.000000Z", client.gotToken)
	assert.True(t, client.gotBooking)
}

func TestFindCourts_TransportFailure(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}

	slots, err := New(client, emptyStations()).FindCourts(
		types.Coordinate{Lat: 12.97, Lng: 77.64}, 5, "SP5", testWindow(t))

	assert.Error(t, err)
	assert.Nil(t, slots)
}

func TestFindCourts_RejectsOverSubscribed(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "v1", func(a *types.Activity) { a.JoineeCount = 2 }),
		activity("a2", "v2", func(a *types.Activity) { a.JoineeCount = 0 }),
		activity("a3", "v3", func(a *types.Activity) { a.JoineeCount = 1 }),
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 2)
	assert.Equal(t, "v2", slots[0].VenueID)
	assert.Equal(t, "v3", slots[1].VenueID)
}

func TestFindCourts_IncludeFullKeepsBusyGames(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "v1", func(a *types.Activity) { a.JoineeCount = 5 }),
		activity("a2", "v2", nil),
	}}

	f := New(client, emptyStations())
	f.IncludeFull = true
	slots, err := f.FindCourts(
		types.Coordinate{Lat: 12.9783692, Lng: 77.6408356}, 5, "SP5", testWindow(t))

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "v1", slots[0].VenueID)
}

func TestFindCourts_RejectsNonBookableActivityType(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "v1", func(a *types.Activity) { a.ActivityType = 1 }),
		activity("a2", "v2", nil),
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 1)
	assert.Equal(t, "v2", slots[0].VenueID)
}

func TestFindCourts_RejectsMissingCoordinates(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "v1", func(a *types.Activity) { a.Lat = nil }),
		activity("a2", "v2", func(a *types.Activity) { a.Lng = nil }),
		activity("a3", "v3", nil),
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 1)
	assert.Equal(t, "v3", slots[0].VenueID)
}

func TestFindCourts_SkipsBadStartTime(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "v1", func(a *types.Activity) { a.StartTime = "not-a-time" }),
		activity("a2", "v2", nil),
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 1)
	assert.Equal(t, "v2", slots[0].VenueID)
}

func TestFindCourts_RejectsOutsideWindow(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		// 15:30 UTC = 21:00 IST, past the 20:00 end
		activity("a1", "v1", func(a *types.Activity) { a.StartTime = "2024-07-03T15:30:00.000000Z" }),
		activity("a2", "v2", nil),
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 1)
	assert.Equal(t, "v2", slots[0].VenueID)
}

func TestFindCourts_VenueIDFallback(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "", func(a *types.Activity) { a.AltVenueID = "alt42" }),
		activity("a2", "", nil), // no id in either field
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 1)
	assert.Equal(t, "alt42", slots[0].VenueID)
}

func TestFindCourts_GroupsCourtsByVenueAndMinute(t *testing.T) {
	client := &stubClient{activities: []types.Activity{
		activity("a1", "v1", nil),
		activity("a2", "v1", nil), // second court, same venue and start
		activity("a3", "v1", func(a *types.Activity) {
			a.StartTime = "2024-07-03T13:30:42.000000Z" // same minute after rounding
		}),
	}}

	slots := findWith(t, client, emptyStations())

	require.Len(t, slots, 1)
	assert.Equal(t, 3, slots[0].CourtCount)
	assert.Equal(t, "07:00 PM", slots[0].Start)
	assert.Equal(t, "08:00 PM", slots[0].End)
}

func TestFindCourts_RanksByMetroProximity(t *testing.T) {
	stations := geo.NewStationIndex([]types.Station{
		{Name: "Indiranagar", Lat: 12.9784, Lng: 77.6387},
	})

	client := &stubClient{activities: []types.Activity{
		// venue A: two courts ~1 km from the station
		activity("a1", "A", func(a *types.Activity) { a.Lat = f64(12.9784); a.Lng = f64(77.6479) }),
		activity("a2", "A", func(a *types.Activity) { a.Lat = f64(12.9784); a.Lng = f64(77.6479) }),
		// venue B: one court ~0.5 km away
		activity("b1", "B", func(a *types.Activity) { a.Lat = f64(12.9784); a.Lng = f64(77.6433) }),
		// venue C: full game, must be rejected
		activity("c1", "C", func(a *types.Activity) { a.JoineeCount = 5 }),
	}}

	slots := findWith(t, client, stations)

	require.Len(t, slots, 2)
	assert.Equal(t, "B", slots[0].VenueID)
	assert.Equal(t, 1, slots[0].CourtCount)
	assert.Equal(t, "A", slots[1].VenueID)
	assert.Equal(t, 2, slots[1].CourtCount)
	assert.Equal(t, "Indiranagar", slots[0].NearestStation)
	assert.Less(t, slots[0].DistanceKm, slots[1].DistanceKm)
	assert.InDelta(t, 0.5, slots[0].DistanceKm, 0.1)
	assert.InDelta(t, 1.0, slots[1].DistanceKm, 0.1)
}

func TestFindCourts_CapsResults(t *testing.T) {
	var activities []types.Activity
	for i := 0; i < 14; i++ {
		id := fmt.Sprintf("v%02d", i)
		activities = append(activities, activity("a"+id, id, nil))
	}
	client := &stubClient{activities: activities}

	slots := findWith(t, client, emptyStations())

	// all distances are +Inf with no stations, so encounter order holds
	require.Len(t, slots, 10)
	assert.Equal(t, "v00", slots[0].VenueID)
	assert.Equal(t, "v09", slots[9].VenueID)
}
