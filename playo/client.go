package playo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hafeezhmha/goodminton/config"
	"github.com/hafeezhmha/goodminton/types"
)

const userAgent = "Mozilla/5.0 (compatible; GoodmintonBot/1.0)"

// Client talks to the Playo public activity listing API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a Client against the production API
func New() *Client {
	return &Client{
		BaseURL: config.PLAYO_BASE_URL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SearchRequest is the POST body the listing endpoint expects
type SearchRequest struct {
	Lat                float64  `json:"lat"`
	Lng                float64  `json:"lng"`
	CityRadius         float64  `json:"cityRadius"`
	GameTimeActivities bool     `json:"gameTimeActivities"`
	Page               int      `json:"page"`
	LastID             string   `json:"lastId"`
	SportID            []string `json:"sportId"`
	Booking            bool     `json:"booking"`
	Date               []string `json:"date"`
}

// Search issues one listing request and returns the raw activity
// records. Any network failure, non-2xx status or unreadable body is
// returned as an error with no retry; callers turn it into a single
// user-facing message.
func (c *Client) Search(center types.Coordinate, radiusKm float64, sportID, dateToken string, bookingOnly bool) ([]types.Activity, error) {
	payload := SearchRequest{
		Lat:        center.Lat,
		Lng:        center.Lng,
		CityRadius: radiusKm,
		Page:       0,
		LastID:     "",
		SportID:    []string{sportID},
		Booking:    bookingOnly,
		Date:       []string{dateToken},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding search payload: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+config.PLAYO_LIST_ENDPOINT, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("playo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("playo returned status %s", resp.Status)
	}

	var envelope struct {
		RequestStatus *int            `json:"requestStatus"`
		Data          json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding playo response: %w", err)
	}

	// Some deployments omit requestStatus entirely; when present,
	// anything other than 1 means the API refused the request
	if envelope.RequestStatus != nil && *envelope.RequestStatus != 1 {
		return nil, fmt.Errorf("playo request unsuccessful (requestStatus %d)", *envelope.RequestStatus)
	}

	return extractActivities(envelope.Data), nil
}

// The envelope shape differs between deployments: the activity list has
// been seen directly under "data" and nested under "data.activities".
// Extractors locate the raw list and are tried in order; a list found
// nowhere means zero results, not a failure.
var listExtractors = []func(json.RawMessage) ([]json.RawMessage, bool){
	extractTopLevelList,
	extractNestedList,
}

func extractActivities(data json.RawMessage) []types.Activity {
	if len(data) == 0 {
		return nil
	}
	for _, extract := range listExtractors {
		if records, ok := extract(data); ok {
			return decodeRecords(records)
		}
	}
	return nil
}

func extractTopLevelList(data json.RawMessage) ([]json.RawMessage, bool) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

func extractNestedList(data json.RawMessage) ([]json.RawMessage, bool) {
	var nested struct {
		Activities []json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(data, &nested); err != nil || nested.Activities == nil {
		return nil, false
	}
	return nested.Activities, true
}

// decodeRecords unmarshals every record on its own, so one record with
// a wrong-typed field is skipped without dropping the rest of the
// response
func decodeRecords(records []json.RawMessage) []types.Activity {
	activities := make([]types.Activity, 0, len(records))
	for _, raw := range records {
		var a types.Activity
		if err := json.Unmarshal(raw, &a); err != nil {
			log.Printf("⏭️ Skipping malformed activity record: %v", err)
			continue
		}
		activities = append(activities, a)
	}
	return activities
}
