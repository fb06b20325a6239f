// Package catalog is a thin pass-through client for the Ticketmaster
// Discovery API, which acts as the event catalog for the application.
// Events are never persisted locally; the client projects the upstream
// payload into the small shape the frontend consumes.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// classification pairs the keyword and classificationName query values sent
// upstream for one of our categories.
type classification struct {
	Keyword        string
	Classification string
}

// categoryMapping is the closed set of school-event categories and their
// Discovery API equivalents. Unknown categories fall back to "education".
var categoryMapping = map[string]classification{
	"academic":   {"academic", "Miscellaneous"},
	"sports":     {"sports", "Sports"},
	"social":     {"social", "Miscellaneous"},
	"arts":       {"arts", "Arts & Theatre"},
	"music":      {"music", "Music"},
	"theater":    {"theater", "Arts & Theatre"},
	"science":    {"science", "Miscellaneous"},
	"community":  {"community", "Miscellaneous"},
	"leadership": {"leadership", "Miscellaneous"},
	"career":     {"career", "Miscellaneous"},
	"workshop":   {"workshop", "Miscellaneous"},
	"education":  {"school", "Miscellaneous"},
}

// Event is the listing projection served by GET /api/events.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Capacity    int    `json:"capacity"`   // Discovery does not expose capacity
	Registered  int    `json:"registered"` // nor registration counts
	URL         string `json:"url"`
	Image       string `json:"image"`
}

// EventDetails is the richer projection served by GET /api/events/:id.
type EventDetails struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	FullDescription  string         `json:"fullDescription"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	Venue            string         `json:"venue"`
	VenueDetails     map[string]any `json:"venueDetails"`
	SeatAvailability string         `json:"seatAvailability"`
	URL              string         `json:"url"`
	Image            string         `json:"image"`
}

// Client calls the Discovery API with a bounded timeout. The zero value is
// not usable; construct with NewClient.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL exists for tests that point the client at a local
// httptest server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Upstream payload shapes; only the fields we project are declared.
type tmEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Info        string `json:"info"`
	PleaseNote  string `json:"pleaseNote"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Dates       struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Seatmap  json.RawMessage `json:"seatmap"`
	Embedded struct {
		Venues []map[string]any `json:"venues"`
	} `json:"_embedded"`
}

type tmSearchResponse struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

// ByCategory fetches events for one of the known categories. An unknown
// category degrades to the education defaults rather than failing.
func (c *Client) ByCategory(ctx context.Context, category string) ([]Event, error) {
	mapping, ok := categoryMapping[category]
	if !ok {
		category = "education"
		mapping = categoryMapping[category]
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("keyword", mapping.Keyword)
	q.Set("classificationName", mapping.Classification)

	var payload tmSearchResponse
	if err := c.get(ctx, "/events.json?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(payload.Embedded.Events))
	for _, ev := range payload.Embedded.Events {
		events = append(events, Event{
			ID:          ev.ID,
			Title:       titleOrDefault(ev.Name),
			Description: ev.PleaseNote,
			Date:        ev.Dates.Start.LocalDate,
			Time:        ev.Dates.Start.LocalTime,
			Location:    venueName(ev, "Location TBD"),
			Category:    category,
			URL:         ev.URL,
			Image:       firstImage(ev),
		})
	}
	return events, nil
}

// ByID fetches the detail view of a single event.
func (c *Client) ByID(ctx context.Context, eventID string) (EventDetails, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)

	var ev tmEvent
	if err := c.get(ctx, "/events/"+url.PathEscape(eventID)+".json?"+q.Encode(), &ev); err != nil {
		return EventDetails{}, err
	}

	description := ev.Info
	if description == "" {
		description = ev.PleaseNote
	}
	full := ev.Description
	if full == "" {
		full = description
	}
	seats := "Unknown"
	if len(ev.Seatmap) > 0 && string(ev.Seatmap) != "null" {
		seats = "Check on Ticketmaster"
	}
	var venueDetails map[string]any
	if len(ev.Embedded.Venues) > 0 {
		venueDetails = ev.Embedded.Venues[0]
	}

	return EventDetails{
		ID:               ev.ID,
		Title:            titleOrDefault(ev.Name),
		Description:      description,
		FullDescription:  full,
		Date:             ev.Dates.Start.LocalDate,
		Time:             ev.Dates.Start.LocalTime,
		Venue:            venueName(ev, "Venue TBD"),
		VenueDetails:     venueDetails,
		SeatAvailability: seats,
		URL:              ev.URL,
		Image:            firstImage(ev),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request: upstream status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog decode: %w", err)
	}
	return nil
}

func titleOrDefault(name string) string {
	if name == "" {
		return "Untitled Event"
	}
	return name
}

func venueName(ev tmEvent, def string) string {
	if len(ev.Embedded.Venues) > 0 {
		if name, ok := ev.Embedded.Venues[0]["name"].(string); ok && name != "" {
			return name
		}
	}
	return def
}

func firstImage(ev tmEvent) string {
	if len(ev.Images) > 0 {
		return ev.Images[0].URL
	}
	return ""
}
