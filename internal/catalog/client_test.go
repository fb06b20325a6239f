package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/eventflow-api/internal/catalog"
)

const searchPayload = `{
  "_embedded": {
    "events": [
      {
        "id": "tm123",
        "name": "Regional Science Fair",
        "pleaseNote": "Doors open at 9am",
        "url": "https://example.com/tm123",
        "dates": {"start": {"localDate": "2026-10-01", "localTime": "10:00:00"}},
        "images": [{"url": "https://img.example.com/1.jpg"}],
        "_embedded": {"venues": [{"name": "Convention Center", "city": {"name": "Springfield"}}]}
      },
      {
        "id": "tm124",
        "name": "",
        "dates": {"start": {}}
      }
    ]
  }
}`

const detailPayload = `{
  "id": "tm123",
  "name": "Regional Science Fair",
  "info": "Bring your badge",
  "description": "A full description",
  "url": "https://example.com/tm123",
  "dates": {"start": {"localDate": "2026-10-01", "localTime": "10:00:00"}},
  "seatmap": {"staticUrl": "https://example.com/map.png"},
  "_embedded": {"venues": [{"name": "Convention Center"}]}
}`

func newUpstream(t *testing.T, capture *http.Request) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = *r
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/events.json":
			_, _ = w.Write([]byte(searchPayload))
		case "/events/tm123.json":
			_, _ = w.Write([]byte(detailPayload))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	var captured http.Request
	srv := newUpstream(t, &captured)
	defer srv.Close()

	c := catalog.NewClientWithBaseURL("key123", srv.URL)
	events, err := c.ByCategory(context.Background(), "science")
	require.NoError(t, err)
	require.Len(t, events, 2)

	q := captured.URL.Query()
	assert.Equal(t, "key123", q.Get("apikey"))
	assert.Equal(t, "science", q.Get("keyword"))
	assert.Equal(t, "Miscellaneous", q.Get("classificationName"))

	assert.Equal(t, catalog.Event{
		ID:          "tm123",
		Title:       "Regional Science Fair",
		Description: "Doors open at 9am",
		Date:        "2026-10-01",
		Time:        "10:00:00",
		Location:    "Convention Center",
		Category:    "science",
		URL:         "https://example.com/tm123",
		Image:       "https://img.example.com/1.jpg",
	}, events[0])

	// Sparse upstream records fall back to placeholders.
	assert.Equal(t, "Untitled Event", events[1].Title)
	assert.Equal(t, "Location TBD", events[1].Location)
}

func TestByCategory_UnknownFallsBackToEducation(t *testing.T) {
	t.Parallel()

	var captured http.Request
	srv := newUpstream(t, &captured)
	defer srv.Close()

	c := catalog.NewClientWithBaseURL("key123", srv.URL)
	events, err := c.ByCategory(context.Background(), "quidditch")
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "school", q.Get("keyword"))
	require.NotEmpty(t, events)
	assert.Equal(t, "education", events[0].Category)
}

func TestByID(t *testing.T) {
	t.Parallel()

	srv := newUpstream(t, nil)
	defer srv.Close()

	c := catalog.NewClientWithBaseURL("key123", srv.URL)
	details, err := c.ByID(context.Background(), "tm123")
	require.NoError(t, err)

	assert.Equal(t, "tm123", details.ID)
	assert.Equal(t, "Regional Science Fair", details.Title)
	assert.Equal(t, "Bring your badge", details.Description)
	assert.Equal(t, "A full description", details.FullDescription)
	assert.Equal(t, "Convention Center", details.Venue)
	assert.Equal(t, "Check on Ticketmaster", details.SeatAvailability)
}

func TestByID_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := newUpstream(t, nil)
	defer srv.Close()

	c := catalog.NewClientWithBaseURL("key123", srv.URL)
	_, err := c.ByID(context.Background(), "missing")
	assert.Error(t, err)
}
