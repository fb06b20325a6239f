package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventflow/eventflow-api/internal/auth"
	"github.com/eventflow/eventflow-api/internal/catalog"
	"github.com/eventflow/eventflow-api/internal/model"
	"github.com/eventflow/eventflow-api/internal/queue"
	"github.com/eventflow/eventflow-api/internal/repository"
	"github.com/eventflow/eventflow-api/internal/service/user"
)

// Catalog is the slice of the event catalog client the handlers use.
type Catalog interface {
	ByCategory(ctx context.Context, category string) ([]catalog.Event, error)
	ByID(ctx context.Context, eventID string) (catalog.EventDetails, error)
}

// EventsHandler serves catalog browsing and event registration.
type EventsHandler struct {
	Catalog       Catalog
	Users         *user.Service
	Registrations *repository.RegistrationRepo
	Pub           Publisher
}

func NewEventsHandler(cat Catalog, users *user.Service, regs *repository.RegistrationRepo, pub Publisher) *EventsHandler {
	return &EventsHandler{Catalog: cat, Users: users, Registrations: regs, Pub: pub}
}

// List proxies a category search to the catalog. Unknown categories fall
// back to the education defaults inside the client.
func (h *EventsHandler) List(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		category = "education"
	}
	events, err := h.Catalog.ByCategory(c.Request().Context(), category)
	if err != nil {
		c.Logger().Errorf("events list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch events"})
	}
	return c.JSON(http.StatusOK, events)
}

// Details proxies a single-event lookup to the catalog.
func (h *EventsHandler) Details(c echo.Context) error {
	details, err := h.Catalog.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("event details: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch event details"})
	}
	return c.JSON(http.StatusOK, details)
}

type registerEventReq struct {
	EventID string `json:"event_id"`
}

// Register records a registration for the authenticated user and emits a
// confirmation event for the mail consumer. The registered user comes from
// the verified identity, never from the request body.
func (h *EventsHandler) Register(c echo.Context) error {
	id, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. Authentication required."})
	}

	var req registerEventReq
	if err := c.Bind(&req); err != nil || req.EventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// The catalog lookup doubles as existence validation before we persist
	// anything.
	details, err := h.Catalog.ByID(ctx, req.EventID)
	if err != nil {
		c.Logger().Errorf("event register: catalog lookup: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown event"})
	}

	regID, err := h.Registrations.Create(ctx, id.ID, req.EventID, model.RegistrationConfirmed)
	if err != nil {
		c.Logger().Errorf("event register: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to register for event"})
	}

	account, err := h.Users.FindByID(ctx, id.ID)
	if err != nil {
		// Registration row exists; the notification just loses the name.
		c.Logger().Warnf("event register: load user %d: %v", id.ID, err)
		account.Email = id.Email
	}

	if err := h.Pub.PublishRegistrationConfirmed(ctx, queue.RegistrationConfirmedEvent{
		RegistrationID: regID,
		UserID:         id.ID,
		Email:          account.Email,
		FirstName:      account.FirstName,
		EventID:        details.ID,
		EventTitle:     details.Title,
		EventDate:      details.Date,
		EventTime:      details.Time,
		EventLocation:  details.Venue,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		c.Logger().Warnf("event register: publish confirmation: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "registration_id": regID})
}

// MyRegistrations lists the authenticated user's registrations.
func (h *EventsHandler) MyRegistrations(c echo.Context) error {
	id, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. Authentication required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	regs, err := h.Registrations.ListByUser(ctx, id.ID)
	if err != nil {
		c.Logger().Errorf("my registrations: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load registrations"})
	}
	if regs == nil {
		regs = []model.EventRegistration{}
	}
	return c.JSON(http.StatusOK, echo.Map{"registrations": regs})
}

// RecentRegistrations lists the newest registrations across all users.
// The route is admin-gated by the router.
func (h *EventsHandler) RecentRegistrations(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	regs, err := h.Registrations.ListRecent(ctx, limit)
	if err != nil {
		c.Logger().Errorf("recent registrations: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load registrations"})
	}
	if regs == nil {
		regs = []model.EventRegistration{}
	}
	return c.JSON(http.StatusOK, echo.Map{"registrations": regs})
}
