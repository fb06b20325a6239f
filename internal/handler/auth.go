package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventflow/eventflow-api/internal/auth"
	"github.com/eventflow/eventflow-api/internal/queue"
	"github.com/eventflow/eventflow-api/internal/repository"
	"github.com/eventflow/eventflow-api/internal/service/user"
)

// Publisher abstracts the queue publisher so handler tests can record
// events instead of dialing a broker.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, ev queue.UserRegisteredEvent) error
	PublishRegistrationConfirmed(ctx context.Context, ev queue.RegistrationConfirmedEvent) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Users *user.Service
	Pub   Publisher
}

func NewAuthHandler(users *user.Service, pub Publisher) *AuthHandler {
	return &AuthHandler{Users: users, Pub: pub}
}

// ----- DTOs -----

type registerReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// Register creates an account and returns it with a token immediately.
// The welcome email goes through the queue; a broker outage never fails
// the signup.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	account, err := h.Users.CreateAccount(ctx, user.CreateAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		var ve *user.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Field + " " + ve.Msg})
		}
		if errors.Is(err, user.ErrDuplicateAccount) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User with this email already exists"})
		}
		c.Logger().Errorf("register: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	token, err := h.Users.IssueToken(account)
	if err != nil {
		c.Logger().Errorf("register: issue token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	if err := h.Pub.PublishUserRegistered(ctx, queue.UserRegisteredEvent{
		UserID:       account.ID,
		Email:        account.Email,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		c.Logger().Warnf("register: publish welcome event: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    account,
		"token":   token,
	})
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown email and wrong password share one message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	account, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		c.Logger().Errorf("login: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	token, err := h.Users.IssueToken(account)
	if err != nil {
		c.Logger().Errorf("login: issue token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    account,
		"token":   token,
	})
}

// Profile returns the authenticated user's account, read fresh rather than
// echoed from the token.
func (h *AuthHandler) Profile(c echo.Context) error {
	id, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. Authentication required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	account, err := h.Users.FindByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": account})
}

// UpdateProfile applies a partial update to first/last name and phone.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. Authentication required."})
	}

	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FirstName != nil && *req.FirstName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name must not be empty"})
	}
	if req.LastName != nil && *req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "last_name must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	account, err := h.Users.UpdateProfile(ctx, id.ID, repository.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("update profile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    account,
	})
}
