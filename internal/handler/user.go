package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/service"
)

// UserHandler handles HTTP requests for user endpoints.
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// registerUserRequest is the JSON request body for POST /users.
type registerUserRequest struct {
	UserID         string   `json:"user_id"`
	Username       string   `json:"username"`
	InitialCredits *float64 `json:"initial_credits"`
}

// userResponse is a registered user in JSON form.
type userResponse struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Balance   float64 `json:"balance"`
	CreatedAt string  `json:"created_at"`
}

// balanceResponse is the JSON response for the balance endpoint.
type balanceResponse struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"`
}

// Register handles POST /users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.userSvc.Register(r.Context(), service.RegisterUserRequest{
		UserID:         req.UserID,
		Username:       req.Username,
		InitialCredits: req.InitialCredits,
	})
	if err != nil {
		mapUserError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, userResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Balance:   domain.CentsToCredits(user.Balance),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// GetBalance handles GET /users/{user_id}/balance.
func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	balance, err := h.userSvc.Balance(userID)
	if err != nil {
		mapUserError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, balanceResponse{
		UserID:  userID,
		Balance: domain.CentsToCredits(balance),
	})
}

// mapUserError maps domain errors to HTTP responses for user endpoints.
func mapUserError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		WriteError(w, http.StatusConflict, "user_already_exists", err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
