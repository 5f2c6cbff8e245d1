package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	userservice "github.com/storyweave/storyweave-backend/app/modules/user/application"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// UserHandler serves the account routes.
type UserHandler struct {
	service userservice.Service
	logger  *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(service userservice.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Register handles POST /users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Register(r.Context(), userservice.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	h.respondUserResult(w, r, result, err, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err == nil && errors.Is(failureError(result.Failure), userservice.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

// GetProfile handles GET /users/{userID}.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	result, err := h.service.GetProfile(r.Context(), userID)
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

type updateProfileRequest struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}

// UpdateProfile handles PUT /users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), callerID(r), userservice.UpdateProfileInput{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

// Follow handles POST /users/{userID}/follow.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	result, err := h.service.Follow(r.Context(), callerID(r), userID)
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

// Unfollow handles DELETE /users/{userID}/follow.
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	result, err := h.service.Unfollow(r.Context(), callerID(r), userID)
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

// Deactivate handles POST /users/me/deactivate.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Deactivate(r.Context(), callerID(r))
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

// Delete handles DELETE /users/me.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), callerID(r))
	h.respondUserResult(w, r, result, err, http.StatusOK)
}

// respondUserResult maps an account OperationResult onto HTTP status codes.
func (h *UserHandler) respondUserResult(w http.ResponseWriter, r *http.Request, result results.OperationResult, err error, successCode int) {
	if vErr, ok := result.Failure.(*userservice.ValidationError); ok {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}
	if err != nil {
		if errors.Is(err, userdb.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "User operation failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "user operation failed")
		return
	}
	respond(w, successCode, result.Success)
}

func failureError(failure any) error {
	if err, ok := failure.(error); ok {
		return err
	}
	return nil
}
