package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"raiseme/internal/auth"
	"raiseme/internal/domain"
	"raiseme/internal/middleware"
)

func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.Users.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list users failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load users")
		return
	}
	items := make([]userProfileDTO, 0, len(users))
	for i := range users {
		items = append(items, userDTO(&users[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"users": items})
}

type userUpdateRequest struct {
	ProfilePic *string `json:"profile_pic"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
}

// UserUpdate applies a partial self-service profile update. The target
// id rides in the UserId header; the authenticated email must match
// the target's email.
func (a *App) UserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	targetID, err := strconv.ParseInt(r.Header.Get("UserId"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "UserId header required")
		return
	}

	user, err := a.Users.GetByID(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		a.Logger.Error().Err(err).Msg("lookup user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load user")
		return
	}

	if !auth.CanUpdateUser(id, user) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "Invalid user id")
		return
	}

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	domain.MergeOptional(&user.ProfilePic, req.ProfilePic)
	domain.Merge(&user.Email, req.Email)
	domain.MergeOptional(&user.FirstName, req.FirstName)
	domain.MergeOptional(&user.LastName, req.LastName)
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			a.Logger.Error().Err(err).Msg("hash password failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to update user")
			return
		}
		user.Password = hash
	}

	if err := a.Users.Update(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			a.error(w, http.StatusBadRequest, "conflict", "Email already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("update user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update user")
		return
	}

	a.message(w, http.StatusOK, "User updated successfully")
}
