package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"raiseme/internal/auth"
	"raiseme/internal/domain"
	"raiseme/internal/middleware"
)

type registerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	user := &domain.User{
		Email:      req.Email,
		Password:   hash,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		CreateDate: a.clock(),
	}
	if err := a.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			a.error(w, http.StatusBadRequest, "conflict", "Email already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	a.message(w, http.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string         `json:"message"`
	Tokens  auth.TokenPair `json:"tokens"`
	User    userProfileDTO `json:"user"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "Bad Credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("lookup user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "Bad Credentials")
		return
	}

	now := a.clock()
	if err := a.Users.TouchLastLogin(r.Context(), user.ID, now); err != nil {
		a.Logger.Error().Err(err).Msg("stamp last login failed")
	} else {
		user.LastLoginDate = &now
	}

	pair, err := a.Auth.Issue(user)
	if err != nil {
		a.Logger.Error().Err(err).Msg("issue tokens failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to issue tokens")
		return
	}

	a.json(w, http.StatusOK, loginResponse{
		Message: "Logged In",
		Tokens:  pair,
		User:    userDTO(user),
	})
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing or malformed authorization header")
		return
	}
	typ, err := a.Auth.Revoke(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenMalformed) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		a.Logger.Error().Err(err).Msg("revoke token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to revoke token")
		return
	}
	a.message(w, http.StatusOK, fmt.Sprintf("%s token revoked successfully", typ))
}
