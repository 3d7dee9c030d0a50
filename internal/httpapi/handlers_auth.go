package httpapi

import (
	"errors"
	"net/http"

	"quizdeck/internal/auth"
)

func (a *API) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if !decodeValid(w, r, &request) {
		return
	}

	user, token, err := a.auth.Register(r.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, apiError{Message: "Email already registered"})
		case errors.Is(err, auth.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, apiError{Message: "Invalid registration input"})
		default:
			writeStorageError(w, "Failed to register user", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (a *API) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if !decodeValid(w, r, &request) {
		return
	}

	user, token, err := a.auth.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, apiError{Message: "Invalid email or password"})
			return
		}
		writeStorageError(w, "Failed to log in", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (a *API) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.Logout(r.Context(), requestToken(r)); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeJSON(w, http.StatusUnauthorized, apiError{Message: "Invalid token"})
			return
		}
		writeStorageError(w, "Failed to log out", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}
