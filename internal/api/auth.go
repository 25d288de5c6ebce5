package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"dicesoccer/internal/services/auth"
)

// Credentials é o que os handlers de autenticação precisam do store.
type Credentials interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// DTOs do contrato HTTP de autenticação.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CreateRegisterHandler cria o handler de POST /register.
func CreateRegisterHandler(store Credentials, logger hclog.Logger) http.HandlerFunc {
	logger = orNull(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAuthRequest(w, r)
		if !ok {
			return
		}

		err := store.Register(r.Context(), req.Username, req.Password)
		switch {
		case err == nil:
			logger.Info("player registered", "username", req.Username)
			writeJSON(w, http.StatusOK, AuthResponse{Success: true})
		case errors.Is(err, auth.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, AuthResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, AuthResponse{Error: "Username already exists"})
		default:
			logger.Error("register failed", "username", req.Username, "error", err)
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Error: "Internal server error"})
		}
	}
}

// CreateLoginHandler cria o handler de POST /login.
func CreateLoginHandler(store Credentials, logger hclog.Logger) http.HandlerFunc {
	logger = orNull(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAuthRequest(w, r)
		if !ok {
			return
		}

		username, err := store.Login(r.Context(), req.Username, req.Password)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, AuthResponse{Success: true, Username: username})
		case errors.Is(err, auth.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, AuthResponse{Error: "Invalid credentials"})
		default:
			logger.Error("login failed", "username", req.Username, "error", err)
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Error: "Internal server error"})
		}
	}
}

func decodeAuthRequest(w http.ResponseWriter, r *http.Request) (AuthRequest, bool) {
	var req AuthRequest
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, AuthResponse{Error: "Method not allowed"})
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Error: "Invalid payload"})
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, body AuthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func orNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
