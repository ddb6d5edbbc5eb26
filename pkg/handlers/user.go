package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"debttracker/pkg/middleware"
	"debttracker/pkg/session"
	"debttracker/pkg/user"
)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserHandler struct {
	Service  user.ServiceInterface
	Issuer   *session.Issuer
	Sessions session.Store
	Logger   *slog.Logger
}

type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

func NewUserHandler(service user.ServiceInterface, issuer *session.Issuer, sessions session.Store, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		Service:  service,
		Issuer:   issuer,
		Sessions: sessions,
		Logger:   logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, typeError, "email and password are required")
		return
	}

	newUser, err := h.Service.Register(req.Email, req.Password)
	if err != nil {
		if err.Error() != "user already exists" {
			h.Logger.Error("register", "error", err.Error())
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if ok := WriteResp(w, h.Logger, map[string]any{
			"errors": []FieldError{
				{
					Location: "body",
					Param:    "email",
					Value:    req.Email,
					Msg:      "already exists",
				},
			},
		}, http.StatusUnprocessableEntity); ok {
			h.Logger.Error("register", "error", err.Error(), "email", req.Email)
		}
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{
		"message": "user registered",
		"user":    newUser,
	}, http.StatusCreated); ok {
		h.Logger.Info("register", "user", newUser.ID)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, typeError, "email and password are required")
		return
	}

	loggedIn, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		var msg string
		if err.Error() == "user not found" {
			msg = "user not found"
		} else {
			msg = "invalid password"
		}
		if ok := WriteResp(w, h.Logger, map[string]any{"message": msg}, http.StatusUnauthorized); ok {
			h.Logger.Error("login", "error", "unauthorized", "email", req.Email)
		}
		return
	}

	token, err := h.Issuer.Issue(loggedIn.ID, loggedIn.Email)
	if err != nil {
		h.Logger.Error("login", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{
		"message": "login successful",
		"token":   token,
		"user":    loggedIn,
	}, http.StatusOK); ok {
		h.Logger.Info("login", "user", loggedIn.ID)
	}
}

// Logout drops the session entry for the presented token. Succeeds even
// when no entry exists, so repeating it is harmless.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.BearerToken(r); ok {
		h.Sessions.Revoke(token)
	}

	WriteResp(w, h.Logger, map[string]any{"message": "logout successful"}, http.StatusOK)
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
