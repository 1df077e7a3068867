package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"queueless/internal/auth"
	"queueless/internal/middleware"
	"queueless/internal/store"
)

const minPasswordLength = 8

type AuthHandler struct {
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	logger       *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userStore: us, sessionStore: ss, logger: logger}
}

type signupRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	BusinessName   string `json:"business_name"`
	OwnerName      string `json:"owner_name"`
	Phone          string `json:"phone"`
	BusinessType   string `json:"business_type"`
	NumberOfTables int    `json:"number_of_tables"`
}

// Signup handles POST /api/auth/signup: creates the operator account with its
// business profile and opens a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.OwnerName = strings.TrimSpace(req.OwnerName)

	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < minPasswordLength:
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	case req.BusinessName == "":
		writeError(w, http.StatusBadRequest, "business_name is required")
		return
	case req.OwnerName == "":
		writeError(w, http.StatusBadRequest, "owner_name is required")
		return
	case req.NumberOfTables < 0:
		writeError(w, http.StatusBadRequest, "number_of_tables cannot be negative")
		return
	}

	existing, err := h.userStore.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("signup lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "an account with that email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	user, err := h.userStore.Create(req.Email, string(hash), req.BusinessName, req.OwnerName, req.Phone, req.BusinessType, req.NumberOfTables)
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	if err := h.openSession(w, user.ID); err != nil {
		h.logger.Error("open session", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	h.logger.Info("user signed up", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Unknown email and wrong password get
// the same response to avoid account enumeration.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.userStore.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.openSession(w, user.ID); err != nil {
		h.logger.Error("open session", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessionStore.Delete(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/auth/session: the logged-in user, for dashboard
// boot.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, err := h.userStore.GetByID(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("session user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Profile handles GET /api/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.Session(w, r)
}

type profileRequest struct {
	BusinessName   string `json:"business_name"`
	OwnerName      string `json:"owner_name"`
	Phone          string `json:"phone"`
	BusinessType   string `json:"business_type"`
	NumberOfTables int    `json:"number_of_tables"`
}

// UpdateProfile handles PUT /api/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.OwnerName = strings.TrimSpace(req.OwnerName)
	if req.BusinessName == "" || req.OwnerName == "" {
		writeError(w, http.StatusBadRequest, "business_name and owner_name are required")
		return
	}
	if req.NumberOfTables < 0 {
		writeError(w, http.StatusBadRequest, "number_of_tables cannot be negative")
		return
	}

	user, err := h.userStore.UpdateProfile(auth.UserID(r.Context()), req.BusinessName, req.OwnerName, req.Phone, req.BusinessType, req.NumberOfTables)
	if err != nil {
		h.logger.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) openSession(w http.ResponseWriter, userID int64) error {
	sess, err := h.sessionStore.Create(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
