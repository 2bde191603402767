package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/inventar/internal/auth"
	"github.com/erazemk/inventar/internal/store"
)

// AuthHandler handles authentication endpoints for the shared admin
// identity.
type AuthHandler struct {
	DB            *sql.DB
	SessionSecret string
	AdminUsername string
	AdminHash     []byte // bcrypt hash of the configured admin password
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// checkCredentials verifies a username/password pair against the
// configured admin account. The result never reveals which of the two was
// wrong.
func (h *AuthHandler) checkCredentials(username, password string) bool {
	if username != h.AdminUsername {
		// Burn a comparison anyway so the response time does not depend
		// on whether the username matched.
		_ = bcrypt.CompareHashAndPassword(h.AdminHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(h.AdminHash, []byte(password)) == nil
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	}

	if !h.checkCredentials(username, password) {
		slog.Warn("login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.SessionSecret, username)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("admin logged in", "user", username)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout. The session's JTI is revoked
// server-side, so the token is dead even before it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims != nil && claims.ID != "" {
		if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke token", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me, the session-status probe. It always
// returns 200 with the current login state.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	loggedIn := false

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if claims, err := auth.ValidateToken(h.SessionSecret, tokenStr); err == nil {
			revoked := false
			if claims.ID != "" {
				revoked, _ = store.IsTokenRevoked(r.Context(), h.DB, claims.ID)
			}
			loggedIn = !revoked
		}
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"logged_in": loggedIn})
}
