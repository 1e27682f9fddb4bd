package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminGate holds the lock-gating credentials for administrative logins.
type AdminGate struct {
	User     string
	PassHash string // bcrypt
}

// LoginHandler issues tokens. Student logins are open (the study flow has no
// accounts of its own); editor and admin logins are gated by the bcrypt
// admin credential.
//
// POST /auth/login {"username": "...", "password": "...", "role": "student|editor|admin"}
func LoginHandler(a *AuthService, gate AdminGate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		role := strings.TrimSpace(req.Role)
		if role == "" {
			role = "student"
		}
		username := strings.TrimSpace(req.Username)
		if username == "" {
			http.Error(w, "username required", http.StatusBadRequest)
			return
		}
		switch role {
		case "student":
			// open
		case "editor", "admin":
			if username != gate.User ||
				bcrypt.CompareHashAndPassword([]byte(gate.PassHash), []byte(req.Password)) != nil {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
		default:
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		tok, err := a.IssueJWT(username, role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}
