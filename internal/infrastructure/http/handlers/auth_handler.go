package handlers

import (
	"net/http"

	"github.com/tablero-app/tablero/internal/application/auth"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/infrastructure/http/middleware"
)

// AuthHandler handles /auth/*: password signup, login and the current user.
type AuthHandler struct {
	register *auth.Register
	login    *auth.Login
	users    ports.UserRepository
}

func NewAuthHandler(register *auth.Register, login *auth.Login, users ports.UserRepository) *AuthHandler {
	return &AuthHandler{register: register, login: login, users: users}
}

// Register creates an account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email" validate:"required,max=254"`
		Password  string `json:"password" validate:"required,max=128"`
		FirstName string `json:"firstName" validate:"max=100"`
		LastName  string `json:"lastName" validate:"max=100"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	user, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Email:     SanitizeEmail(body.Email),
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	p := user.Profile()
	writeJSON(w, http.StatusCreated, toUserResponse(&p))
}

// Login verifies credentials and returns an access token with the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if !decodeValid(w, r, &body) {
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: body.Password,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	p := result.User.Profile()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken": result.AccessToken,
		"user":        toUserResponse(&p),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := h.users.GetByID(r.Context(), principal.ID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if user == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	p := user.Profile()
	writeJSON(w, http.StatusOK, toUserResponse(&p))
}
