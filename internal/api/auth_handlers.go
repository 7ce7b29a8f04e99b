package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/pocket-shop/internal/api/middleware"
	"github.com/example/pocket-shop/internal/auth"
	"github.com/example/pocket-shop/internal/domain/user"
	"github.com/example/pocket-shop/internal/screen"
	"go.uber.org/zap"
)

// AuthHandlers handles registration, login and the session cookie
type AuthHandlers struct {
	userService *user.Service
	jwtService  *auth.JWTService
	screens     screen.Navigator
	loginDelay  time.Duration
	logger      *zap.Logger
}

func NewAuthHandlers(userService *user.Service, jwtService *auth.JWTService, screens screen.Navigator, loginDelay time.Duration, logger *zap.Logger) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{
		userService: userService,
		jwtService:  jwtService,
		screens:     screens,
		loginDelay:  loginDelay,
		logger:      logger,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Message   string       `json:"message,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	Screen    screen.Name  `json:"screen"`
}

// UserResponse never includes the password
type UserResponse struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

// Register validates the form, overwrites the stored record and returns to Login.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var form user.RegisterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cred, err := h.userService.Register(r.Context(), form)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	h.screens.Navigate(screen.Login)

	respondWithScreen(w, h.screens, http.StatusCreated, AuthResponse{
		User:    UserResponse{Email: cred.Email, UserName: cred.UserName},
		Message: "Registration successful",
		Screen:  h.screens.Current(),
	})
}

// Login checks the form against the stored record. On success the session
// cookie is set and the List screen is scheduled after the login delay.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var form user.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cred, err := h.userService.Login(r.Context(), form)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateSessionToken(cred.Email, cred.UserName)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	h.screens.Navigate(screen.Login)
	h.screens.NavigateAfter(h.loginDelay, screen.List)

	respondWithScreen(w, h.screens, http.StatusOK, AuthResponse{
		User:      UserResponse{Email: cred.Email, UserName: cred.UserName},
		Message:   "You have logged in successfully.",
		Token:     token,
		ExpiresAt: &expiresAt,
		Screen:    h.screens.Current(),
	})
}

// Logout clears the session cookie and returns to Login
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	h.screens.Navigate(screen.Login)

	respondWithScreen(w, h.screens, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}

// Me returns the current authenticated user's information
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())
	if email == "" {
		respondJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	resp := UserResponse{Email: email}
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		resp.UserName = claims.UserName
	}
	respondWithScreen(w, h.screens, http.StatusOK, resp)
}
