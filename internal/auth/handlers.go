package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/apperr"
	"github.com/notekeeper/backend/internal/db"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Handlers struct {
	service *Service
	logger  *zap.Logger
}

func NewHandlers(service *Service, logger *zap.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Register handles POST /register/.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"))
		return
	}

	if err := validateRegisterRequest(&req); err != nil {
		apperr.Write(w, apperr.Validation(err.Error()))
		return
	}

	if _, err := h.service.Register(r.Context(), req.Username, req.Password, req.FullName); err != nil {
		if errors.Is(err, db.ErrUsernameExists) {
			apperr.Write(w, apperr.Duplicate("User already exists"))
			return
		}
		h.logger.Error("registration failed", zap.String("username", req.Username), zap.Error(err))
		apperr.Write(w, apperr.Internal("Internal Server Error"))
		return
	}

	writeJSON(w, http.StatusOK, RegisterResponse{Message: "User created successfully"})
}

// Token handles POST /token/. Credentials arrive form-encoded, matching the
// OAuth2 password grant shape the frontend sends.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apperr.Write(w, apperr.Validation("Invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		apperr.Write(w, apperr.Validation("Username and password are required"))
		return
	}

	user, err := h.service.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			apperr.Write(w, apperr.InvalidCredentials("Invalid username or password"))
			return
		}
		h.logger.Error("login failed", zap.String("username", username), zap.Error(err))
		apperr.Write(w, apperr.Internal("Internal Server Error"))
		return
	}

	access, refresh, err := h.service.IssueTokenPair(user)
	if err != nil {
		h.logger.Error("token issuance failed", zap.String("username", username), zap.Error(err))
		apperr.Write(w, apperr.Internal("Internal Server Error"))
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenType,
		UserID:       user.ID,
		Username:     user.Username,
		FullName:     user.FullName,
	})
}

// Refresh handles POST /refresh/. An expired refresh token gets its own
// message so clients can distinguish "log in again" from "broken token".
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		apperr.Write(w, apperr.Validation("Refresh token is required"))
		return
	}

	access, err := h.service.RefreshAccess(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshExpired):
			apperr.Write(w, apperr.ExpiredRefresh("Refresh token expired"))
		case errors.Is(err, ErrInvalidToken):
			apperr.Write(w, apperr.InvalidToken("Invalid refresh token"))
		default:
			h.logger.Error("token refresh failed", zap.Error(err))
			apperr.Write(w, apperr.Internal("Internal Server Error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		AccessToken: access,
		TokenType:   TokenType,
	})
}

func validateRegisterRequest(req *RegisterRequest) error {
	if req.Username == "" {
		return errors.New("username is required")
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	if req.FullName == "" {
		return errors.New("full_name is required")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
