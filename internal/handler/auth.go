package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

const passwordResetExpiry = 15 * time.Minute

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type emailSender interface {
	Send(to, subject, body string) error
}

type AuthHandler struct {
	users       userStore
	mailer      emailSender
	jwtSecret   string
	jwtExpiry   time.Duration
	frontendURL string
}

func NewAuthHandler(users userStore, mailer emailSender, jwtSecret string, jwtExpiry time.Duration, frontendURL string) *AuthHandler {
	return &AuthHandler{
		users:       users,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
		frontendURL: frontendURL,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			RespondAppError(w, ErrInvalidCredentials, nil)
			return
		}
		RespondDomainError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondAppError(w, ErrInvalidCredentials, nil)
		return
	}

	if !user.IsVerified {
		RespondAppError(w, ErrEmailNotVerified, nil)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Username, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, loginResponse{
		Token: token,
		User: userDTO{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
	})
}

type requestPasswordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset emails a reset link. The response is 200 regardless
// of whether the email is registered.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var req requestPasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if req.Email == "" {
		RespondValidationError(w, []FieldError{{Field: "email", Message: "required"}})
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err == nil {
		token, tokenErr := auth.GeneratePasswordResetToken(user.ID, user.Email, h.jwtSecret, passwordResetExpiry)
		if tokenErr != nil {
			log.Error("failed to generate reset token", "error", tokenErr)
			RespondAppError(w, ErrInternalError, nil)
			return
		}

		body := fmt.Sprintf("Hi, click the link below to reset your password\n%s/password-reset?token=%s",
			h.frontendURL, token)
		if sendErr := h.mailer.Send(user.Email, "Reset password", body); sendErr != nil {
			log.Warn("failed to send reset email", "error", sendErr, "to", user.Email)
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{
		"message": "We sent you a link to reset your password",
	})
}

type completePasswordResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r completePasswordResetRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Token == "" {
		errs = append(errs, FieldError{Field: "token", Message: "required"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	return errs
}

func (h *AuthHandler) CompletePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req completePasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	claims, err := auth.ValidatePasswordResetToken(req.Token, h.jwtSecret)
	if err != nil {
		RespondAppError(w, ErrInvalidToken, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	if err := h.users.UpdatePassword(r.Context(), claims.UserID, string(hash)); err != nil {
		logging.FromContext(r.Context()).Error("failed to update password", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"message": "Password reset success",
	})
}
