package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

type mockUserStore struct {
	user *domain.User

	updatedID   uuid.UUID
	updatedHash string
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.updatedID = id
	m.updatedHash = hash
	return nil
}

type mockMailer struct {
	to      string
	subject string
	body    string
}

func (m *mockMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func verifiedUser(t *testing.T, email, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsVerified:   true,
	}
}

func TestLogin(t *testing.T) {
	user := verifiedUser(t, "alice@test.com", "alice", "secret123")

	newHandler := func(u *domain.User) *AuthHandler {
		return NewAuthHandler(&mockUserStore{user: u}, &mockMailer{}, testHandlerSecret, time.Hour, "http://localhost:3000")
	}

	t.Run("valid credentials", func(t *testing.T) {
		h := newHandler(user)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123"}`))
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		token, ok := data["token"].(string)
		require.True(t, ok)

		claims, err := auth.ValidateToken(token, testHandlerSecret)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		h := newHandler(user)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"alice@test.com","password":"wrong"}`))
		h.Login(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		h := newHandler(user)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"nobody@test.com","password":"secret123"}`))
		h.Login(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unverified email", func(t *testing.T) {
		unverified := verifiedUser(t, "pending@test.com", "pending", "secret123")
		unverified.IsVerified = false
		h := newHandler(unverified)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"pending@test.com","password":"secret123"}`))
		h.Login(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EMAIL_NOT_VERIFIED", resp.Error.Code)
	})
}

const testHandlerSecret = "test-handler-secret"

func TestPasswordResetFlow(t *testing.T) {
	user := verifiedUser(t, "alice@test.com", "alice", "oldpassword")
	store := &mockUserStore{user: user}
	mail := &mockMailer{}
	h := NewAuthHandler(store, mail, testHandlerSecret, time.Hour, "http://localhost:3000")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/request-password-reset",
		strings.NewReader(`{"email":"alice@test.com"}`))
	h.RequestPasswordReset(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice@test.com", mail.to)

	// pull the token out of the emailed link
	idx := strings.LastIndex(mail.body, "token=")
	require.Greater(t, idx, 0)
	token := mail.body[idx+len("token="):]

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/auth/password-reset-complete",
		strings.NewReader(`{"token":"`+token+`","password":"newpassword"}`))
	h.CompletePasswordReset(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, store.updatedID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.updatedHash), []byte("newpassword")))
}

func TestRequestPasswordReset_UnknownEmailStillOK(t *testing.T) {
	mail := &mockMailer{}
	h := NewAuthHandler(&mockUserStore{}, mail, testHandlerSecret, time.Hour, "http://localhost:3000")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/request-password-reset",
		strings.NewReader(`{"email":"nobody@test.com"}`))
	h.RequestPasswordReset(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, mail.to, "no email should be sent for unknown addresses")
}

func TestCompletePasswordReset_RejectsSessionToken(t *testing.T) {
	user := verifiedUser(t, "alice@test.com", "alice", "oldpassword")
	h := NewAuthHandler(&mockUserStore{user: user}, &mockMailer{}, testHandlerSecret, time.Hour, "http://localhost:3000")

	sessionToken, err := auth.GenerateToken(user.ID, user.Email, user.Username, testHandlerSecret, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/password-reset-complete",
		strings.NewReader(`{"token":"`+sessionToken+`","password":"newpassword"}`))
	h.CompletePasswordReset(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TOKEN", resp.Error.Code)
}
