package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/repository"
)

type memoryIdempotencyRepo struct {
	entries map[string]*repository.IdempotencyCacheEntry
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{entries: make(map[string]*repository.IdempotencyCacheEntry)}
}

func (m *memoryIdempotencyRepo) Get(_ context.Context, key string, userID uuid.UUID) (*repository.IdempotencyCacheEntry, error) {
	return m.entries[key+userID.String()], nil
}

func (m *memoryIdempotencyRepo) Set(_ context.Context, entry *repository.IdempotencyCacheEntry) error {
	m.entries[entry.Key+entry.UserID.String()] = entry
	return nil
}

func idempotentRequest(key, body string, p auth.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/deposit", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req.WithContext(auth.ContextWithPrincipal(req.Context(), p))
}

func TestIdempotency(t *testing.T) {
	principal := auth.Principal{UserID: uuid.New(), AccountID: uuid.New(), AccountNumber: 1001, Username: "alice"}

	t.Run("missing key is rejected", func(t *testing.T) {
		mw := Idempotency(newMemoryIdempotencyRepo())
		handlerCalled := false
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, idempotentRequest("", `{"amount":"200"}`, principal))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, handlerCalled)
	})

	t.Run("retry replays the stored response", func(t *testing.T) {
		mw := Idempotency(newMemoryIdempotencyRepo())
		calls := 0
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true}`))
		}))

		key := uuid.NewString()

		first := httptest.NewRecorder()
		h.ServeHTTP(first, idempotentRequest(key, `{"amount":"200"}`, principal))
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.NewRecorder()
		h.ServeHTTP(second, idempotentRequest(key, `{"amount":"200"}`, principal))

		require.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
		assert.Equal(t, 1, calls, "handler must run exactly once")
	})

	t.Run("key reuse with different payload conflicts", func(t *testing.T) {
		mw := Idempotency(newMemoryIdempotencyRepo())
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		key := uuid.NewString()

		first := httptest.NewRecorder()
		h.ServeHTTP(first, idempotentRequest(key, `{"amount":"200"}`, principal))
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.NewRecorder()
		h.ServeHTTP(second, idempotentRequest(key, `{"amount":"999"}`, principal))
		require.Equal(t, http.StatusConflict, second.Code)
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		mw := Idempotency(newMemoryIdempotencyRepo())
		calls := 0
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
		}))

		key := uuid.NewString()
		other := auth.Principal{UserID: uuid.New(), AccountID: uuid.New(), AccountNumber: 1002, Username: "bob"}

		h.ServeHTTP(httptest.NewRecorder(), idempotentRequest(key, `{"amount":"200"}`, principal))
		h.ServeHTTP(httptest.NewRecorder(), idempotentRequest(key, `{"amount":"200"}`, other))

		assert.Equal(t, 2, calls, "same key from different users must not collide")
	})
}
