package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/handler"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

type accountResolver interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
}

// Auth validates the bearer token and resolves the full principal (user plus
// their bank account) into the request context.
func Auth(secret string, accounts accountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			account, err := accounts.GetByUserID(r.Context(), claims.UserID)
			if err != nil {
				logging.FromContext(r.Context()).Warn("principal has no account", "error", err, "user_id", claims.UserID)
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), auth.Principal{
				UserID:        claims.UserID,
				AccountID:     account.ID,
				AccountNumber: account.AccountNumber,
				Username:      claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
