package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

type User struct {
	ID   string
	Role string
}

type userKey struct{}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey{}).(User)
	return user, ok
}

type claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var errNoToken = errors.New("missing bearer token")

// Auth authenticates callers by HS256 bearer tokens issued by the storefront.
type Auth struct {
	logger *slog.Logger
	secret []byte
	parser *jwt.Parser
}

func NewAuth(logger *slog.Logger, secret string) *Auth {
	return &Auth{
		logger: logger.With(slog.String("component", "auth")),
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Required rejects requests without a valid token.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			a.logger.DebugContext(r.Context(), "unauthorized request", slog.String("path", r.URL.Path), slog.Any("error", err))
			utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional identifies the caller when a token is present. A present but invalid token is still rejected.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		switch {
		case errors.Is(err, errNoToken):
			next.ServeHTTP(w, r)
		case err != nil:
			utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		default:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		}
	})
}

func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if user.Role != role {
				utils.WriteError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) authenticate(r *http.Request) (User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return User{}, errNoToken
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return User{}, errors.New("malformed authorization header")
	}

	var c claims
	if _, err := a.parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return User{}, fmt.Errorf("invalid token: %w", err)
	}
	if c.Subject == "" {
		return User{}, errors.New("token has no subject")
	}
	return User{ID: c.Subject, Role: c.Role}, nil
}

// IssueToken signs a token in the format Auth accepts.
func IssueToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(secret))
}
