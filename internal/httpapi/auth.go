package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/domain"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/service"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store"
)

var errInvalidCredentials = errors.New("invalid username or password")

type AuthManager struct {
	secret []byte
	ttl    time.Duration
	repo   store.Repository
}

func NewAuthManager(secret string, ttl time.Duration, repo store.Repository) *AuthManager {
	return &AuthManager{secret: []byte(secret), ttl: ttl, repo: repo}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (a *AuthManager) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := a.repo.GetUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errInvalidCredentials
	}

	expiresAt := time.Now().Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		AccessToken: signed,
		Role:        user.Role,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

func (a *AuthManager) parse(tokenString string) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

// requireAuth validates the bearer token and stamps the actor on the request
// context for attribution downstream.
func (a *AuthManager) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
			return
		}
		c, err := a.parse(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired token"})
			return
		}
		ctx := service.WithActor(r.Context(), c.Subject, c.Role)
		ctx = context.WithValue(ctx, roleKey{}, c.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type roleKey struct{}

// requireRole guards admin-only routes. It assumes requireAuth already ran.
func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, _ := r.Context().Value(roleKey{}).(string); got != role {
				writeJSON(w, http.StatusForbidden, errorBody{Error: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
