// Package service orchestrates the engines over the repository. Handlers call
// into this package only; nothing here knows about HTTP.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/advisory"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/cache"
	"github.com/John09278606492/pos-inventory-system-sub001/internal/store"
)

type Service struct {
	repo       store.Repository
	cache      cache.InsightCache
	advisor    advisory.Provider
	log        zerolog.Logger
	validate   *validator.Validate
	insightTTL time.Duration
	now        func() time.Time
}

func New(repo store.Repository, insightCache cache.InsightCache, advisor advisory.Provider, log zerolog.Logger, insightTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		cache:      insightCache,
		advisor:    advisor,
		log:        log,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		insightTTL: insightTTL,
		now:        time.Now,
	}
}

type actorKey struct{}

// WithActor stamps the authenticated user onto the context so downstream
// writes can attribute themselves without threading a parameter everywhere.
func WithActor(ctx context.Context, username, role string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor{username: username, role: role})
}

type actor struct {
	username string
	role     string
}

func actorName(ctx context.Context) string {
	if a, ok := ctx.Value(actorKey{}).(actor); ok && a.username != "" {
		return a.username
	}
	return "system"
}

// checkRequest wraps validator failures in the store validation sentinel so
// the transport layer maps them to one status code.
func (s *Service) checkRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", store.ErrValidation, err)
	}
	return nil
}
