package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

// CardService wraps the card source. Upstream failures are logged and
// reported as empty results.
type CardService struct {
	source ports.CardSource
	ledger *UsageLedgerService
}

// NewCardService creates a new card service
func NewCardService(source ports.CardSource, ledger *UsageLedgerService) *CardService {
	return &CardService{source: source, ledger: ledger}
}

func (s *CardService) Autocomplete(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}
	}
	names, err := s.source.Autocomplete(ctx, partial)
	if err != nil {
		log.WithError(err).WithField("query", partial).Warn("card autocomplete failed")
		return []string{}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// SearchArts returns the art options for name.
func (s *CardService) SearchArts(ctx context.Context, name string) ([]domain.CardArtOption, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidCardName
	}
	opts, err := s.source.SearchArts(ctx, name)
	if err != nil {
		log.WithError(err).WithField("card_name", name).Warn("card art search failed")
		return []domain.CardArtOption{}, nil
	}
	if opts == nil {
		opts = []domain.CardArtOption{}
	}
	return opts, nil
}

// SearchAnnotatedArts returns the art options for name with their last
// recorded use. The annotation is advisory.
func (s *CardService) SearchAnnotatedArts(ctx context.Context, name string) ([]domain.AnnotatedArtOption, error) {
	opts, err := s.SearchArts(ctx, name)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(opts))
	for _, opt := range opts {
		urls = append(urls, opt.ArtURL)
	}
	usage := s.ledger.LookupArtUsage(ctx, urls)

	out := make([]domain.AnnotatedArtOption, 0, len(opts))
	for _, opt := range opts {
		a := domain.AnnotatedArtOption{CardArtOption: opt}
		if rec, ok := usage[opt.ArtURL]; ok {
			used := rec.LastUsedAt
			a.LastUsedAt = &used
		}
		out = append(out, a)
	}
	return out, nil
}
