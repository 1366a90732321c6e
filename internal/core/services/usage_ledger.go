package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

// UsageLedgerService records and reads deck name and art usage. Reads
// degrade to empty results; writes fail with domain.ErrLedgerWrite.
type UsageLedgerService struct {
	deckNames ports.DeckNameRepository
	artUsage  ports.ArtUsageRepository
	now       func() time.Time
}

// NewUsageLedgerService creates a new usage ledger service
func NewUsageLedgerService(deckNames ports.DeckNameRepository, artUsage ports.ArtUsageRepository) *UsageLedgerService {
	return &UsageLedgerService{
		deckNames: deckNames,
		artUsage:  artUsage,
		now:       time.Now,
	}
}

// ============================================================================
// Deck Names
// ============================================================================

func (s *UsageLedgerService) RecordDeckName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidDeckName
	}
	if err := s.deckNames.Upsert(ctx, name, s.now()); err != nil {
		log.WithError(err).WithField("deck_name", name).Error("record deck name failed")
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// SearchDeckNames returns up to ten names containing query, most recent first.
func (s *UsageLedgerService) SearchDeckNames(ctx context.Context, query string) []*domain.DeckName {
	names, err := s.deckNames.Search(ctx, strings.TrimSpace(query), domain.DeckNameSearchLimit)
	if err != nil {
		log.WithError(err).Warn("search deck names failed")
		return []*domain.DeckName{}
	}
	if names == nil {
		names = []*domain.DeckName{}
	}
	return names
}

// ============================================================================
// Art Usage
// ============================================================================

func (s *UsageLedgerService) RecordArtUsage(ctx context.Context, artURL, cardID string) error {
	artURL, cardID = strings.TrimSpace(artURL), strings.TrimSpace(cardID)
	if artURL == "" {
		return domain.ErrInvalidArtURL
	}
	if cardID == "" {
		return domain.ErrInvalidCardID
	}

	rec := &domain.ArtUsageRecord{ArtURL: artURL, CardID: cardID, LastUsedAt: s.now()}
	if err := s.artUsage.Upsert(ctx, rec); err != nil {
		log.WithError(err).WithField("art_url", artURL).Error("record art usage failed")
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// LookupArtUsage returns usage records for urls, keyed by URL. A failed
// read is retried once before degrading to no records.
func (s *UsageLedgerService) LookupArtUsage(ctx context.Context, urls []string) map[string]*domain.ArtUsageRecord {
	out := make(map[string]*domain.ArtUsageRecord)
	urls = dedupe(urls)
	if len(urls) == 0 {
		return out
	}

	recs, err := s.artUsage.FindByURLs(ctx, urls)
	if err != nil {
		log.WithError(err).Warn("art usage lookup failed, retrying")
		recs, err = s.artUsage.FindByURLs(ctx, urls)
	}
	if err != nil {
		log.WithError(err).Error("art usage lookup failed")
		return out
	}

	for _, rec := range recs {
		out[rec.ArtURL] = rec
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
