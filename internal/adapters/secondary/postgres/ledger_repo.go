package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

// ============================================================================
// Deck Names
// ============================================================================

type deckNameRepo struct {
	pool *pgxpool.Pool
}

// NewDeckNameRepository creates a new deck name repository
func NewDeckNameRepository(pool *pgxpool.Pool) ports.DeckNameRepository {
	return &deckNameRepo{pool: pool}
}

func (r *deckNameRepo) Upsert(ctx context.Context, name string, usedAt time.Time) error {
	query := `
		INSERT INTO deck_name (name, last_used_at)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET last_used_at = GREATEST(deck_name.last_used_at, EXCLUDED.last_used_at)
	`
	if _, err := r.pool.Exec(ctx, query, name, usedAt); err != nil {
		return fmt.Errorf("upsert deck_name: %w", err)
	}
	return nil
}

func (r *deckNameRepo) Search(ctx context.Context, search string, limit int) ([]*domain.DeckName, error) {
	query := `
		SELECT name, last_used_at
		FROM deck_name
		WHERE name ILIKE $1
		ORDER BY last_used_at DESC, name
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, "%"+escapeLike(search)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search deck_name: %w", err)
	}
	defer rows.Close()

	var out []*domain.DeckName
	for rows.Next() {
		var d domain.DeckName
		if err := rows.Scan(&d.Name, &d.LastUsedAt); err != nil {
			return nil, fmt.Errorf("scan deck_name: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// escapeLike escapes LIKE wildcards using postgres' default '\' escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ============================================================================
// Art Usage
// ============================================================================

type artUsageRepo struct {
	pool *pgxpool.Pool
}

// NewArtUsageRepository creates a new art usage repository
func NewArtUsageRepository(pool *pgxpool.Pool) ports.ArtUsageRepository {
	return &artUsageRepo{pool: pool}
}

func (r *artUsageRepo) Upsert(ctx context.Context, rec *domain.ArtUsageRecord) error {
	query := `
		INSERT INTO art_usage (art_url, card_id, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (art_url) DO UPDATE SET
			card_id = EXCLUDED.card_id,
			last_used_at = GREATEST(art_usage.last_used_at, EXCLUDED.last_used_at)
	`
	if _, err := r.pool.Exec(ctx, query, rec.ArtURL, rec.CardID, rec.LastUsedAt); err != nil {
		return fmt.Errorf("upsert art_usage: %w", err)
	}
	return nil
}

func (r *artUsageRepo) FindByURLs(ctx context.Context, urls []string) ([]*domain.ArtUsageRecord, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	query := `
		SELECT art_url, card_id, last_used_at
		FROM art_usage
		WHERE art_url = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, urls)
	if err != nil {
		return nil, fmt.Errorf("find art_usage: %w", err)
	}
	defer rows.Close()

	var out []*domain.ArtUsageRecord
	for rows.Next() {
		var rec domain.ArtUsageRecord
		if err := rows.Scan(&rec.ArtURL, &rec.CardID, &rec.LastUsedAt); err != nil {
			return nil, fmt.Errorf("scan art_usage: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// ============================================================================
// Health
// ============================================================================

type pinger struct {
	pool *pgxpool.Pool
}

// NewPinger reports pool reachability for health checks.
func NewPinger(pool *pgxpool.Pool) ports.Pinger {
	return &pinger{pool: pool}
}

func (p *pinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
