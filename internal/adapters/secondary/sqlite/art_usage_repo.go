package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

type artUsageRepo struct {
	db *sql.DB
}

// NewArtUsageRepository creates a new art usage repository
func NewArtUsageRepository(db *sql.DB) ports.ArtUsageRepository {
	return &artUsageRepo{db: db}
}

func (r *artUsageRepo) Upsert(ctx context.Context, rec *domain.ArtUsageRecord) error {
	query := `
		INSERT INTO art_usage (art_url, card_id, last_used_at)
		VALUES (?, ?, ?)
		ON CONFLICT (art_url) DO UPDATE SET
			card_id = excluded.card_id,
			last_used_at = MAX(art_usage.last_used_at, excluded.last_used_at)
	`
	if _, err := r.db.ExecContext(ctx, query, rec.ArtURL, rec.CardID, formatTime(rec.LastUsedAt)); err != nil {
		return fmt.Errorf("upsert art_usage: %w", err)
	}
	return nil
}

func (r *artUsageRepo) FindByURLs(ctx context.Context, urls []string) ([]*domain.ArtUsageRecord, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(urls)), ",")
	args := make([]any, len(urls))
	for i, u := range urls {
		args[i] = u
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT art_url, card_id, last_used_at
		FROM art_usage
		WHERE art_url IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("find art_usage: %w", err)
	}
	defer rows.Close()

	var out []*domain.ArtUsageRecord
	for rows.Next() {
		var (
			rec     domain.ArtUsageRecord
			usedRaw string
		)
		if err := rows.Scan(&rec.ArtURL, &rec.CardID, &usedRaw); err != nil {
			return nil, fmt.Errorf("scan art_usage: %w", err)
		}
		if rec.LastUsedAt, err = parseTime(usedRaw); err != nil {
			return nil, fmt.Errorf("parse art_usage.last_used_at: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
