package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

type deckNameRepo struct {
	db *sql.DB
}

// NewDeckNameRepository creates a new deck name repository
func NewDeckNameRepository(db *sql.DB) ports.DeckNameRepository {
	return &deckNameRepo{db: db}
}

func (r *deckNameRepo) Upsert(ctx context.Context, name string, usedAt time.Time) error {
	query := `
		INSERT INTO deck_name (name, last_used_at)
		VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET last_used_at = MAX(deck_name.last_used_at, excluded.last_used_at)
	`
	if _, err := r.db.ExecContext(ctx, query, name, formatTime(usedAt)); err != nil {
		return fmt.Errorf("upsert deck_name: %w", err)
	}
	return nil
}

func (r *deckNameRepo) Search(ctx context.Context, query string, limit int) ([]*domain.DeckName, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, last_used_at
		FROM deck_name
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY last_used_at DESC, name
		LIMIT ?
	`, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search deck_name: %w", err)
	}
	defer rows.Close()

	var out []*domain.DeckName
	for rows.Next() {
		var (
			d       domain.DeckName
			usedRaw string
		)
		if err := rows.Scan(&d.Name, &usedRaw); err != nil {
			return nil, fmt.Errorf("scan deck_name: %w", err)
		}
		if d.LastUsedAt, err = parseTime(usedRaw); err != nil {
			return nil, fmt.Errorf("parse deck_name.last_used_at: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
