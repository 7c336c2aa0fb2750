package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/renovo/internal/db"
	"github.com/alexanderramin/renovo/internal/domain"
)

// SQLiteQuoteRepo keeps issued quotes: summary columns for listing plus the
// full JSON document as emitted.
type SQLiteQuoteRepo struct {
	db db.DBTX
}

func NewSQLiteQuoteRepo(conn db.DBTX) *SQLiteQuoteRepo {
	return &SQLiteQuoteRepo{db: conn}
}

func (r *SQLiteQuoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	body, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding quote %s: %w", q.QuoteID, err)
	}

	var city string
	var area float64
	if len(q.Zones) > 0 {
		city, area = q.Zones[0].City, q.Zones[0].AreaM2
	}
	scenario := domain.CoalesceStr(string(q.Assumptions.Scenario), string(domain.ScenarioMid))

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quotes (id, created_at, city, area_m2, scenario, net_price, total_price, confidence, trust, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.QuoteID, formatTime(q.CreatedUTC), city, area, scenario,
		q.Totals.NetPrice, q.Totals.TotalPrice, q.Confidence.Score, q.Trust.Score, string(body),
	)
	if err != nil {
		return fmt.Errorf("inserting quote %s: %w", q.QuoteID, err)
	}
	return nil
}

func (r *SQLiteQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM quotes WHERE id = ?`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading quote %s: %w", id, err)
	}

	var q domain.Quote
	if err := json.Unmarshal([]byte(body), &q); err != nil {
		return nil, fmt.Errorf("decoding quote %s: %w", id, err)
	}
	return &q, nil
}

// ListRecent returns up to limit quotes, newest first.
func (r *SQLiteQuoteRepo) ListRecent(ctx context.Context, limit int) ([]QuoteSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, city, area_m2, scenario, net_price, total_price, confidence, trust
		FROM quotes ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var out []QuoteSummary
	for rows.Next() {
		var s QuoteSummary
		var created, scenario string
		if err := rows.Scan(&s.ID, &created, &s.City, &s.AreaM2, &scenario,
			&s.NetPrice, &s.TotalPrice, &s.Confidence, &s.Trust); err != nil {
			return nil, fmt.Errorf("scanning quote summary: %w", err)
		}
		t, err := parseTime(created)
		if err != nil {
			return nil, fmt.Errorf("parsing quote created_at %q: %w", created, err)
		}
		s.CreatedAt = t
		s.Scenario = domain.Scenario(scenario)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}
	return out, nil
}
