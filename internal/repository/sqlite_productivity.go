package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/renovo/internal/db"
	"github.com/alexanderramin/renovo/internal/domain"
)

// SQLiteProductivityRepo stores learned (city, task) labor multipliers.
type SQLiteProductivityRepo struct {
	db db.DBTX
}

func NewSQLiteProductivityRepo(conn db.DBTX) *SQLiteProductivityRepo {
	return &SQLiteProductivityRepo{db: conn}
}

const productivityColumns = `city, task, multiplier, samples, last_ratio, updated_at`

func (r *SQLiteProductivityRepo) Get(ctx context.Context, key domain.ProductivityKey) (*domain.ProductivityMultiplier, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productivityColumns+` FROM productivity WHERE city = ? AND task = ?`,
		key.City, string(key.Task))

	var m domain.ProductivityMultiplier
	var task, updated string
	err := row.Scan(&m.City, &task, &m.Multiplier, &m.Samples, &m.LastRatio, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("productivity %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning productivity: %w", err)
	}
	return populateProductivity(&m, task, updated)
}

func (r *SQLiteProductivityRepo) Upsert(ctx context.Context, m domain.ProductivityMultiplier) error {
	key := m.Key()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO productivity (`+productivityColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(city, task) DO UPDATE SET
			multiplier = excluded.multiplier,
			samples    = excluded.samples,
			last_ratio = excluded.last_ratio,
			updated_at = excluded.updated_at`,
		key.City, string(key.Task), m.Multiplier, m.Samples, m.LastRatio, formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting productivity %s: %w", key, err)
	}
	return nil
}

// List returns every multiplier ordered by city then task.
func (r *SQLiteProductivityRepo) List(ctx context.Context) ([]domain.ProductivityMultiplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productivityColumns+` FROM productivity ORDER BY city, task`)
	if err != nil {
		return nil, fmt.Errorf("listing productivity: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductivityMultiplier
	for rows.Next() {
		var m domain.ProductivityMultiplier
		var task, updated string
		if err := rows.Scan(&m.City, &task, &m.Multiplier, &m.Samples, &m.LastRatio, &updated); err != nil {
			return nil, fmt.Errorf("scanning productivity: %w", err)
		}
		p, err := populateProductivity(&m, task, updated)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating productivity: %w", err)
	}
	return out, nil
}

func (r *SQLiteProductivityRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM productivity`); err != nil {
		return fmt.Errorf("clearing productivity: %w", err)
	}
	return nil
}

func populateProductivity(m *domain.ProductivityMultiplier, task, updated string) (*domain.ProductivityMultiplier, error) {
	m.Task = domain.TaskID(task)
	t, err := parseTime(updated)
	if err != nil {
		return nil, fmt.Errorf("parsing productivity updated_at %q: %w", updated, err)
	}
	m.UpdatedAt = t
	return m, nil
}
