package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/renovo/internal/db"
	"github.com/alexanderramin/renovo/internal/domain"
)

// SQLiteFeedbackRepo stores the accept/reject log in feedback_history.
type SQLiteFeedbackRepo struct {
	db db.DBTX
}

func NewSQLiteFeedbackRepo(conn db.DBTX) *SQLiteFeedbackRepo {
	return &SQLiteFeedbackRepo{db: conn}
}

func (r *SQLiteFeedbackRepo) Append(ctx context.Context, rec domain.FeedbackRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback_history (quote_id, accepted, ts) VALUES (?, ?, ?)`,
		rec.QuoteID, boolToInt(rec.Accepted), formatTime(rec.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting feedback record: %w", err)
	}
	return nil
}

func (r *SQLiteFeedbackRepo) ListRecent(ctx context.Context, limit int) ([]domain.FeedbackRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT quote_id, accepted, ts FROM (
			SELECT seq, quote_id, accepted, ts FROM feedback_history ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing feedback history: %w", err)
	}
	defer rows.Close()

	var out []domain.FeedbackRecord
	for rows.Next() {
		rec, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback history: %w", err)
	}
	return out, nil
}

// Trim deletes all but the newest keep records.
func (r *SQLiteFeedbackRepo) Trim(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM feedback_history WHERE seq NOT IN (
			SELECT seq FROM feedback_history ORDER BY seq DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("trimming feedback history: %w", err)
	}
	return nil
}

func (r *SQLiteFeedbackRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM feedback_history`); err != nil {
		return fmt.Errorf("clearing feedback history: %w", err)
	}
	return nil
}

func scanFeedback(rows *sql.Rows) (domain.FeedbackRecord, error) {
	var rec domain.FeedbackRecord
	var accepted int
	var ts string
	if err := rows.Scan(&rec.QuoteID, &accepted, &ts); err != nil {
		return rec, fmt.Errorf("scanning feedback record: %w", err)
	}
	rec.Accepted = intToBool(accepted)
	t, err := parseTime(ts)
	if err != nil {
		return rec, fmt.Errorf("parsing feedback timestamp %q: %w", ts, err)
	}
	rec.Timestamp = t
	return rec, nil
}
