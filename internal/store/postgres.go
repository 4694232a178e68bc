// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pitchforge/internal/models"
)

const defaultListLimit = 50

// Postgres stores pitch records in a pitches table. Inputs and the composed
// document live in JSONB columns so documents can be re-rendered from
// storage without schema churn.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the pitches table and its indexes when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pitches (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			level TEXT NOT NULL,
			business_name TEXT NOT NULL,
			industry TEXT NOT NULL DEFAULT '',
			inputs JSONB,
			document JSONB,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pitches_user_created
			ON pitches (user_id, created_at DESC)`)
	if err != nil {
		return fmt.Errorf("ensure pitches schema: %w", err)
	}
	return nil
}

// Create inserts a pitch record, assigning an ID and a UTC creation time
// when the caller left them empty.
func (s *Postgres) Create(ctx context.Context, record *models.PitchRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	inputs, err := json.Marshal(record.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	document := []byte(record.Document)
	if len(document) == 0 {
		document = []byte("null")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pitches (id, user_id, level, business_name, industry, inputs, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.ID, record.UserID, string(record.Level), record.BusinessName,
		record.Industry, inputs, document, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert pitch: %w", err)
	}
	return nil
}

// Get loads one pitch by ID.
func (s *Postgres) Get(ctx context.Context, id string) (*models.PitchRecord, error) {
	var (
		record   models.PitchRecord
		level    string
		inputs   []byte
		document []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, level, business_name, industry, inputs, document, created_at
		FROM pitches
		WHERE id = $1`, id).Scan(
		&record.ID, &record.UserID, &level, &record.BusinessName,
		&record.Industry, &inputs, &document, &record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select pitch: %w", err)
	}

	record.Level = models.DocumentLevel(level)
	if isJSONValue(inputs) {
		record.Inputs = &models.PitchInputs{}
		if err := json.Unmarshal(inputs, record.Inputs); err != nil {
			return nil, fmt.Errorf("unmarshal inputs: %w", err)
		}
	}
	if isJSONValue(document) {
		record.Document = json.RawMessage(document)
	}
	return &record, nil
}

// CountThisMonth counts a user's pitches in the current UTC calendar month.
// The window is computed here, not in SQL, so the month boundary never
// depends on the database session time zone.
func (s *Postgres) CountThisMonth(ctx context.Context, userID string) (int, error) {
	start, end := monthWindowUTC(time.Now().UTC())

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM pitches
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`,
		userID, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pitches: %w", err)
	}
	return count, nil
}

// ListByUser returns a user's pitches, newest first. The listing omits the
// inputs and document blobs.
func (s *Postgres) ListByUser(ctx context.Context, userID string, limit int) ([]*models.PitchRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, level, business_name, industry, created_at
		FROM pitches
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list pitches: %w", err)
	}
	defer rows.Close()

	var records []*models.PitchRecord
	for rows.Next() {
		var (
			record models.PitchRecord
			level  string
		)
		if err := rows.Scan(&record.ID, &record.UserID, &level,
			&record.BusinessName, &record.Industry, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pitch row: %w", err)
		}
		record.Level = models.DocumentLevel(level)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pitch rows: %w", err)
	}
	return records, nil
}

func monthWindowUTC(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// isJSONValue reports whether a JSONB column holds an actual value rather
// than nothing or a JSON null.
func isJSONValue(raw []byte) bool {
	return len(raw) > 0 && string(raw) != "null"
}
