package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// eventColumns is the column list used for SELECT statements on the events table.
const eventColumns = `id, name, description, location, date, image, perks, pinned, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// eventRepo implements store.EventRepository against PostgreSQL.
type eventRepo struct {
	db executor
}

// Compile-time check that eventRepo implements store.EventRepository.
var _ store.EventRepository = (*eventRepo)(nil)

func (r *eventRepo) Create(ctx context.Context, e *model.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (
			id, name, description, location, date, image, perks,
			pinned, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10
		)`,
		e.ID,
		e.Name,
		nullString(e.Description),
		nullString(e.Location),
		nullString(e.Date),
		e.Image,
		jsonbStrings(e.Perks),
		e.Pinned,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	rsvps, err := r.RSVPs(ctx, id)
	if err != nil {
		return nil, err
	}
	e.RSVPs = rsvps

	return e, nil
}

func (r *eventRepo) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Pinned != nil {
		whereClauses = append(whereClauses, "pinned = "+nextArg())
		args = append(args, *filter.Pinned)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses, "(name ILIKE "+p+" OR description ILIKE "+p+")")
		args = append(args, "%"+filter.Search+"%")
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

func (r *eventRepo) Update(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET
			name = $2, description = $3, location = $4, date = $5,
			image = $6, perks = $7, pinned = $8, updated_at = $9
		WHERE id = $1`,
		e.ID,
		e.Name,
		nullString(e.Description),
		nullString(e.Location),
		nullString(e.Date),
		e.Image,
		jsonbStrings(e.Perks),
		e.Pinned,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireRow(res)
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	// RSVPs go with the event via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireRow(res)
}

func (r *eventRepo) AddRSVP(ctx context.Context, eventID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rsvps (event_id, user_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("add rsvp: %w", err)
	}
	return nil
}

func (r *eventRepo) RSVPs(ctx context.Context, eventID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM rsvps WHERE event_id = $1 ORDER BY created_at`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get rsvps: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan rsvp: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get rsvps: %w", err)
	}
	return userIDs, nil
}

// requireRow converts a zero-row mutation into model.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
