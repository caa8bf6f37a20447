package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// event_time is stored as TIME; it is selected as "HH:MM" text so the model
// can carry it without a time-of-day type.
const eventColumns = `id, title, description, event_date, to_char(event_time, 'HH24:MI'), location, club_id, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Location,
		&event.ClubID,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error scanning event: %w", err)
	}
	return &event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.db.QueryRow(ctx, query, id))
}

// ListUpcoming retrieves events dated today or later, ordered by date then
// time, optionally filtered by hosting club slug and title search.
func (r *EventRepository) ListUpcoming(ctx context.Context, today time.Time, clubSlug, search *string, page, pageSize int) ([]models.Event, int64, error) {
	offset := (page - 1) * pageSize

	builder := squirrel.Select(
		"e.id", "e.title", "e.description", "e.event_date",
		"to_char(e.event_time, 'HH24:MI')", "e.location", "e.club_id", "e.created_by",
		"e.created_at", "e.updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("events e").
		Where(squirrel.GtOrEq{"e.event_date": models.DateOf(today)}).
		OrderBy("e.event_date", "e.event_time NULLS LAST").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	if clubSlug != nil && *clubSlug != "" {
		builder = builder.Where(squirrel.Expr("e.club_id IN (SELECT id FROM clubs WHERE slug = ?)", *clubSlug))
	}
	if search != nil && *search != "" {
		builder = builder.Where(squirrel.ILike{"e.title": "%" + *search + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	var total int64
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Time,
			&event.Location,
			&event.ClubID,
			&event.CreatedBy,
			&event.CreatedAt,
			&event.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	if events == nil {
		events = []models.Event{}
	}
	return events, total, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	query := `
		INSERT INTO events (title, description, event_date, event_time, location, club_id, created_by)
		VALUES ($1, $2, $3, $4::time, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.Location,
		event.ClubID,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	return event, nil
}

// Update modifies an event's mutable fields.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, event_time = $4::time,
			location = $5, updated_at = NOW()
		WHERE id = $6
	`
	result, err := r.db.Exec(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.Location,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
