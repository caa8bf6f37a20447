package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odemir/campusclubs/internal/app/models"
)

// FeedbackRepository handles database operations for feedback comments
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Insert stores a new feedback comment. No uniqueness applies.
func (r *FeedbackRepository) Insert(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error) {
	query := squirrel.Insert("feedback").
		Columns("user_id", "entity_kind", "entity_id", "comment").
		Values(feedback.UserID, feedback.Kind, feedback.EntityID, feedback.Comment).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&feedback.ID, &feedback.CreatedAt); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return feedback, nil
}

// ListByEntity retrieves all feedback on an entity, most recent first, with
// the commenting users attached.
func (r *FeedbackRepository) ListByEntity(ctx context.Context, kind models.EntityKind, entityID int64) ([]*models.Feedback, error) {
	query := squirrel.Select(
		"f.id", "f.user_id", "f.entity_kind", "f.entity_id", "f.comment", "f.created_at",
		"u.id", "u.username", "u.email", "u.first_name", "u.last_name", "u.role",
	).
		From("feedback f").
		Join("users u ON u.id = f.user_id").
		Where("f.entity_kind = ? AND f.entity_id = ?", kind, entityID).
		OrderBy("f.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		var feedback models.Feedback
		var user models.User
		if err := rows.Scan(
			&feedback.ID,
			&feedback.UserID,
			&feedback.Kind,
			&feedback.EntityID,
			&feedback.Comment,
			&feedback.CreatedAt,
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Role,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		feedback.User = &user
		feedbacks = append(feedbacks, &feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return feedbacks, nil
}
