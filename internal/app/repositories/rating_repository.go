package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/pkg/apperrors"
	"github.com/odemir/campusclubs/internal/pkg/dberrors"
)

// RatingConstraint is the unique constraint guarding one rating per
// (user, entity kind, entity id).
const RatingConstraint = "ratings_user_id_entity_kind_entity_id_key"

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	db *pgxpool.Pool
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{db: db}
}

// GetByUserAndEntity retrieves the user's rating of an entity, if any.
func (r *RatingRepository) GetByUserAndEntity(ctx context.Context, userID int64, kind models.EntityKind, entityID int64) (*models.Rating, error) {
	query := squirrel.Select("id", "user_id", "entity_kind", "entity_id", "score", "created_at").
		From("ratings").
		Where("user_id = ? AND entity_kind = ? AND entity_id = ?", userID, kind, entityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var rating models.Rating
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.Kind,
		&rating.EntityID,
		&rating.Score,
		&rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &rating, nil
}

// Insert stores a new rating. A unique violation on the (user, kind, entity)
// constraint is surfaced as apperrors.ErrConflict so the caller can retry as
// an update.
func (r *RatingRepository) Insert(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	query := squirrel.Insert("ratings").
		Columns("user_id", "entity_kind", "entity_id", "score").
		Values(rating.UserID, rating.Kind, rating.EntityID, rating.Score).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rating.ID, &rating.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, RatingConstraint) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return rating, nil
}

// UpdateScore overwrites the score of the user's existing rating in place.
func (r *RatingRepository) UpdateScore(ctx context.Context, userID int64, kind models.EntityKind, entityID int64, score int) error {
	query := squirrel.Update("ratings").
		Set("score", score).
		Where("user_id = ? AND entity_kind = ? AND entity_id = ?", userID, kind, entityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Average computes the arithmetic mean of all scores for an entity. Returns
// nil when the entity has no ratings; callers must not conflate that with a
// zero average.
func (r *RatingRepository) Average(ctx context.Context, kind models.EntityKind, entityID int64) (*float64, error) {
	query := squirrel.Select("AVG(score)").
		From("ratings").
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var avg *float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return avg, nil
}

// ListByEntity retrieves all ratings of an entity, most recent first, with
// the rating users attached.
func (r *RatingRepository) ListByEntity(ctx context.Context, kind models.EntityKind, entityID int64) ([]*models.Rating, error) {
	query := squirrel.Select(
		"r.id", "r.user_id", "r.entity_kind", "r.entity_id", "r.score", "r.created_at",
		"u.id", "u.username", "u.email", "u.first_name", "u.last_name", "u.role",
	).
		From("ratings r").
		Join("users u ON u.id = r.user_id").
		Where("r.entity_kind = ? AND r.entity_id = ?", kind, entityID).
		OrderBy("r.created_at DESC").
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

	var ratings []*models.Rating
	for rows.Next() {
		var rating models.Rating
		var user models.User
		if err := rows.Scan(
			&rating.ID,
			&rating.UserID,
			&rating.Kind,
			&rating.EntityID,
			&rating.Score,
			&rating.CreatedAt,
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Role,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		rating.User = &user
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ratings, nil
}
