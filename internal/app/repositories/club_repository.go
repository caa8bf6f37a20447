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

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubColumns = `id, title, slug, description, manager_id, created_at, updated_at`

func scanClub(row pgx.Row) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
		&club.ID,
		&club.Title,
		&club.Slug,
		&club.Description,
		&club.ManagerID,
		&club.CreatedAt,
		&club.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error scanning club: %w", err)
	}
	return &club, nil
}

// GetAll retrieves clubs with optional title/slug search and pagination,
// ordered by title like the public listing.
func (r *ClubRepository) GetAll(ctx context.Context, search *string, page, pageSize int) ([]models.Club, int64, error) {
	offset := (page - 1) * pageSize

	builder := squirrel.Select(
		"id", "title", "slug", "description", "manager_id", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("clubs").
		OrderBy("title").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"slug": pattern},
		})
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

	var clubs []models.Club
	var total int64
	for rows.Next() {
		var club models.Club
		if err := rows.Scan(
			&club.ID,
			&club.Title,
			&club.Slug,
			&club.Description,
			&club.ManagerID,
			&club.CreatedAt,
			&club.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	if clubs == nil {
		clubs = []models.Club{}
	}
	return clubs, total, nil
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`
	return scanClub(r.db.QueryRow(ctx, query, id))
}

// GetBySlug retrieves a club by slug
func (r *ClubRepository) GetBySlug(ctx context.Context, slug string) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE slug = $1`
	return scanClub(r.db.QueryRow(ctx, query, slug))
}

// Create inserts a new club. Title and slug uniqueness are enforced by the
// storage layer.
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) (*models.Club, error) {
	query := `
		INSERT INTO clubs (title, slug, description, manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		club.Title,
		club.Slug,
		club.Description,
		club.ManagerID,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrClubAlreadyExists
		}
		return nil, fmt.Errorf("error creating club: %w", err)
	}
	return club, nil
}

// Update modifies a club's title, description and manager. The slug is never
// touched; it is immutable once set.
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET title = $1, description = $2, manager_id = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.db.Exec(ctx, query, club.Title, club.Description, club.ManagerID, club.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrClubAlreadyExists
		}
		return fmt.Errorf("error updating club: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// Delete removes a club; memberships, events and announcements cascade.
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// GetFeatured returns the top clubs ordered by average rating, then member
// count. Used by the home page.
func (r *ClubRepository) GetFeatured(ctx context.Context, limit int) ([]models.Club, error) {
	query := `
		SELECT c.id, c.title, c.slug, c.description, c.manager_id, c.created_at, c.updated_at
		FROM clubs c
		LEFT JOIN ratings r ON r.entity_kind = 'club' AND r.entity_id = c.id
		LEFT JOIN club_memberships m ON m.club_id = c.id
		GROUP BY c.id
		ORDER BY AVG(r.score) DESC NULLS LAST, COUNT(DISTINCT m.user_id) DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		var club models.Club
		if err := rows.Scan(
			&club.ID,
			&club.Title,
			&club.Slug,
			&club.Description,
			&club.ManagerID,
			&club.CreatedAt,
			&club.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return clubs, nil
}
