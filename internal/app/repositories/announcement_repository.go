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
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// GetByID retrieves an announcement by ID
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `
		SELECT id, title, content, author_id, is_global, club_id, created_at, updated_at
		FROM announcements
		WHERE id = $1
	`
	var a models.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.AuthorID,
		&a.IsGlobal,
		&a.ClubID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &a, nil
}

// ListVisibleTo retrieves announcements the viewer may see, most recent
// first. A nil viewer sees only global announcements; a college admin sees
// everything; anyone else sees global announcements plus those of clubs they
// joined or manage.
func (r *AnnouncementRepository) ListVisibleTo(ctx context.Context, viewer *models.User, page, pageSize int) ([]models.Announcement, int64, error) {
	offset := (page - 1) * pageSize

	builder := squirrel.Select(
		"a.id", "a.title", "a.content", "a.author_id", "a.is_global", "a.club_id",
		"a.created_at", "a.updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("announcements a").
		OrderBy("a.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	switch {
	case viewer == nil:
		builder = builder.Where(squirrel.Eq{"a.is_global": true})
	case viewer.IsCollegeAdmin():
		// Unfiltered.
	default:
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"a.is_global": true},
			squirrel.Expr("a.club_id IN (SELECT club_id FROM club_memberships WHERE user_id = ?)", viewer.ID),
			squirrel.Expr("a.club_id IN (SELECT id FROM clubs WHERE manager_id = ?)", viewer.ID),
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

	var announcements []models.Announcement
	var total int64
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Content,
			&a.AuthorID,
			&a.IsGlobal,
			&a.ClubID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	if announcements == nil {
		announcements = []models.Announcement{}
	}
	return announcements, total, nil
}

// ListLatestGlobal retrieves the most recent global announcements. Used by
// the home page.
func (r *AnnouncementRepository) ListLatestGlobal(ctx context.Context, limit int) ([]models.Announcement, error) {
	query := `
		SELECT id, title, content, author_id, is_global, club_id, created_at, updated_at
		FROM announcements
		WHERE is_global = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Content,
			&a.AuthorID,
			&a.IsGlobal,
			&a.ClubID,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return announcements, nil
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (*models.Announcement, error) {
	query := squirrel.Insert("announcements").
		Columns("title", "content", "author_id", "is_global", "club_id").
		Values(a.Title, a.Content, a.AuthorID, a.IsGlobal, a.ClubID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return a, nil
}

// Update modifies an announcement's title and content. Scope is immutable.
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	query := squirrel.Update("announcements").
		Set("title", a.Title).
		Set("content", a.Content).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", a.ID).
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
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}
