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

// MembershipConstraint is the unique constraint guarding one membership row
// per (user, club).
const MembershipConstraint = "club_memberships_user_id_club_id_key"

// MembershipRepository handles database operations for club memberships.
// The club_memberships table is the only representation of membership.
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// IsMember checks whether the user has a membership row for the club.
func (r *MembershipRepository) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	query := squirrel.Select("1").
		From("club_memberships").
		Where("club_id = ? AND user_id = ?", clubID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return true, nil
}

// Add inserts a membership row. Returns apperrors.ErrAlreadyMember when the
// unique constraint fires, so a concurrent double join degenerates to the
// idempotent outcome.
func (r *MembershipRepository) Add(ctx context.Context, clubID, userID int64) (int64, error) {
	query := squirrel.Insert("club_memberships").
		Columns("club_id", "user_id").
		Values(clubID, userID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, MembershipConstraint) {
			return 0, apperrors.ErrAlreadyMember
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return id, nil
}

// Remove deletes a membership row. Returns apperrors.ErrNotMember when there
// was nothing to delete.
func (r *MembershipRepository) Remove(ctx context.Context, clubID, userID int64) error {
	query := squirrel.Delete("club_memberships").
		Where("club_id = ? AND user_id = ?", clubID, userID).
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
		return apperrors.ErrNotMember
	}
	return nil
}

// ListMembers retrieves a club's members with their join timestamps, most
// recent first.
func (r *MembershipRepository) ListMembers(ctx context.Context, clubID int64) ([]*models.ClubMembership, error) {
	query := squirrel.Select(
		"m.id", "m.club_id", "m.user_id", "m.joined_at",
		"u.id", "u.username", "u.email", "u.first_name", "u.last_name", "u.role",
	).
		From("club_memberships m").
		Join("users u ON u.id = m.user_id").
		Where("m.club_id = ?", clubID).
		OrderBy("m.joined_at DESC").
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

	var memberships []*models.ClubMembership
	for rows.Next() {
		var m models.ClubMembership
		var u models.User
		if err := rows.Scan(
			&m.ID,
			&m.ClubID,
			&m.UserID,
			&m.JoinedAt,
			&u.ID,
			&u.Username,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&u.Role,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		m.User = &u
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return memberships, nil
}

// CountByClub retrieves the number of members of a club.
func (r *MembershipRepository) CountByClub(ctx context.Context, clubID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("club_memberships").
		Where("club_id = ?", clubID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
