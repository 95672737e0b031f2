// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/users/auth"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const accountColumns = `id, username, email, passwordhash, fullname, COALESCE(imagekey, ''), role, isactive, createdat, updatedat`

/*
List returns a page of undeleted accounts ordered by creation time, newest
first, plus the unfiltered total count.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total count
  - error: Database errors
*/
func (repository *PostgresAccountRepository) List(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	const countQuery = `SELECT COUNT(*) FROM users.account WHERE deletedat IS NULL`

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE deletedat IS NULL
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0, params.Limit)
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.FullName, &user.ImageKey, &user.Role, &user.IsActive,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

/*
FindByID retrieves an account by its unique ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.ImageKey, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return user, nil
}

// exec runs a single-row account mutation and maps zero affected rows to
// NotFound.
func (repository *PostgresAccountRepository) exec(context context.Context, action, query string, args ...any) error {
	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_%s_failed: %w", action, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// SetActive flips the is_active flag on an undeleted account.
func (repository *PostgresAccountRepository) SetActive(context context.Context, id string, active bool) error {
	const query = `
		UPDATE users.account
		SET isactive = $2, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL`

	return repository.exec(context, "set_active", query, id, active)
}

// AssignRole replaces the account's role.
func (repository *PostgresAccountRepository) AssignRole(context context.Context, id string, role sec.UserRole) error {
	const query = `
		UPDATE users.account
		SET role = $2, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL`

	return repository.exec(context, "assign_role", query, id, role)
}

// UpdateImageKey replaces the account's profile image reference.
func (repository *PostgresAccountRepository) UpdateImageKey(context context.Context, id, imageKey string) error {
	const query = `
		UPDATE users.account
		SET imagekey = $2, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL`

	return repository.exec(context, "update_image", query, id, imageKey)
}

// SoftDelete flags an account as logically deleted. Idempotent.
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	const query = `
		UPDATE users.account
		SET deletedat = NOW(), isactive = FALSE, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_soft_delete_failed: %w", err)
	}

	return nil
}

// # Profile Repository

// PostgresProfileRepository implements the ProfileRepository interface using pgx.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of the ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

/*
FindDoctor retrieves the doctor profile for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *DoctorProfile: Hydrated profile
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) FindDoctor(context context.Context, userID string) (*DoctorProfile, error) {
	const query = `
		SELECT userid, collegeid, academictitle, createdat, updatedat
		FROM users.doctor_profile
		WHERE userid = $1`

	profile := &DoctorProfile{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&profile.UserID, &profile.CollegeID, &profile.AcademicTitle,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Doctor profile")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_doctor_failed: %w", err)
	}

	return profile, nil
}

/*
UpsertDoctor creates or replaces a doctor profile in one statement.

Parameters:
  - context: context.Context
  - profile: *DoctorProfile

Returns:
  - error: Foreign key violations or connectivity errors
*/
func (repository *PostgresProfileRepository) UpsertDoctor(context context.Context, profile *DoctorProfile) error {
	const query = `
		INSERT INTO users.doctor_profile (userid, collegeid, academictitle, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), $4)
		ON CONFLICT (userid) DO UPDATE
		SET collegeid = EXCLUDED.collegeid,
		    academictitle = EXCLUDED.academictitle,
		    updatedat = EXCLUDED.updatedat`

	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		profile.UserID, profile.CollegeID, profile.AcademicTitle, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_upsert_doctor_failed: %w", err)
	}

	return nil
}

/*
FindStudent retrieves the student profile for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *StudentProfile: Hydrated profile
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) FindStudent(context context.Context, userID string) (*StudentProfile, error) {
	const query = `
		SELECT userid, departmentid, yearid, studentnumber, createdat, updatedat
		FROM users.student_profile
		WHERE userid = $1`

	profile := &StudentProfile{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&profile.UserID, &profile.DepartmentID, &profile.YearID,
		&profile.StudentNumber, &profile.CreatedAt, &profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Student profile")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_student_failed: %w", err)
	}

	return profile, nil
}

/*
UpsertStudent creates or replaces a student profile in one statement.

Parameters:
  - context: context.Context
  - profile: *StudentProfile

Returns:
  - error: Foreign key violations or connectivity errors
*/
func (repository *PostgresProfileRepository) UpsertStudent(context context.Context, profile *StudentProfile) error {
	const query = `
		INSERT INTO users.student_profile (userid, departmentid, yearid, studentnumber, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), $5)
		ON CONFLICT (userid) DO UPDATE
		SET departmentid = EXCLUDED.departmentid,
		    yearid = EXCLUDED.yearid,
		    studentnumber = EXCLUDED.studentnumber,
		    updatedat = EXCLUDED.updatedat`

	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		profile.UserID, profile.DepartmentID, profile.YearID,
		profile.StudentNumber, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_upsert_student_failed: %w", err)
	}

	return nil
}

// refExists runs an EXISTS probe against a catalogue table. Tables are
// hardcoded by the callers, never caller input.
func (repository *PostgresProfileRepository) refExists(context context.Context, table, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_profile_repo_ref_check_failed: %w", err)
	}

	return exists, nil
}

// CollegeExists reports whether the referenced college row exists.
func (repository *PostgresProfileRepository) CollegeExists(context context.Context, id string) (bool, error) {
	return repository.refExists(context, "academics.college", id)
}

// DepartmentExists reports whether the referenced department row exists.
func (repository *PostgresProfileRepository) DepartmentExists(context context.Context, id string) (bool, error) {
	return repository.refExists(context, "academics.department", id)
}

// YearExists reports whether the referenced study year row exists.
func (repository *PostgresProfileRepository) YearExists(context context.Context, id string) (bool, error) {
	return repository.refExists(context, "academics.studyyear", id)
}
