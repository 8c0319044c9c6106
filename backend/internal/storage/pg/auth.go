package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
)

const userColumns = "id, email, password_hash, role, name, bio, avatar_url, created_at, updated_at"

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user. A duplicate email is a Conflict.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	return s.saveUser(ctx, s.db, user)
}

// UserByEmail looks a user up by email, case-insensitively.
func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	return s.userByEmail(ctx, s.db, email)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	return s.userById(ctx, s.db, id)
}

// UpdateProfile changes the non-nil fields of the profile and returns the
// updated user. Email, role and password are never touched here.
func (s *Storage) UpdateProfile(ctx context.Context, id domain.UserId, update domain.ProfileUpdate) (domain.User, error) {
	var user domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.updateProfile(ctx, tx, id, update); err != nil {
			return err
		}
		var err error
		user, err = s.userById(ctx, tx, id)
		return err
	})
	return user, err
}

// RevokeSession records a signed-out token until it would have expired anyway.
// Rows of tokens that already expired are purged in the same transaction.
func (s *Storage) RevokeSession(ctx context.Context, tokenId string, expiresAt time.Time) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.purgeRevocations(ctx, tx, time.Now()); err != nil {
			return err
		}
		return s.revokeSession(ctx, tx, tokenId, expiresAt)
	})
}

// ActiveRevocations returns the revoked token ids that have not yet expired.
func (s *Storage) ActiveRevocations(ctx context.Context, now time.Time) (map[string]time.Time, error) {
	return s.activeRevocations(ctx, s.db, now)
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) (domain.UserId, error) {
	_, err := q.ExecContext(ctx, `
		INSERT INTO users(id, email, password_hash, role, name, bio, avatar_url)
		VALUES($1, $2, $3, $4, $5, $6, $7)`,
		user.Id, strings.ToLower(user.Email), user.PassHash, string(user.Role), user.Name, user.Bio, user.AvatarUrl,
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.UserId{}, internal_errors.Conflict("Email already registered")
		}
		return domain.UserId{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user.Id, nil
}

func (s *Storage) userByEmail(ctx context.Context, q Querier, email domain.Email) (domain.User, error) {
	row := q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(email))
	return scanUser(row)
}

func (s *Storage) userById(ctx context.Context, q Querier, id domain.UserId) (domain.User, error) {
	row := q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.Id, &user.Email, &user.PassHash, &role, &user.Name, &user.Bio, &user.AvatarUrl, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	user.Role = domain.Role(role)
	return user, nil
}

func (s *Storage) updateProfile(ctx context.Context, q Querier, id domain.UserId, update domain.ProfileUpdate) error {
	result, err := q.ExecContext(ctx, `
		UPDATE users SET
			name       = COALESCE($2, name),
			bio        = COALESCE($3, bio),
			avatar_url = COALESCE($4, avatar_url),
			updated_at = now()
		WHERE id = $1`,
		id, nullString(update.Name), nullString(update.Bio), nullString(update.AvatarUrl),
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return checkAffected(result, "User not found")
}

func (s *Storage) revokeSession(ctx context.Context, q Querier, tokenId string, expiresAt time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO revoked_sessions(token_id, expires_at) VALUES($1, $2)
		ON CONFLICT (token_id) DO NOTHING`,
		tokenId, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *Storage) purgeRevocations(ctx context.Context, q Querier, now time.Time) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM revoked_sessions WHERE expires_at <= $1", now); err != nil {
		return fmt.Errorf("failed to purge expired revocations: %w", err)
	}
	return nil
}

func (s *Storage) activeRevocations(ctx context.Context, q Querier, now time.Time) (map[string]time.Time, error) {
	rows, err := q.QueryContext(ctx, "SELECT token_id, expires_at FROM revoked_sessions WHERE expires_at > $1", now)
	if err != nil {
		return nil, fmt.Errorf("failed to query revoked sessions: %w", err)
	}
	defer rows.Close()

	revoked := make(map[string]time.Time)
	for rows.Next() {
		var tokenId string
		var expiresAt time.Time
		if err := rows.Scan(&tokenId, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan revoked session: %w", err)
		}
		revoked[tokenId] = expiresAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return revoked, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
