package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/student-records-api/internal/domain"
)

// CredentialRepo stores users and their pending one-time codes.
// A repo built by NewCredentialRepo runs each call on its own; inside Atomic
// every call shares one transaction.
type CredentialRepo struct {
	db *sql.DB
	q  DBTX
}

func NewCredentialRepo(db *sql.DB) *CredentialRepo {
	return &CredentialRepo{db: db, q: db}
}

func (r *CredentialRepo) Atomic(ctx context.Context, fn func(ctx context.Context, tx domain.CredentialStore) error) error {
	if r.db == nil {
		return fn(ctx, r)
	}
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &CredentialRepo{q: tx})
	})
}

const userColumns = `user_id, username, email, password_hash, created_at, updated_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *CredentialRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapError("find user by email", err)
	}
	return u, nil
}

func (r *CredentialRepo) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err != nil {
		return nil, mapError("find user by id", err)
	}
	return u, nil
}

func (r *CredentialRepo) InsertUser(ctx context.Context, u *domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.UserID, u.Username, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return mapError("insert user", err)
}

// UpdateUser applies every non-nil patch field in one statement.
func (r *CredentialRepo) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			password_hash = COALESCE($4, password_hash),
			updated_at = $5
		 WHERE user_id = $1`,
		userID, patch.Username, patch.Email, patch.PasswordHash, at)
	if err != nil {
		return mapError("update user", err)
	}
	return expectOne("update user", res)
}

func (r *CredentialRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return mapError("delete user", err)
	}
	return expectOne("delete user", res)
}

func (r *CredentialRepo) InsertOtp(ctx context.Context, rec *domain.OtpRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_otps (otp_id, email, user_id, code_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.OtpID, rec.Email, rec.UserID, rec.CodeHash, rec.ExpiresAt, rec.CreatedAt)
	return mapError("insert otp", err)
}

func (r *CredentialRepo) FindLatestOtp(ctx context.Context, email string) (*domain.OtpRecord, error) {
	var (
		rec    domain.OtpRecord
		userID sql.NullString
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT otp_id, email, user_id, code_hash, expires_at, created_at
		 FROM user_otps
		 WHERE email = $1
		 ORDER BY expires_at DESC, created_at DESC
		 LIMIT 1
		 FOR UPDATE`, email).
		Scan(&rec.OtpID, &rec.Email, &userID, &rec.CodeHash, &rec.ExpiresAt, &rec.CreatedAt)
	if err != nil {
		return nil, mapError("find latest otp", err)
	}
	if userID.Valid {
		rec.UserID = &userID.String
	}
	return &rec, nil
}

func (r *CredentialRepo) DeleteOtpsFor(ctx context.Context, email string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM user_otps WHERE email = $1`, email)
	return mapError("delete otps", err)
}

func (r *CredentialRepo) DeleteOtpsForUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM user_otps WHERE user_id = $1`, userID)
	return mapError("delete user otps", err)
}

// DeleteExpiredOtps removes codes whose expiry is before now and reports how many went.
func (r *CredentialRepo) DeleteExpiredOtps(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM user_otps WHERE expires_at < $1`, now)
	if err != nil {
		return 0, mapError("delete expired otps", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired otps: rows affected: %w", err)
	}
	return n, nil
}
