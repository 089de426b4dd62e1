package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crucial707/account-service/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// ==========================
// PostgresUserRepo
// ==========================
type PostgresUserRepo struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db, now: time.Now}
}

const selectUserColumns = `SELECT id, email, name, password_hash, created_at, updated_at FROM users`

// ==========================
// Find By Email
// ==========================
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, selectUserColumns+` WHERE email = $1`, email))
}

// ==========================
// Find By ID
// ==========================
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrNotFound
	}
	return r.scanOne(r.DB.QueryRowContext(ctx, selectUserColumns+` WHERE id = $1`, id))
}

// ==========================
// Create User
// ==========================
func (r *PostgresUserRepo) Create(ctx context.Context, user models.User) (models.User, error) {
	now := r.now().UTC().Truncate(time.Microsecond)
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}

	return user, nil
}

func (r *PostgresUserRepo) scanOne(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
