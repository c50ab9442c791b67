package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"raiseme/internal/domain"
)

const uniqueViolation = "23505"

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user and fills in the generated id.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (profile_pic, email, password, first_name, last_name, is_admin, create_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id;
`, user.ProfilePic, user.Email, user.Password, user.FirstName, user.LastName, user.IsAdmin, user.CreateDate)

	if err := row.Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByID fetches a user by primary key.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUser+` WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by unique email.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUser+` WHERE email = $1`, email)
	return scanUser(row)
}

// List returns every user.
func (r *UserRepositoryPG) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.ProfilePic, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.IsAdmin, &u.CreateDate, &u.LastLoginDate); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// Update persists all mutable profile fields.
func (r *UserRepositoryPG) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET profile_pic = $1, email = $2, password = $3, first_name = $4, last_name = $5
WHERE id = $6;
`, user.ProfilePic, user.Email, user.Password, user.FirstName, user.LastName, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TouchLastLogin stamps the user's last successful login.
func (r *UserRepositoryPG) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_date = $1 WHERE id = $2`, at, id)
	return err
}

const selectUser = `
SELECT id, profile_pic, email, password, first_name, last_name, is_admin, create_date, last_login_date
FROM users`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.ProfilePic, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.IsAdmin, &u.CreateDate, &u.LastLoginDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
