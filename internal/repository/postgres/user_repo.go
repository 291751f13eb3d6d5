package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/vedran77/circle/internal/domain"
)

const userColumns = `id, login, email, password_hash, country_code, is_public, phone, image`

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (login, email, password_hash, country_code, is_public, phone, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		user.Login, user.Email, user.PasswordHash, user.CountryCode,
		user.IsPublic, user.Phone, user.Image,
	).Scan(&user.ID)
	return translateError(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id)
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE login = $1", login)
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE phone = $1", phone)
}

func (r *UserRepo) FindConflicting(ctx context.Context, login, email string, phone *string) ([]domain.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE login = $1 OR email = $2 OR ($3::text IS NOT NULL AND phone = $3)`

	rows, err := r.db.Query(ctx, query, login, email, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET country_code = $1, is_public = $2, phone = $3, image = $4 WHERE id = $5`
	_, err := r.db.Exec(ctx, query, user.CountryCode, user.IsPublic, user.Phone, user.Image, user.ID)
	return translateError(err)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUserRow(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserRow(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Login, &u.Email, &u.PasswordHash,
		&u.CountryCode, &u.IsPublic, &u.Phone, &u.Image,
	)
	return u, err
}
