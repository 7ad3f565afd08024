package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"kakebo/internal/domain/user"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, first_name, last_name, password_hash, avatar_url, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	query := `
		INSERT INTO users (email, name, first_name, last_name, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	u, err := scanUserRow(r.db.QueryRowContext(
		ctx, query,
		strings.ToLower(params.Email), params.Name, params.FirstName, params.LastName,
		params.PasswordHash, params.AvatarURL,
	))
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, user.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUserRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUserRow(r.db.QueryRowContext(ctx, query, strings.ToLower(email)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		var avatarURL sql.NullString
		err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.FirstName, &u.LastName,
			&u.PasswordHash, &avatarURL, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if avatarURL.Valid {
			u.AvatarURL = &avatarURL.String
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, params user.UpdateUserParams) (*user.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    avatar_url = COALESCE($4, avatar_url),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING ` + userColumns

	u, err := scanUserRow(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.FirstName, params.LastName, params.AvatarURL, userID,
	))
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

func scanUserRow(row rowScanner) (*user.User, error) {
	var u user.User
	var avatarURL sql.NullString

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.FirstName, &u.LastName,
		&u.PasswordHash, &avatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	return &u, nil
}
