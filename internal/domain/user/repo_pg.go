package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT "UserID", "Username", "PasswordHash", "Role", "HospitalID"
		FROM "Users"
		WHERE "Username" = $1`, username).
		Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Role, &u.HospitalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO "Users" ("Username", "PasswordHash", "Role", "HospitalID")
		VALUES ($1, $2, $3, $4)
		RETURNING "UserID"`,
		u.Username, u.PasswordHash, u.Role, u.HospitalID).
		Scan(&u.UserID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
