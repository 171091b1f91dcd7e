package user

import "context"

type Repository interface {
	// GetByUsername returns nil without error when no account matches.
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
}
