package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	// GetByUsername returns ErrNotFound when no row matches.
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
