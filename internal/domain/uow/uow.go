package uow

import (
	"context"

	"loanchain-web/internal/domain/user"
)

// Repos are the repositories bound to one transaction.
type Repos struct {
	Users user.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
