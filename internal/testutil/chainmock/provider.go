package chainmock

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	domain "loanchain-web/internal/domain/chain"
)

var _ domain.Provider = (*Provider)(nil)

var errUnimplemented = errors.New("chainmock: method not implemented")

// Provider is a function-backed mock that satisfies chain.Provider.
// SwitchChain and AddChain default to success; the rest return errUnimplemented.
type Provider struct {
	SwitchChainFn     func(ctx context.Context, chainID uint64) error
	AddChainFn        func(ctx context.Context, n domain.Network) error
	RequestAccountsFn func(ctx context.Context) ([]common.Address, error)
	AccountsFn        func(ctx context.Context) ([]common.Address, error)
	ContractFn        func(addr common.Address) (domain.LendingContract, error)
}

// WithAccount returns a provider on the right chain that exposes one account
// and the given contract.
func WithAccount(account common.Address, c domain.LendingContract) *Provider {
	accounts := func(context.Context) ([]common.Address, error) { return []common.Address{account}, nil }
	return &Provider{
		RequestAccountsFn: accounts,
		AccountsFn:        accounts,
		ContractFn:        func(common.Address) (domain.LendingContract, error) { return c, nil },
	}
}

func (m *Provider) SwitchChain(ctx context.Context, chainID uint64) error {
	if m.SwitchChainFn != nil {
		return m.SwitchChainFn(ctx, chainID)
	}
	return nil
}

func (m *Provider) AddChain(ctx context.Context, n domain.Network) error {
	if m.AddChainFn != nil {
		return m.AddChainFn(ctx, n)
	}
	return nil
}

func (m *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if m.RequestAccountsFn != nil {
		return m.RequestAccountsFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Provider) Accounts(ctx context.Context) ([]common.Address, error) {
	if m.AccountsFn != nil {
		return m.AccountsFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Provider) Contract(addr common.Address) (domain.LendingContract, error) {
	if m.ContractFn != nil {
		return m.ContractFn(addr)
	}
	return nil, errUnimplemented
}
