package chainmock

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	domain "loanchain-web/internal/domain/chain"
	"loanchain-web/internal/domain/loan"
)

var _ domain.LendingContract = (*Contract)(nil)

// Contract is a function-backed mock that satisfies chain.LendingContract.
// Every call, read or write, is recorded by method name in Calls.
type Contract struct {
	Addr common.Address

	AdminFn          func(ctx context.Context) (common.Address, error)
	LoanByIDFn       func(ctx context.Context, id *big.Int) (loan.Loan, error)
	AllLoansFn       func(ctx context.Context) ([]loan.Loan, error)
	BorrowerLoanIDFn func(ctx context.Context, borrower common.Address) (*big.Int, error)
	LoanStatusFn     func(ctx context.Context, borrower common.Address) (loan.BorrowerStatus, error)
	TotalLentFn      func(ctx context.Context) (*big.Int, error)
	BalanceFn        func(ctx context.Context) (*big.Int, error)
	EstimateGasFn    func(ctx context.Context, call domain.Call) (uint64, error)
	SendFn           func(ctx context.Context, call domain.Call, gas uint64) (common.Hash, error)

	mu    sync.Mutex
	Calls []string
	Sent  []domain.Call
}

func (m *Contract) record(name string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()
}

// CallCount returns the number of recorded calls.
func (m *Contract) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *Contract) Address() common.Address { return m.Addr }

func (m *Contract) Admin(ctx context.Context) (common.Address, error) {
	m.record("admin")
	if m.AdminFn != nil {
		return m.AdminFn(ctx)
	}
	return common.Address{}, errUnimplemented
}

func (m *Contract) LoanByID(ctx context.Context, id *big.Int) (loan.Loan, error) {
	m.record("getLoanById")
	if m.LoanByIDFn != nil {
		return m.LoanByIDFn(ctx, id)
	}
	return loan.Loan{}, errUnimplemented
}

func (m *Contract) AllLoans(ctx context.Context) ([]loan.Loan, error) {
	m.record("getAllLoanRequests")
	if m.AllLoansFn != nil {
		return m.AllLoansFn(ctx)
	}
	return nil, nil
}

func (m *Contract) BorrowerLoanID(ctx context.Context, borrower common.Address) (*big.Int, error) {
	m.record("borrowerToLoanId")
	if m.BorrowerLoanIDFn != nil {
		return m.BorrowerLoanIDFn(ctx, borrower)
	}
	return nil, errUnimplemented
}

func (m *Contract) LoanStatus(ctx context.Context, borrower common.Address) (loan.BorrowerStatus, error) {
	m.record("getLoanStatus")
	if m.LoanStatusFn != nil {
		return m.LoanStatusFn(ctx, borrower)
	}
	return loan.BorrowerStatus{}, errUnimplemented
}

func (m *Contract) TotalLent(ctx context.Context) (*big.Int, error) {
	m.record("totalLent")
	if m.TotalLentFn != nil {
		return m.TotalLentFn(ctx)
	}
	return big.NewInt(0), nil
}

func (m *Contract) Balance(ctx context.Context) (*big.Int, error) {
	m.record("balance")
	if m.BalanceFn != nil {
		return m.BalanceFn(ctx)
	}
	return big.NewInt(0), nil
}

func (m *Contract) EstimateGas(ctx context.Context, call domain.Call) (uint64, error) {
	m.record("estimate:" + call.Method)
	if m.EstimateGasFn != nil {
		return m.EstimateGasFn(ctx, call)
	}
	return 21000, nil
}

func (m *Contract) Send(ctx context.Context, call domain.Call, gas uint64) (common.Hash, error) {
	m.record("send:" + call.Method)
	m.mu.Lock()
	m.Sent = append(m.Sent, call)
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, call, gas)
	}
	return common.Hash{0x01}, nil
}
