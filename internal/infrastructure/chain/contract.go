package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	domain "loanchain-web/internal/domain/chain"
	"loanchain-web/internal/domain/loan"
)

var _ domain.LendingContract = (*Lending)(nil)

// Lending is a contract handle bound to one address on one chain.
type Lending struct {
	address common.Address
	backend Backend
	chainID *big.Int
	keyFor  func(common.Address) (*ecdsa.PrivateKey, bool)
}

// NewLending binds addr on backend. keyFor resolves signing keys for Send.
func NewLending(addr common.Address, b Backend, chainID *big.Int, keyFor func(common.Address) (*ecdsa.PrivateKey, bool)) *Lending {
	return &Lending{address: addr, backend: b, chainID: chainID, keyFor: keyFor}
}

func (c *Lending) Address() common.Address { return c.address }

func (c *Lending) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := parsedABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	res, err := parsedABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return res, nil
}

func (c *Lending) Admin(ctx context.Context) (common.Address, error) {
	res, err := c.call(ctx, MethodAdmin)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(res[0], new(common.Address)).(*common.Address), nil
}

func (c *Lending) LoanByID(ctx context.Context, id *big.Int) (loan.Loan, error) {
	res, err := c.call(ctx, MethodLoanByID, id)
	if err != nil {
		return loan.Loan{}, err
	}
	t := *abi.ConvertType(res[0], new(loanTuple)).(*loanTuple)
	return t.toLoan(id.Uint64()), nil
}

func (c *Lending) AllLoans(ctx context.Context) ([]loan.Loan, error) {
	res, err := c.call(ctx, MethodAllLoans)
	if err != nil {
		return nil, err
	}
	tuples := *abi.ConvertType(res[0], new([]loanTuple)).(*[]loanTuple)
	out := make([]loan.Loan, len(tuples))
	for i, t := range tuples {
		out[i] = t.toLoan(uint64(i))
	}
	return out, nil
}

func (c *Lending) BorrowerLoanID(ctx context.Context, borrower common.Address) (*big.Int, error) {
	res, err := c.call(ctx, MethodBorrowerLoanID, borrower)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(res[0], new(*big.Int)).(**big.Int), nil
}

func (c *Lending) LoanStatus(ctx context.Context, borrower common.Address) (loan.BorrowerStatus, error) {
	res, err := c.call(ctx, MethodLoanStatus, borrower)
	if err != nil {
		return loan.BorrowerStatus{}, err
	}
	return loan.BorrowerStatus{
		LoanID:    res[0].(*big.Int),
		Amount:    res[1].(*big.Int),
		Approved:  res[2].(bool),
		Repaid:    res[3].(bool),
		Timestamp: res[4].(*big.Int).Uint64(),
	}, nil
}

func (c *Lending) TotalLent(ctx context.Context) (*big.Int, error) {
	res, err := c.call(ctx, MethodTotalLent)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(res[0], new(*big.Int)).(**big.Int), nil
}

func (c *Lending) Balance(ctx context.Context) (*big.Int, error) {
	return c.backend.BalanceAt(ctx, c.address, nil)
}

func (c *Lending) msg(call domain.Call) (ethereum.CallMsg, error) {
	data, err := parsedABI.Pack(call.Method, call.Args...)
	if err != nil {
		return ethereum.CallMsg{}, fmt.Errorf("pack %s: %w", call.Method, err)
	}
	return ethereum.CallMsg{From: call.From, To: &c.address, Value: call.Value, Data: data}, nil
}

func (c *Lending) EstimateGas(ctx context.Context, call domain.Call) (uint64, error) {
	m, err := c.msg(call)
	if err != nil {
		return 0, err
	}
	return c.backend.EstimateGas(ctx, m)
}

func (c *Lending) Send(ctx context.Context, call domain.Call, gas uint64) (common.Hash, error) {
	key, ok := c.keyFor(call.From)
	if !ok {
		return common.Hash{}, fmt.Errorf("account %s is not managed by this wallet", call.From.Hex())
	}
	m, err := c.msg(call)
	if err != nil {
		return common.Hash{}, err
	}
	nonce, err := c.backend.PendingNonceAt(ctx, call.From)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}
	price, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas price: %w", err)
	}
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: price,
		Gas:      gas,
		To:       &c.address,
		Value:    value,
		Data:     m.Data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, err
	}
	receipt, err := bind.WaitMined(ctx, c.backend, signed)
	if err != nil {
		return signed.Hash(), err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return signed.Hash(), fmt.Errorf("%s %s: %w", call.Method, signed.Hash().Hex(), domain.ErrReverted)
	}
	return signed.Hash(), nil
}

func (t loanTuple) toLoan(id uint64) loan.Loan {
	ts := uint64(0)
	if t.Timestamp != nil {
		ts = t.Timestamp.Uint64()
	}
	return loan.Loan{
		ID:        id,
		Borrower:  t.Borrower,
		Amount:    t.Amount,
		Approved:  t.Approved,
		Repaid:    t.Repaid,
		Timestamp: ts,
	}
}
