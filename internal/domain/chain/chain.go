package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"loanchain-web/internal/domain/loan"
)

var (
	// ErrUnrecognizedChain mirrors EIP-3085 error 4902: the provider has no
	// configuration for the requested chain id.
	ErrUnrecognizedChain = errors.New("unrecognized chain id")
	// ErrUserRejected mirrors EIP-1193 error 4001.
	ErrUserRejected = errors.New("user rejected the request")
	// ErrReverted is returned when a mined transaction has a failed status.
	ErrReverted = errors.New("transaction reverted")
)

type Currency struct {
	Name     string `json:"name"     yaml:"name"`
	Symbol   string `json:"symbol"   yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// Network is the wallet_addEthereumChain payload for the target chain.
type Network struct {
	ChainID      uint64   `json:"chainId"           yaml:"chain_id"`
	ChainName    string   `json:"chainName"         yaml:"chain_name"`
	RPCURLs      []string `json:"rpcUrls"           yaml:"rpc_urls"`
	Currency     Currency `json:"nativeCurrency"    yaml:"native_currency"`
	ExplorerURLs []string `json:"blockExplorerUrls" yaml:"block_explorer_urls"`
}

// Provider is the wallet side of the connection: chain selection, account
// access and a contract handle on the selected chain.
type Provider interface {
	SwitchChain(ctx context.Context, chainID uint64) error
	AddChain(ctx context.Context, n Network) error
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	Contract(addr common.Address) (LendingContract, error)
}

// Call describes one state-changing contract invocation.
type Call struct {
	Method string
	Args   []any
	From   common.Address
	Value  *big.Int // nil for non-payable calls
}

// LendingContract is the consumed surface of the deployed lending contract.
type LendingContract interface {
	Address() common.Address

	Admin(ctx context.Context) (common.Address, error)
	LoanByID(ctx context.Context, id *big.Int) (loan.Loan, error)
	AllLoans(ctx context.Context) ([]loan.Loan, error)
	BorrowerLoanID(ctx context.Context, borrower common.Address) (*big.Int, error)
	LoanStatus(ctx context.Context, borrower common.Address) (loan.BorrowerStatus, error)
	TotalLent(ctx context.Context) (*big.Int, error)
	Balance(ctx context.Context) (*big.Int, error)

	EstimateGas(ctx context.Context, call Call) (uint64, error)
	// Send submits the call with the given gas limit and waits until it is mined.
	Send(ctx context.Context, call Call, gas uint64) (common.Hash, error)
}
