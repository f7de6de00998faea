package connector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"loanchain-web/internal/domain/chain"
	"loanchain-web/internal/domain/session"
)

// ErrNoProvider means no wallet is configured on this server.
var ErrNoProvider = errors.New("no wallet provider")

// Conn is one client's live connection: the account it acts as and the
// contract handle bound to the target chain. A nil *Conn means disconnected.
type Conn struct {
	Account  common.Address
	Contract chain.LendingContract
	Network  chain.Network
}

type Connector struct {
	provider chain.Provider
	kv       session.KV
	network  chain.Network
	contract common.Address
}

// New builds a connector. provider may be nil when no wallet is configured.
func New(p chain.Provider, kv session.KV, n chain.Network, contract common.Address) *Connector {
	return &Connector{provider: p, kv: kv, network: n, contract: contract}
}

func (c *Connector) HasProvider() bool { return c.provider != nil }

func (c *Connector) Network() chain.Network { return c.network }

func (c *Connector) ContractAddress() common.Address { return c.contract }

// Connect selects the target chain (adding it when the wallet does not know
// it), requests the first account and remembers it for the client.
func (c *Connector) Connect(ctx context.Context, clientID string) (*Conn, error) {
	if c.provider == nil {
		return nil, ErrNoProvider
	}
	if err := c.ensureChain(ctx); err != nil {
		return nil, err
	}
	account, err := c.RequestAccount(ctx)
	if err != nil {
		return nil, err
	}
	lc, err := c.provider.Contract(c.contract)
	if err != nil {
		return nil, fmt.Errorf("bind contract: %w", err)
	}
	if err := c.kv.Set(ctx, clientID, session.KeyConnectedAccount, account.Hex()); err != nil {
		return nil, fmt.Errorf("store account: %w", err)
	}
	log.Printf("connector: client %s connected as %s", clientID, account.Hex())
	return &Conn{Account: account, Contract: lc, Network: c.network}, nil
}

// RequestAccount asks the wallet for access and returns the first account.
func (c *Connector) RequestAccount(ctx context.Context) (common.Address, error) {
	if c.provider == nil {
		return common.Address{}, ErrNoProvider
	}
	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(accounts) == 0 {
		return common.Address{}, chain.ErrUserRejected
	}
	return accounts[0], nil
}

// Restore silently reconnects a client whose stored account is still the
// wallet's first account. Any mismatch yields a nil Conn and no error.
func (c *Connector) Restore(ctx context.Context, clientID string) (*Conn, error) {
	if c.provider == nil {
		return nil, nil
	}
	stored, err := c.kv.Get(ctx, clientID, session.KeyConnectedAccount)
	if errors.Is(err, session.ErrNotFound) || (err == nil && stored == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	accounts, err := c.provider.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 || !strings.EqualFold(accounts[0].Hex(), stored) {
		return nil, nil
	}
	if err := c.ensureChain(ctx); err != nil {
		return nil, err
	}
	lc, err := c.provider.Contract(c.contract)
	if err != nil {
		return nil, fmt.Errorf("bind contract: %w", err)
	}
	return &Conn{Account: accounts[0], Contract: lc, Network: c.network}, nil
}

func (c *Connector) ensureChain(ctx context.Context) error {
	err := c.provider.SwitchChain(ctx, c.network.ChainID)
	if errors.Is(err, chain.ErrUnrecognizedChain) {
		return c.provider.AddChain(ctx, c.network)
	}
	return err
}
