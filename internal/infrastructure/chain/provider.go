package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	domain "loanchain-web/internal/domain/chain"
)

// Backend is the subset of *ethclient.Client the provider and contract use.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

type DialFunc func(ctx context.Context, rawURL string) (Backend, error)

func dialEthclient(ctx context.Context, rawURL string) (Backend, error) {
	return ethclient.DialContext(ctx, rawURL)
}

var errNoChain = errors.New("no chain selected")

// KeyedProvider plays the role of the injected browser wallet: it holds the
// account keys and one backend per known chain, one of which is selected.
type KeyedProvider struct {
	dial DialFunc

	keys     map[common.Address]*ecdsa.PrivateKey
	accounts []common.Address

	mu       sync.RWMutex
	backends map[uint64]Backend
	current  uint64
}

type Option func(*KeyedProvider)

// WithDialer replaces the ethclient dialer used by AddChain.
func WithDialer(d DialFunc) Option { return func(p *KeyedProvider) { p.dial = d } }

func NewKeyedProvider(keys []*ecdsa.PrivateKey, opts ...Option) *KeyedProvider {
	p := &KeyedProvider{
		dial:     dialEthclient,
		keys:     make(map[common.Address]*ecdsa.PrivateKey, len(keys)),
		backends: map[uint64]Backend{},
	}
	for _, k := range keys {
		addr := crypto.PubkeyToAddress(k.PublicKey)
		if _, dup := p.keys[addr]; dup {
			continue
		}
		p.keys[addr] = k
		p.accounts = append(p.accounts, addr)
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ParseKeys decodes hex private keys, with or without a 0x prefix.
func ParseKeys(hexKeys []string) ([]*ecdsa.PrivateKey, error) {
	out := make([]*ecdsa.PrivateKey, 0, len(hexKeys))
	for i, h := range hexKeys {
		h = strings.TrimPrefix(strings.TrimSpace(h), "0x")
		if h == "" {
			continue
		}
		k, err := crypto.HexToECDSA(h)
		if err != nil {
			return nil, fmt.Errorf("wallet key #%d: %w", i, err)
		}
		out = append(out, k)
	}
	return out, nil
}

// Open builds the wallet from hex keys. With no keys there is no wallet, and
// the returned Provider is nil.
func Open(hexKeys []string, opts ...Option) (domain.Provider, error) {
	keys, err := ParseKeys(hexKeys)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	return NewKeyedProvider(keys, opts...), nil
}

// Register makes a chain known to the provider without selecting it.
func (p *KeyedProvider) Register(chainID uint64, b Backend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backends[chainID] = b
}

func (p *KeyedProvider) SwitchChain(_ context.Context, chainID uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.backends[chainID]; !ok {
		return fmt.Errorf("chain 0x%x: %w", chainID, domain.ErrUnrecognizedChain)
	}
	p.current = chainID
	return nil
}

// AddChain dials the first RPC URL, checks the node serves the announced
// chain, then registers and selects it.
func (p *KeyedProvider) AddChain(ctx context.Context, n domain.Network) error {
	if len(n.RPCURLs) == 0 {
		return fmt.Errorf("add chain %q: no rpc url", n.ChainName)
	}
	b, err := p.dial(ctx, n.RPCURLs[0])
	if err != nil {
		return fmt.Errorf("add chain %q: %w", n.ChainName, err)
	}
	id, err := b.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("add chain %q: %w", n.ChainName, err)
	}
	if !id.IsUint64() || id.Uint64() != n.ChainID {
		return fmt.Errorf("add chain %q: rpc reports chain id %s, want %d", n.ChainName, id, n.ChainID)
	}
	log.Printf("chain: added %s (0x%x) via %s", n.ChainName, n.ChainID, n.RPCURLs[0])

	p.mu.Lock()
	defer p.mu.Unlock()
	p.backends[n.ChainID] = b
	p.current = n.ChainID
	return nil
}

func (p *KeyedProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if len(p.accounts) == 0 {
		return nil, domain.ErrUserRejected
	}
	return p.Accounts(ctx)
}

func (p *KeyedProvider) Accounts(context.Context) ([]common.Address, error) {
	out := make([]common.Address, len(p.accounts))
	copy(out, p.accounts)
	return out, nil
}

func (p *KeyedProvider) Contract(addr common.Address) (domain.LendingContract, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.backends[p.current]
	if !ok {
		return nil, errNoChain
	}
	return NewLending(addr, b, new(big.Int).SetUint64(p.current), p.keyFor), nil
}

func (p *KeyedProvider) keyFor(addr common.Address) (*ecdsa.PrivateKey, bool) {
	k, ok := p.keys[addr]
	return k, ok
}
