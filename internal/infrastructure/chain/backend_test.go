package chain

import (
	"context"
	"errors"
	"math/big"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeBackend answers contract calls from canned return values keyed by
// method name and mines every sent transaction with receiptStatus.
type fakeBackend struct {
	mu sync.Mutex

	chainID       *big.Int
	returns       map[string][]any
	balance       *big.Int
	gas           uint64
	receiptStatus uint64

	calls []string
	sent  []*types.Transaction
}

func newFakeBackend(chainID uint64) *fakeBackend {
	return &fakeBackend{
		chainID:       new(big.Int).SetUint64(chainID),
		returns:       map[string][]any{},
		balance:       big.NewInt(0),
		gas:           21000,
		receiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) { return f.chainID, nil }

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	m, err := parsedABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, m.Name)
	f.mu.Unlock()
	vals, ok := f.returns[m.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return m.Outputs.Pack(vals...)
}

func (f *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	m, err := parsedABI.MethodById(msg.Data[:4])
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, "estimate:"+m.Name)
	f.mu.Unlock()
	return f.gas, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) { return big.NewInt(1e9), nil }

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return f.balance, nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, h common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tx := range f.sent {
		if tx.Hash() == h {
			return &types.Receipt{Status: f.receiptStatus, TxHash: h}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}
