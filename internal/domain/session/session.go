package session

import (
	"context"
	"errors"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Keys of the per-client key/value store.
const (
	KeyConnectedAccount = "connectedAccount"
	KeyUser             = "loanchain_user"
	KeyWalletConnected  = "walletConnected"
	KeyFlash            = "flash"
)

var ErrNotFound = errors.New("key not found")

// Record is the mock logged-in user. It is a cosmetic gate only: anything
// that can write the client's store can forge it.
type Record struct {
	Username      string `json:"username"`
	Role          Role   `json:"role"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

func (r Record) IsAdmin() bool { return r.Role == RoleAdmin }

// KV is one browser's local storage: string keys to string values, scoped by
// client id. Get returns ErrNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID, key string) error
}
