package view

import (
	"context"
	"errors"

	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/domain/session"
)

// WalletToggled reads the header button's flag. It is independent of the
// connector's stored account.
func WalletToggled(ctx context.Context, kv session.KV, clientID string) (bool, error) {
	v, err := kv.Get(ctx, clientID, session.KeyWalletConnected)
	if errors.Is(err, session.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// ToggleWallet flips the header flag and returns the new state with its toast.
func ToggleWallet(ctx context.Context, kv session.KV, clientID string) (bool, notice.Toast, error) {
	on, err := WalletToggled(ctx, kv, clientID)
	if err != nil {
		return false, notice.Toast{}, err
	}
	on = !on
	v := "false"
	if on {
		v = "true"
	}
	if err := kv.Set(ctx, clientID, session.KeyWalletConnected, v); err != nil {
		return !on, notice.Toast{}, err
	}
	if on {
		return true, notice.Success("Wallet connected successfully!"), nil
	}
	return false, notice.Info("Wallet disconnected"), nil
}
