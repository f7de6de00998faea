package view

import (
	"context"
	"encoding/json"
	"errors"

	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/domain/session"
)

// ToastDurationMS is how long a toast stays up unless closed earlier.
const ToastDurationMS = 5000

// Notifier keeps at most one pending toast per client, shown on the next
// rendered page.
type Notifier struct{ kv session.KV }

func NewNotifier(kv session.KV) *Notifier { return &Notifier{kv: kv} }

// Show replaces any pending toast.
func (n *Notifier) Show(ctx context.Context, clientID string, t notice.Toast) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return n.kv.Set(ctx, clientID, session.KeyFlash, string(b))
}

// Take pops the pending toast; nil when there is none.
func (n *Notifier) Take(ctx context.Context, clientID string) (*notice.Toast, error) {
	raw, err := n.kv.Get(ctx, clientID, session.KeyFlash)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := n.kv.Delete(ctx, clientID, session.KeyFlash); err != nil {
		return nil, err
	}
	var t notice.Toast
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, nil
	}
	return &t, nil
}

// AutoDismiss reports whether a toast hides itself. Info toasts stay on the
// dashboard until closed.
func AutoDismiss(t notice.Toast, path string) bool {
	return !(t.Kind == notice.KindInfo && path == "/dashboard")
}
