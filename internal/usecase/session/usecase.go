package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/bcrypt"

	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/domain/session"
	"loanchain-web/internal/domain/uow"
	"loanchain-web/internal/domain/user"
	"loanchain-web/internal/usecase/connector"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("all registration fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTermsNotAccepted   = errors.New("terms and conditions not accepted")
)

const (
	loginDelayMS    = 1500
	registerDelayMS = 2000
	walletDelayMS   = 1500
	logoutDelayMS   = 1500
	deniedDelayMS   = 2000
)

// Wallet is the part of the chain connector the login page needs.
type Wallet interface {
	HasProvider() bool
	RequestAccount(ctx context.Context) (common.Address, error)
}

type Usecase struct {
	kv     session.KV
	users  user.Repository
	uow    uow.UnitOfWork
	wallet Wallet
}

func NewUsecase(kv session.KV, users user.Repository, tx uow.UnitOfWork, w Wallet) *Usecase {
	return &Usecase{kv: kv, users: users, uow: tx, wallet: w}
}

// Current returns the stored session record, or nil when nobody is logged in.
// An unreadable record counts as logged out.
func (u *Usecase) Current(ctx context.Context, clientID string) (*session.Record, error) {
	raw, err := u.kv.Get(ctx, clientID, session.KeyUser)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec session.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Printf("session: dropping unreadable record for %s: %v", clientID, err)
		return nil, nil
	}
	return &rec, nil
}

func (u *Usecase) current(ctx context.Context, clientID string) *session.Record {
	rec, err := u.Current(ctx, clientID)
	if err != nil {
		log.Printf("session: read %s: %v", clientID, err)
		return nil
	}
	return rec
}

// RequireAuth sends anonymous visitors straight to the login page.
func (u *Usecase) RequireAuth(ctx context.Context, clientID string) (*session.Record, *Denial) {
	rec := u.current(ctx, clientID)
	if rec == nil {
		return nil, &Denial{Redirect: notice.Redirect{To: "/login"}}
	}
	return rec, nil
}

// RequireAdmin behaves like RequireAuth, and additionally bounces non-admin
// users to the landing page after a short delay.
func (u *Usecase) RequireAdmin(ctx context.Context, clientID string) (*session.Record, *Denial) {
	rec, d := u.RequireAuth(ctx, clientID)
	if d != nil {
		return nil, d
	}
	if !rec.IsAdmin() {
		t := notice.Error("You do not have permission to access this page")
		return rec, &Denial{Toast: &t, Redirect: notice.Redirect{To: "/", DelayMS: deniedDelayMS}}
	}
	return rec, nil
}

func (u *Usecase) Login(ctx context.Context, clientID string, in LoginInput) (*Outcome, error) {
	if in.Username == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}
	usr, err := u.users.GetByUsername(ctx, in.Username)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	rec := usr.Record()
	if err := u.store(ctx, clientID, rec); err != nil {
		return nil, err
	}
	to := "/borrower"
	if rec.IsAdmin() {
		to = "/admin"
	}
	return &Outcome{
		Toast:    notice.Success("Login successful! Redirecting..."),
		Redirect: &notice.Redirect{To: to, DelayMS: loginDelayMS},
		User:     &rec,
	}, nil
}

// Register adds a user to the directory. It does not log the user in.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*Outcome, error) {
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !in.AgreeTerms {
		return nil, ErrTermsNotAccepted
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		taken, err := r.Users.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrExists
		}
		return r.Users.Create(ctx, &user.User{
			Username:     in.Username,
			PasswordHash: string(hash),
			Role:         session.RoleUser,
			Name:         in.FullName,
			Email:        in.Email,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("session: registered %s", in.Username)
	return &Outcome{
		Toast:    notice.Success("Registration successful! You can now login."),
		Redirect: &notice.Redirect{To: "/login", DelayMS: registerDelayMS},
	}, nil
}

// ConnectWithWallet logs the client in as the wallet's first account.
func (u *Usecase) ConnectWithWallet(ctx context.Context, clientID string) (*Outcome, error) {
	if u.wallet == nil || !u.wallet.HasProvider() {
		return nil, connector.ErrNoProvider
	}
	account, err := u.wallet.RequestAccount(ctx)
	if err != nil {
		return nil, err
	}
	hex := account.Hex()
	rec := session.Record{
		Username:      hex[:8] + "...",
		Role:          session.RoleUser,
		Name:          "Wallet User",
		WalletAddress: hex,
	}
	if err := u.store(ctx, clientID, rec); err != nil {
		return nil, err
	}
	if err := u.kv.Set(ctx, clientID, session.KeyConnectedAccount, hex); err != nil {
		return nil, err
	}
	return &Outcome{
		Toast:    notice.Success("Wallet connected successfully! Redirecting..."),
		Redirect: &notice.Redirect{To: "/borrower", DelayMS: walletDelayMS},
		User:     &rec,
	}, nil
}

func (u *Usecase) Logout(ctx context.Context, clientID string) (*Outcome, error) {
	if err := u.kv.Delete(ctx, clientID, session.KeyUser); err != nil {
		return nil, err
	}
	return &Outcome{
		Toast:    notice.Success("Logged out successfully"),
		Redirect: &notice.Redirect{To: "/", DelayMS: logoutDelayMS},
	}, nil
}

// UI derives the header badge and section visibility from a session record.
func UI(rec *session.Record) AuthUI {
	if rec == nil {
		return AuthUI{}
	}
	label := "User"
	if rec.IsAdmin() {
		label = "Admin"
	}
	return AuthUI{
		LoggedIn:  true,
		Badge:     label + ": " + rec.Username,
		ShowAdmin: rec.Role == session.RoleAdmin,
		ShowUser:  rec.Role == session.RoleUser,
	}
}

// ToastFor renders an auth error the way the login and register forms show it.
func ToastFor(err error) notice.Toast {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return notice.Warning("Please enter both username and password")
	case errors.Is(err, ErrInvalidCredentials):
		return notice.Error("Invalid username or password")
	case errors.Is(err, ErrMissingFields):
		return notice.Warning("Please fill in all fields")
	case errors.Is(err, ErrPasswordMismatch):
		return notice.Error("Passwords do not match")
	case errors.Is(err, ErrTermsNotAccepted):
		return notice.Warning("Please agree to the Terms and Conditions")
	case errors.Is(err, user.ErrExists):
		return notice.Error("Username already exists")
	default:
		return notice.Error("%s", err.Error())
	}
}

// WalletToastFor renders a ConnectWithWallet error.
func WalletToastFor(err error) notice.Toast {
	if errors.Is(err, connector.ErrNoProvider) {
		return notice.Warning("Please install MetaMask to connect with wallet")
	}
	return notice.Error("Failed to connect wallet: %s", err.Error())
}

func (u *Usecase) store(ctx context.Context, clientID string, rec session.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return u.kv.Set(ctx, clientID, session.KeyUser, string(b))
}

// DefaultUsers returns the two demo accounts with hashed passwords.
func DefaultUsers() ([]user.User, error) {
	seed := []struct {
		username, password string
		role               session.Role
		name, email        string
	}{
		{"admin", "admin123", session.RoleAdmin, "Admin User", "admin@loanchain.com"},
		{"user", "user123", session.RoleUser, "Regular User", "user@loanchain.com"},
	}
	out := make([]user.User, 0, len(seed))
	for _, s := range seed {
		h, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		out = append(out, user.User{Username: s.username, PasswordHash: string(h), Role: s.role, Name: s.name, Email: s.email})
	}
	return out, nil
}
