package action

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"loanchain-web/internal/domain/chain"
	"loanchain-web/internal/domain/loan"
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/usecase/connector"
)

var (
	ErrNotConnected = errors.New("wallet not connected")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotAdmin     = errors.New("connected account is not the contract admin")
	ErrUnknownKind  = errors.New("unknown action")
)

type inputKind int

const (
	inputAmount inputKind = iota
	inputLoanID
)

// definition describes one contract write and the texts around it.
type definition struct {
	method    string
	input     inputKind
	invalid   string
	payable   bool
	adminOnly bool
	verb      string
	gerund    string
	status    func(in string) string
	success   func(in string) string
}

var definitions = map[Kind]definition{
	KindRequest: {
		method:  "requestLoan",
		input:   inputAmount,
		invalid: "Please enter a valid loan amount",
		verb:    "request loan",
		gerund:  "requesting loan",
		status:  func(in string) string { return "Loan requested: " + in + " EDU" },
		success: func(in string) string { return "Successfully requested loan of " + in + " EDU" },
	},
	KindRepay: {
		method:  "repayLoan",
		input:   inputAmount,
		invalid: "Please enter a valid repayment amount",
		payable: true,
		verb:    "repay loan",
		gerund:  "repaying loan",
		status:  func(in string) string { return "Loan repaid: " + in + " EDU" },
		success: func(in string) string { return "Successfully repaid loan with " + in + " EDU" },
	},
	KindFund: {
		method:    "fundContract",
		input:     inputAmount,
		invalid:   "Please enter a valid funding amount",
		payable:   true,
		adminOnly: true,
		verb:      "fund contract",
		gerund:    "funding contract",
		status:    func(in string) string { return "Funded contract with " + in + " EDU" },
		success:   func(in string) string { return "Successfully funded contract with " + in + " EDU" },
	},
	KindApprove: {
		method:  "approveLoan",
		input:   inputLoanID,
		invalid: "Please enter a valid loan ID",
		verb:    "approve loan",
		gerund:  "approving loan",
		status:  func(in string) string { return "Loan " + in + " approved" },
		success: func(in string) string { return "Successfully approved loan #" + in },
	},
	KindWithdraw: {
		method:  "withdrawFunds",
		input:   inputAmount,
		invalid: "Please enter a valid withdrawal amount",
		verb:    "withdraw funds",
		gerund:  "withdrawing funds",
		status:  func(in string) string { return "Withdrew " + in + " EDU" },
		success: func(in string) string { return "Successfully withdrew " + in + " EDU" },
	},
}

var notConnectedToast = notice.Error("Please connect your wallet first.")

type Usecase struct{ loc *time.Location }

// NewUsecase: loc is the zone timestamps are rendered in.
func NewUsecase(loc *time.Location) *Usecase {
	if loc == nil {
		loc = time.UTC
	}
	return &Usecase{loc: loc}
}

// ParseAmount accepts a present, numeric, strictly positive token amount
// worth at least 1 wei and at most a uint256, and returns it with its wei
// value.
func ParseAmount(raw string) (decimal.Decimal, *big.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil, ErrInvalidInput
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil, ErrInvalidInput
	}
	wei, ok := loan.WeiFromTokens(d)
	if !ok {
		return decimal.Zero, nil, ErrInvalidInput
	}
	return d, wei, nil
}

// ParseLoanID accepts a present, non-negative integer.
func ParseLoanID(raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)
	id, ok := new(big.Int).SetString(raw, 10)
	if raw == "" || !ok || id.Sign() < 0 {
		return nil, ErrInvalidInput
	}
	return id, nil
}

// InvalidToast is the warning shown when a form's input is rejected.
func InvalidToast(k Kind) notice.Toast {
	if def, ok := definitions[k]; ok {
		return notice.Warning(def.invalid)
	}
	return notice.Error("Unknown action")
}

// Submit runs one contract write for the connected account: validate the
// input, estimate gas, send, wait for the receipt, refresh the stats.
// The returned Result is always non-nil; err tells the caller what failed.
func (u *Usecase) Submit(ctx context.Context, conn *connector.Conn, tx Tx) (*Result, error) {
	def, ok := definitions[tx.Kind]
	if !ok {
		return &Result{Toast: notice.Error("Unknown action")}, ErrUnknownKind
	}
	if conn == nil {
		return &Result{Toast: notConnectedToast}, ErrNotConnected
	}

	display := strings.TrimSpace(tx.Input)
	call := chain.Call{Method: def.method, From: conn.Account}
	switch def.input {
	case inputAmount:
		_, wei, err := ParseAmount(tx.Input)
		if err != nil {
			return &Result{Toast: notice.Warning(def.invalid)}, err
		}
		if def.payable {
			call.Value = wei
		} else {
			call.Args = []any{wei}
		}
	case inputLoanID:
		id, err := ParseLoanID(tx.Input)
		if err != nil {
			return &Result{Toast: notice.Warning(def.invalid)}, err
		}
		call.Args = []any{id}
		display = id.String()
	}

	hash, err := u.send(ctx, conn, def, call)
	if err != nil {
		log.Printf("error %s: %v", def.gerund, err)
		msg := message(err)
		return &Result{
			Status: &Tag{Class: ClassRejected, Text: "Error: " + msg},
			Toast:  notice.Error("Failed to %s: %s", def.verb, msg),
		}, err
	}

	res := &Result{
		Status: &Tag{Class: ClassApproved, Text: def.status(display)},
		Toast:  notice.Success("%s", def.success(display)),
		TxHash: hash.Hex(),
	}
	res.Stats = u.refreshStats(ctx, conn)
	return res, nil
}

func (u *Usecase) send(ctx context.Context, conn *connector.Conn, def definition, call chain.Call) (common.Hash, error) {
	if def.adminOnly {
		admin, err := conn.Contract.Admin(ctx)
		if err != nil {
			return common.Hash{}, err
		}
		if !strings.EqualFold(admin.Hex(), conn.Account.Hex()) {
			return common.Hash{}, ErrNotAdmin
		}
	}
	gas, err := conn.Contract.EstimateGas(ctx, call)
	if err != nil {
		return common.Hash{}, err
	}
	return conn.Contract.Send(ctx, call, gas)
}

// message is the human text of a failure as shown in tags and toasts.
func message(err error) string {
	if errors.Is(err, ErrNotAdmin) {
		return "Only admin can fund the contract"
	}
	return err.Error()
}

// Stats reads the loan count, the lent total and the contract balance.
func (u *Usecase) Stats(ctx context.Context, conn *connector.Conn) (*Stats, error) {
	if conn == nil {
		return nil, ErrNotConnected
	}
	loans, err := conn.Contract.AllLoans(ctx)
	if err != nil {
		return nil, err
	}
	lent, err := conn.Contract.TotalLent(ctx)
	if err != nil {
		return nil, err
	}
	bal, err := conn.Contract.Balance(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalLoans:      len(loans),
		TotalLent:       loan.FormatTokens(lent),
		ContractBalance: loan.FormatTokens(bal),
	}, nil
}

// refreshStats never fails the surrounding action; errors are only logged.
func (u *Usecase) refreshStats(ctx context.Context, conn *connector.Conn) *Stats {
	s, err := u.Stats(ctx, conn)
	if err != nil {
		log.Printf("error updating stats: %v", err)
		return nil
	}
	return s
}

func (u *Usecase) row(l loan.Loan, shorten bool) Row {
	borrower := l.Borrower.Hex()
	if shorten {
		borrower = loan.ShortenAddress(borrower)
	}
	return Row{
		ID:       l.ID,
		Borrower: borrower,
		Amount:   loan.FormatTokens(l.Amount) + " EDU",
		Status:   StatusTag(l.Status()),
		Time:     loan.FormatTimestamp(l.Timestamp, u.loc),
	}
}

// StatusTag maps a loan status to its tag class and label.
func StatusTag(s loan.Status) Tag {
	switch s {
	case loan.StatusRepaid:
		return Tag{Class: ClassRepaid, Text: s.Label()}
	case loan.StatusApproved:
		return Tag{Class: ClassApproved, Text: s.Label()}
	default:
		return Tag{Class: ClassPending, Text: s.Label()}
	}
}

func failedQuery(verb string, err error) (*QueryResult, error) {
	log.Printf("error %s: %v", verb, err)
	t := notice.Error("Failed to %s: %s", verb, err.Error())
	return &QueryResult{Message: "Error: " + err.Error(), Toast: &t}, err
}

func notConnected() (*QueryResult, error) {
	t := notConnectedToast
	return &QueryResult{Toast: &t}, ErrNotConnected
}

// CheckLoanStatus shows the connected account's loan via getLoanStatus.
func (u *Usecase) CheckLoanStatus(ctx context.Context, conn *connector.Conn) (*QueryResult, error) {
	if conn == nil {
		return notConnected()
	}
	st, err := conn.Contract.LoanStatus(ctx, conn.Account)
	if err != nil {
		return failedQuery("check loan status", err)
	}
	t := notice.Success("Loan status retrieved successfully")
	return &QueryResult{Rows: []Row{u.row(st.Loan(conn.Account), false)}, Toast: &t}, nil
}

// CheckExistingLoan resolves the account's loan id, then fetches that loan.
func (u *Usecase) CheckExistingLoan(ctx context.Context, conn *connector.Conn) (*QueryResult, error) {
	if conn == nil {
		return notConnected()
	}
	id, err := conn.Contract.BorrowerLoanID(ctx, conn.Account)
	if err != nil {
		return failedQuery("check existing loan", err)
	}
	l, err := conn.Contract.LoanByID(ctx, id)
	if err != nil {
		return failedQuery("check existing loan", err)
	}
	t := notice.Success("Loan details retrieved successfully")
	return &QueryResult{Rows: []Row{u.row(l, false)}, Toast: &t}, nil
}

// LoanByID renders one loan as a single info line.
func (u *Usecase) LoanByID(ctx context.Context, conn *connector.Conn, raw string) (*QueryResult, error) {
	if conn == nil {
		return notConnected()
	}
	id, err := ParseLoanID(raw)
	if err != nil {
		t := notice.Warning("Invalid loan ID")
		return &QueryResult{Toast: &t}, err
	}
	l, err := conn.Contract.LoanByID(ctx, id)
	if err != nil {
		log.Printf("error fetching loan %s: %v", id, err)
		return &QueryResult{Info: "Error: " + err.Error()}, err
	}
	info := fmt.Sprintf("Loan ID: %s, Borrower: %s, Amount: %s EDU, Approved: %t, Repaid: %t, Timestamp: %s",
		id, l.Borrower.Hex(), l.Tokens().String(), l.Approved, l.Repaid, loan.FormatTimestamp(l.Timestamp, u.loc))
	return &QueryResult{Info: info, Rows: []Row{u.row(l, false)}}, nil
}

// AllLoans lists every loan with shortened borrowers, then refreshes stats.
func (u *Usecase) AllLoans(ctx context.Context, conn *connector.Conn) (*QueryResult, error) {
	if conn == nil {
		return notConnected()
	}
	loans, err := conn.Contract.AllLoans(ctx)
	if err != nil {
		return failedQuery("fetch loans", err)
	}
	if len(loans) == 0 {
		return &QueryResult{Rows: []Row{}, Message: "No loans found."}, nil
	}
	rows := make([]Row, len(loans))
	for i, l := range loans {
		rows[i] = u.row(l, true)
	}
	return &QueryResult{Rows: rows, Stats: u.refreshStats(ctx, conn)}, nil
}
