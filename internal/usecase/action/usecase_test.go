package action

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"loanchain-web/internal/domain/chain"
	"loanchain-web/internal/domain/loan"
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/testutil/chainmock"
	"loanchain-web/internal/usecase/connector"
)

var (
	me    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	other = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func eth(n int64) *big.Int { return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18)) }

func connWith(c *chainmock.Contract) *connector.Conn {
	return &connector.Conn{Account: me, Contract: c}
}

func TestParseAmount(t *testing.T) {
	valid := []struct{ in, wei string }{
		{"1", "1000000000000000000"},
		{"0.5", "500000000000000000"},
		{" 2.25 ", "2250000000000000000"},
		{"1000000", "1000000000000000000000000"},
		{"0.000000000000000001", "1"},
	}
	for _, tc := range valid {
		_, wei, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) err: %v", tc.in, err)
		}
		if wei.String() != tc.wei {
			t.Fatalf("ParseAmount(%q) wei = %s, want %s", tc.in, wei, tc.wei)
		}
	}
	invalid := []string{
		"", "  ", "0", "0.0", "-1", "abc", "1,5",
		"1e100", "1e2000000000", "1e-2000000000",
		"0.0000000000000000001",
	}
	for _, in := range invalid {
		if _, _, err := ParseAmount(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseAmount(%q): want ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestParseLoanID(t *testing.T) {
	if id, err := ParseLoanID("0"); err != nil || id.Sign() != 0 {
		t.Fatalf("ParseLoanID(0) = %v, %v", id, err)
	}
	if id, err := ParseLoanID(" 42 "); err != nil || id.Int64() != 42 {
		t.Fatalf("ParseLoanID(42) = %v, %v", id, err)
	}
	for _, in := range []string{"", "-1", "1.5", "x"} {
		if _, err := ParseLoanID(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseLoanID(%q): want ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestSubmit_NotConnected_NoNetwork(t *testing.T) {
	uc := NewUsecase(time.UTC)
	for kind := range definitions {
		res, err := uc.Submit(context.Background(), nil, Tx{Kind: kind, Input: "1"})
		if !errors.Is(err, ErrNotConnected) {
			t.Fatalf("%s: want ErrNotConnected, got %v", kind, err)
		}
		if res.Toast.Message != "Please connect your wallet first." || res.Status != nil {
			t.Fatalf("%s: result = %+v", kind, res)
		}
	}
}

func TestSubmit_InvalidInput_NoNetwork(t *testing.T) {
	tests := []struct {
		kind  Kind
		input string
		msg   string
	}{
		{KindRequest, "0", "Please enter a valid loan amount"},
		{KindRepay, "", "Please enter a valid repayment amount"},
		{KindFund, "-3", "Please enter a valid funding amount"},
		{KindWithdraw, "abc", "Please enter a valid withdrawal amount"},
		{KindRequest, "1e100", "Please enter a valid loan amount"},
		{KindRepay, "0.0000000000000000001", "Please enter a valid repayment amount"},
		{KindApprove, "", "Please enter a valid loan ID"},
	}
	for _, tc := range tests {
		c := &chainmock.Contract{}
		res, err := NewUsecase(nil).Submit(context.Background(), connWith(c), Tx{Kind: tc.kind, Input: tc.input})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s(%q): want ErrInvalidInput, got %v", tc.kind, tc.input, err)
		}
		if res.Toast.Kind != notice.KindWarning || res.Toast.Message != tc.msg {
			t.Fatalf("%s: toast = %+v", tc.kind, res.Toast)
		}
		if c.CallCount() != 0 {
			t.Fatalf("%s: contract called %v", tc.kind, c.Calls)
		}
	}
}

func TestSubmit_Success(t *testing.T) {
	tests := []struct {
		kind    Kind
		input   string
		method  string
		args    []any
		value   *big.Int
		status  string
		success string
	}{
		{KindRequest, "2", "requestLoan", []any{eth(2)}, nil, "Loan requested: 2 EDU", "Successfully requested loan of 2 EDU"},
		{KindRepay, "1.5", "repayLoan", nil, big.NewInt(15e17), "Loan repaid: 1.5 EDU", "Successfully repaid loan with 1.5 EDU"},
		{KindApprove, "3", "approveLoan", []any{big.NewInt(3)}, nil, "Loan 3 approved", "Successfully approved loan #3"},
		{KindWithdraw, "4", "withdrawFunds", []any{eth(4)}, nil, "Withdrew 4 EDU", "Successfully withdrew 4 EDU"},
		{KindFund, "10", "fundContract", nil, eth(10), "Funded contract with 10 EDU", "Successfully funded contract with 10 EDU"},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			var gotGas uint64
			c := &chainmock.Contract{
				AdminFn:       func(context.Context) (common.Address, error) { return me, nil },
				EstimateGasFn: func(context.Context, chain.Call) (uint64, error) { return 77000, nil },
				SendFn: func(_ context.Context, _ chain.Call, gas uint64) (common.Hash, error) {
					gotGas = gas
					return common.Hash{0xaa}, nil
				},
				AllLoansFn:  func(context.Context) ([]loan.Loan, error) { return make([]loan.Loan, 2), nil },
				TotalLentFn: func(context.Context) (*big.Int, error) { return big.NewInt(25e17), nil },
			}
			res, err := NewUsecase(nil).Submit(context.Background(), connWith(c), Tx{Kind: tc.kind, Input: tc.input})
			if err != nil {
				t.Fatalf("Submit err: %v", err)
			}
			if gotGas != 77000 {
				t.Fatalf("send gas = %d, want estimate", gotGas)
			}
			if len(c.Sent) != 1 {
				t.Fatalf("sent %d calls", len(c.Sent))
			}
			call := c.Sent[0]
			if call.Method != tc.method || call.From != me {
				t.Fatalf("call = %+v", call)
			}
			if len(call.Args) != len(tc.args) {
				t.Fatalf("args = %v, want %v", call.Args, tc.args)
			}
			for i := range tc.args {
				if call.Args[i].(*big.Int).Cmp(tc.args[i].(*big.Int)) != 0 {
					t.Fatalf("arg %d = %v, want %v", i, call.Args[i], tc.args[i])
				}
			}
			if (tc.value == nil) != (call.Value == nil) || (tc.value != nil && tc.value.Cmp(call.Value) != 0) {
				t.Fatalf("value = %v, want %v", call.Value, tc.value)
			}
			if res.Status == nil || res.Status.Class != ClassApproved || res.Status.Text != tc.status {
				t.Fatalf("status = %+v", res.Status)
			}
			if res.Toast.Kind != notice.KindSuccess || res.Toast.Message != tc.success {
				t.Fatalf("toast = %+v", res.Toast)
			}
			if res.Stats == nil || res.Stats.TotalLoans != 2 || res.Stats.TotalLent != "2.50" {
				t.Fatalf("stats = %+v", res.Stats)
			}
		})
	}
}

func TestSubmit_FundRequiresAdmin(t *testing.T) {
	c := &chainmock.Contract{
		AdminFn: func(context.Context) (common.Address, error) { return other, nil },
	}
	res, err := NewUsecase(nil).Submit(context.Background(), connWith(c), Tx{Kind: KindFund, Input: "1"})
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("want ErrNotAdmin, got %v", err)
	}
	if res.Toast.Message != "Failed to fund contract: Only admin can fund the contract" {
		t.Fatalf("toast = %+v", res.Toast)
	}
	if res.Status == nil || res.Status.Class != ClassRejected || res.Status.Text != "Error: Only admin can fund the contract" {
		t.Fatalf("status = %+v", res.Status)
	}
	if len(c.Sent) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestSubmit_FundAdminCaseInsensitive(t *testing.T) {
	c := &chainmock.Contract{
		AdminFn: func(context.Context) (common.Address, error) {
			return common.HexToAddress(strings.ToUpper(me.Hex()[2:])), nil
		},
	}
	if _, err := NewUsecase(nil).Submit(context.Background(), connWith(c), Tx{Kind: KindFund, Input: "1"}); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
}

func TestSubmit_TransactionError(t *testing.T) {
	c := &chainmock.Contract{
		EstimateGasFn: func(context.Context, chain.Call) (uint64, error) {
			return 0, errors.New("execution reverted: already has loan")
		},
	}
	res, err := NewUsecase(nil).Submit(context.Background(), connWith(c), Tx{Kind: KindRequest, Input: "1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.Toast.Kind != notice.KindError || res.Toast.Message != "Failed to request loan: execution reverted: already has loan" {
		t.Fatalf("toast = %+v", res.Toast)
	}
	if res.Status.Class != ClassRejected {
		t.Fatalf("status = %+v", res.Status)
	}
	if res.Stats != nil || len(c.Sent) != 0 {
		t.Fatalf("no send and no stats refresh expected")
	}
}

func TestSubmit_UnknownKind(t *testing.T) {
	if _, err := NewUsecase(nil).Submit(context.Background(), connWith(&chainmock.Contract{}), Tx{Kind: "borrow"}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind, got %v", err)
	}
}

func TestQueries_NotConnected(t *testing.T) {
	uc := NewUsecase(nil)
	ctx := context.Background()
	if _, err := uc.CheckLoanStatus(ctx, nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("CheckLoanStatus: %v", err)
	}
	if _, err := uc.CheckExistingLoan(ctx, nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("CheckExistingLoan: %v", err)
	}
	if _, err := uc.LoanByID(ctx, nil, "1"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("LoanByID: %v", err)
	}
	if _, err := uc.AllLoans(ctx, nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("AllLoans: %v", err)
	}
	if _, err := uc.Stats(ctx, nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Stats: %v", err)
	}
}

func TestCheckLoanStatus(t *testing.T) {
	c := &chainmock.Contract{
		LoanStatusFn: func(_ context.Context, b common.Address) (loan.BorrowerStatus, error) {
			if b != me {
				t.Fatalf("queried %s", b.Hex())
			}
			return loan.BorrowerStatus{LoanID: big.NewInt(7), Amount: big.NewInt(15e17), Approved: true, Timestamp: 1700000000}, nil
		},
	}
	res, err := NewUsecase(time.UTC).CheckLoanStatus(context.Background(), connWith(c))
	if err != nil {
		t.Fatalf("CheckLoanStatus err: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %+v", res.Rows)
	}
	row := res.Rows[0]
	if row.ID != 7 || row.Amount != "1.50 EDU" || row.Status.Class != ClassApproved || row.Time != "11/14/2023, 10:13:20 PM" {
		t.Fatalf("row = %+v", row)
	}
	if res.Toast == nil || res.Toast.Message != "Loan status retrieved successfully" {
		t.Fatalf("toast = %+v", res.Toast)
	}
}

func TestCheckExistingLoan(t *testing.T) {
	c := &chainmock.Contract{
		BorrowerLoanIDFn: func(context.Context, common.Address) (*big.Int, error) { return big.NewInt(2), nil },
		LoanByIDFn: func(_ context.Context, id *big.Int) (loan.Loan, error) {
			return loan.Loan{ID: id.Uint64(), Borrower: me, Amount: eth(1), Repaid: true}, nil
		},
	}
	res, err := NewUsecase(nil).CheckExistingLoan(context.Background(), connWith(c))
	if err != nil {
		t.Fatalf("CheckExistingLoan err: %v", err)
	}
	if res.Rows[0].ID != 2 || res.Rows[0].Status.Text != "Repaid" || res.Rows[0].Status.Class != ClassRepaid {
		t.Fatalf("row = %+v", res.Rows[0])
	}
	if res.Toast.Message != "Loan details retrieved successfully" {
		t.Fatalf("toast = %+v", res.Toast)
	}

	c.BorrowerLoanIDFn = func(context.Context, common.Address) (*big.Int, error) { return nil, errors.New("boom") }
	res, err = NewUsecase(nil).CheckExistingLoan(context.Background(), connWith(c))
	if err == nil || res.Toast.Message != "Failed to check existing loan: boom" || res.Message != "Error: boom" {
		t.Fatalf("failure result = %+v, %v", res, err)
	}
}

func TestLoanByID(t *testing.T) {
	c := &chainmock.Contract{
		LoanByIDFn: func(_ context.Context, id *big.Int) (loan.Loan, error) {
			return loan.Loan{ID: id.Uint64(), Borrower: me, Amount: big.NewInt(25e17), Timestamp: 1700000000}, nil
		},
	}
	uc := NewUsecase(time.UTC)
	res, err := uc.LoanByID(context.Background(), connWith(c), "5")
	if err != nil {
		t.Fatalf("LoanByID err: %v", err)
	}
	want := "Loan ID: 5, Borrower: " + me.Hex() + ", Amount: 2.5 EDU, Approved: false, Repaid: false, Timestamp: 11/14/2023, 10:13:20 PM"
	if res.Info != want {
		t.Fatalf("info =\n%s\nwant\n%s", res.Info, want)
	}

	if _, err := uc.LoanByID(context.Background(), connWith(c), "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestAllLoans(t *testing.T) {
	c := &chainmock.Contract{
		AllLoansFn: func(context.Context) ([]loan.Loan, error) { return nil, nil },
	}
	uc := NewUsecase(nil)
	res, err := uc.AllLoans(context.Background(), connWith(c))
	if err != nil || res.Message != "No loans found." || len(res.Rows) != 0 {
		t.Fatalf("empty AllLoans = %+v, %v", res, err)
	}

	c.AllLoansFn = func(context.Context) ([]loan.Loan, error) {
		return []loan.Loan{
			{ID: 0, Borrower: common.HexToAddress("0x1234567890123456789012345678901234567890"), Amount: eth(1)},
			{ID: 1, Borrower: other, Amount: eth(6), Approved: true},
		}, nil
	}
	res, err = uc.AllLoans(context.Background(), connWith(c))
	if err != nil {
		t.Fatalf("AllLoans err: %v", err)
	}
	if len(res.Rows) != 2 || res.Rows[0].Borrower != "0x1234...7890" || res.Rows[1].Amount != "6.00 EDU" {
		t.Fatalf("rows = %+v", res.Rows)
	}
	if res.Stats == nil || res.Stats.TotalLoans != 2 {
		t.Fatalf("stats = %+v", res.Stats)
	}
}

func TestInvalidToast(t *testing.T) {
	got := InvalidToast(KindApprove)
	if got.Kind != notice.KindWarning || got.Message != "Please enter a valid loan ID" {
		t.Fatalf("toast = %+v", got)
	}
	if got := InvalidToast("nope"); got.Kind != notice.KindError {
		t.Fatalf("unknown kind toast = %+v", got)
	}
}
