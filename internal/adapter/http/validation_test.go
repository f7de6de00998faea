package http

import (
	"errors"
	"testing"
)

func TestAmountValidation(t *testing.T) {
	type P struct {
		Amount string `validate:"amount"`
	}
	cv := NewValidator()

	for _, s := range []string{"1", "0.5", " 2.25 ", "1000000", "0.000000000000000001"} {
		if err := cv.Validate(P{Amount: s}); err != nil {
			t.Fatalf("expected valid amount for %q, got err: %v", s, err)
		}
	}
	for _, s := range []string{
		"",                      // empty
		"0",                     // zero
		"0.00",                  // zero with decimals
		"-1",                    // negative
		"abc",                   // non-numeric
		"1,5",                   // comma decimal
		"1e100",                 // above uint256 wei
		"1e2000000000",          // exponent too large to expand
		"0.0000000000000000001", // below 1 wei
	} {
		err := cv.Validate(P{Amount: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "Amount", "positive number") {
			t.Fatalf("expected amount message for %q, got: %+v", s, fe)
		}
	}
}

func TestLoanIDValidation(t *testing.T) {
	type P struct {
		LoanID string `validate:"loanid"`
	}
	cv := NewValidator()

	for _, s := range []string{"0", "7", " 42 ", "115792089237316195423570985008687907853269984665640564039457584007913129639935"} {
		if err := cv.Validate(P{LoanID: s}); err != nil {
			t.Fatalf("expected valid loan id for %q, got %v", s, err)
		}
	}
	for _, s := range []string{"", "-1", "1.5", "0x10", "seven"} {
		err := cv.Validate(P{LoanID: s})
		if err == nil {
			t.Fatalf("expected loanid error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "LoanID", "non-negative integer") {
			t.Fatalf("expected 'non-negative integer' for %q, got %+v", s, fe)
		}
	}
}

func TestRequestStructs(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&amountReq{}); err == nil || !containsFieldMsg(ToFieldErrors(err), "Amount", "is required") {
		t.Fatalf("empty amount: %v", err)
	}
	if err := cv.Validate(&loanIDReq{LoanID: "3"}); err != nil {
		t.Fatalf("loan id: %v", err)
	}
	// presence is left to the session usecase
	if err := cv.Validate(&registerReq{}); err != nil {
		t.Fatalf("empty register should pass shape checks: %v", err)
	}
	err := cv.Validate(&registerReq{Email: "nope"})
	if err == nil || !containsFieldMsg(ToFieldErrors(err), "Email", "valid email") {
		t.Fatalf("bad email: %v", err)
	}
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	err = cv.Validate(&loginReq{Username: string(long)})
	if err == nil || !containsFieldMsg(ToFieldErrors(err), "Username", "at most 64") {
		t.Fatalf("long username: %v", err)
	}
}

func TestToFieldErrors_NonValidationError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("got %+v", fe)
	}
}
