package loan

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Decimals of the native token: 10^18 wei = 1 EDU.
const Decimals = 18

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRepaid   Status = "repaid"
)

// Label is the capitalized form used in status tags and the timeline.
func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "Approved"
	case StatusRepaid:
		return "Repaid"
	default:
		return "Pending"
	}
}

type Bucket string

const (
	BucketSmall  Bucket = "small"  // <= 1 EDU
	BucketMedium Bucket = "medium" // <= 5 EDU
	BucketLarge  Bucket = "large"  // > 5 EDU
)

var (
	smallUpper  = decimal.NewFromInt(1)
	mediumUpper = decimal.NewFromInt(5)
)

// Loan is a read-only snapshot of one entry of the contract's loan list.
// ID is the position in getAllLoanRequests, or the id passed to getLoanById.
type Loan struct {
	ID        uint64         `json:"id"`
	Borrower  common.Address `json:"borrower"`
	Amount    *big.Int       `json:"amount"`
	Approved  bool           `json:"approved"`
	Repaid    bool           `json:"repaid"`
	Timestamp uint64         `json:"timestamp"`
}

// Status: repaid wins over approved; the contract, not this code, decides
// whether a repaid loan was ever approved.
func (l Loan) Status() Status {
	switch {
	case l.Repaid:
		return StatusRepaid
	case l.Approved:
		return StatusApproved
	default:
		return StatusPending
	}
}

// Tokens returns the amount in whole-token units without rounding.
func (l Loan) Tokens() decimal.Decimal { return ToTokens(l.Amount) }

func (l Loan) Bucket() Bucket { return BucketFor(l.Tokens()) }

// BucketFor classifies a token amount; upper bounds are inclusive.
func BucketFor(tokens decimal.Decimal) Bucket {
	switch {
	case tokens.LessThanOrEqual(smallUpper):
		return BucketSmall
	case tokens.LessThanOrEqual(mediumUpper):
		return BucketMedium
	default:
		return BucketLarge
	}
}

// BorrowerStatus is the tuple returned by getLoanStatus(address).
type BorrowerStatus struct {
	LoanID    *big.Int
	Amount    *big.Int
	Approved  bool
	Repaid    bool
	Timestamp uint64
}

func (s BorrowerStatus) Loan(borrower common.Address) Loan {
	id := uint64(0)
	if s.LoanID != nil {
		id = s.LoanID.Uint64()
	}
	return Loan{ID: id, Borrower: borrower, Amount: s.Amount, Approved: s.Approved, Repaid: s.Repaid, Timestamp: s.Timestamp}
}

// ToTokens converts wei to tokens. A nil amount is zero.
func ToTokens(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -Decimals)
}

// ToWei converts a token amount to wei, flooring anything below 1 wei.
// Callers holding untrusted input go through WeiFromTokens.
func ToWei(tokens decimal.Decimal) *big.Int {
	return tokens.Shift(Decimals).Floor().BigInt()
}

// MaxWei is the largest amount a uint256 argument or value holds.
var MaxWei = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// maxWeiDigits is the decimal length of MaxWei.
const maxWeiDigits = 78

// WeiFromTokens converts a positive token amount to wei. It reports false for
// amounts that floor to 0 wei or do not fit in a uint256, and sizes the
// amount from its digits and exponent before expanding it.
func WeiFromTokens(tokens decimal.Decimal) (*big.Int, bool) {
	if !tokens.IsPositive() {
		return nil, false
	}
	intDigits := int64(tokens.NumDigits()) + int64(tokens.Exponent()) + Decimals
	if intDigits <= 0 || intDigits > maxWeiDigits {
		return nil, false
	}
	wei := ToWei(tokens)
	if wei.Sign() <= 0 || wei.Cmp(MaxWei) > 0 {
		return nil, false
	}
	return wei, true
}
