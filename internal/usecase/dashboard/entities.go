package dashboard

import (
	"math/big"

	"loanchain-web/internal/domain/loan"
)

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Repaid   int `json:"repaid"`
	// Rejected is always zero: the contract has no rejected state.
	Rejected int `json:"rejected"`
}

type BucketCounts struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// Summary is the dashboard's aggregate over one snapshot of all loans.
type Summary struct {
	TotalLoans  int          `json:"totalLoans"`
	TotalLent   *big.Int     `json:"-"`
	RepaidLoans int          `json:"repaidLoans"`
	SuccessRate int          `json:"successRate"`
	ByStatus    StatusCounts `json:"loansByStatus"`
	ByAmount    BucketCounts `json:"loansByAmount"`
	Recent      []loan.Loan  `json:"recentActivity"`
}

// StatCard is one of the four headline numbers.
type StatCard struct {
	ID    string
	Label string
	Value string
}

// BucketBar is one row of the amount distribution widget.
type BucketBar struct {
	Bucket  loan.Bucket
	Label   string
	Percent int
}

type TimelineItem struct {
	Date        string
	Title       string
	Description string
}

// View is everything the dashboard template needs, already formatted.
type View struct {
	Cards       []StatCard
	Buckets     []BucketBar
	PieGradient string
	Timeline    []TimelineItem
}
