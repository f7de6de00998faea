package action

import (
	"loanchain-web/internal/domain/notice"
)

type Kind string

const (
	KindRequest  Kind = "request"
	KindRepay    Kind = "repay"
	KindFund     Kind = "fund"
	KindApprove  Kind = "approve"
	KindWithdraw Kind = "withdraw"
)

// Tx is one form submission: which action and the single raw input field.
type Tx struct {
	Kind  Kind
	Input string
}

// Tag is the status tag rendered next to a form or in a table cell.
type Tag struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

const (
	ClassPending  = "status-pending"
	ClassApproved = "status-approved"
	ClassRepaid   = "status-repaid"
	ClassRejected = "status-rejected"
)

type Stats struct {
	TotalLoans      int    `json:"totalLoans"`
	TotalLent       string `json:"totalLent"`
	ContractBalance string `json:"contractBalance"`
}

// Result is what a submit hands back to the page. Status is empty when the
// submission never reached the network.
type Result struct {
	Status *Tag         `json:"status,omitempty"`
	Toast  notice.Toast `json:"toast"`
	Stats  *Stats       `json:"stats,omitempty"`
	TxHash string       `json:"txHash,omitempty"`
}

// Row is one loan formatted for a table.
type Row struct {
	ID       uint64 `json:"id"`
	Borrower string `json:"borrower"`
	Amount   string `json:"amount"`
	Status   Tag    `json:"status"`
	Time     string `json:"time"`
}

// QueryResult is the outcome of a read-only query. Message replaces the rows
// when there is nothing to show or the query failed.
type QueryResult struct {
	Rows    []Row         `json:"rows"`
	Message string        `json:"message,omitempty"`
	Info    string        `json:"info,omitempty"`
	Toast   *notice.Toast `json:"toast,omitempty"`
	Stats   *Stats        `json:"stats,omitempty"`
}
