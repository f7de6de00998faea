package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// lendingABI is the interface description of the deployed lending contract,
// limited to the functions this application calls.
const lendingABI = `[
  {"type":"function","name":"admin","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"totalLent","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"borrowerToLoanId","stateMutability":"view",
   "inputs":[{"name":"","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getLoanById","stateMutability":"view",
   "inputs":[{"name":"loanId","type":"uint256"}],
   "outputs":[{"name":"","type":"tuple","internalType":"struct P2PLending.Loan","components":[
     {"name":"borrower","type":"address"},
     {"name":"amount","type":"uint256"},
     {"name":"approved","type":"bool"},
     {"name":"repaid","type":"bool"},
     {"name":"timestamp","type":"uint256"}]}]},
  {"type":"function","name":"getAllLoanRequests","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct P2PLending.Loan[]","components":[
     {"name":"borrower","type":"address"},
     {"name":"amount","type":"uint256"},
     {"name":"approved","type":"bool"},
     {"name":"repaid","type":"bool"},
     {"name":"timestamp","type":"uint256"}]}]},
  {"type":"function","name":"getLoanStatus","stateMutability":"view",
   "inputs":[{"name":"borrower","type":"address"}],
   "outputs":[
     {"name":"loanId","type":"uint256"},
     {"name":"amount","type":"uint256"},
     {"name":"approved","type":"bool"},
     {"name":"repaid","type":"bool"},
     {"name":"timestamp","type":"uint256"}]},
  {"type":"function","name":"requestLoan","stateMutability":"nonpayable",
   "inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"approveLoan","stateMutability":"nonpayable",
   "inputs":[{"name":"loanId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"withdrawFunds","stateMutability":"nonpayable",
   "inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"repayLoan","stateMutability":"payable","inputs":[],"outputs":[]},
  {"type":"function","name":"fundContract","stateMutability":"payable","inputs":[],"outputs":[]}
]`

// Method names of the lending contract.
const (
	MethodAdmin          = "admin"
	MethodTotalLent      = "totalLent"
	MethodBorrowerLoanID = "borrowerToLoanId"
	MethodLoanByID       = "getLoanById"
	MethodAllLoans       = "getAllLoanRequests"
	MethodLoanStatus     = "getLoanStatus"
	MethodRequestLoan    = "requestLoan"
	MethodApproveLoan    = "approveLoan"
	MethodWithdrawFunds  = "withdrawFunds"
	MethodRepayLoan      = "repayLoan"
	MethodFundContract   = "fundContract"
)

// loanTuple mirrors the Loan struct components; field names must match the
// camel-cased ABI component names.
type loanTuple struct {
	Borrower  common.Address
	Amount    *big.Int
	Approved  bool
	Repaid    bool
	Timestamp *big.Int
}

var parsedABI = mustParseABI()

func mustParseABI() abi.ABI {
	a, err := abi.JSON(strings.NewReader(lendingABI))
	if err != nil {
		panic("chain: invalid lending ABI: " + err.Error())
	}
	return a
}

