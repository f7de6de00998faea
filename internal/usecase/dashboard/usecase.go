package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"loanchain-web/internal/domain/loan"
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/usecase/connector"
)

var ErrNotConnected = errors.New("wallet not connected")

// ExportFilename is the download name of the exported summary.
const ExportFilename = "loanchain-dashboard-data.json"

const recentLimit = 3

// Help is the text behind the dashboard help button.
const Help = `<strong>Dashboard Help</strong><br>
This dashboard provides an overview of your loan portfolio.<br>
- Use the "Refresh Dashboard" button to update the data<br>
- Export data allows you to download the current metrics<br>
- The pie chart shows the distribution of loan statuses<br>
- The progress bars show the distribution of loan amounts`

type Usecase struct{ loc *time.Location }

func NewUsecase(loc *time.Location) *Usecase {
	if loc == nil {
		loc = time.UTC
	}
	return &Usecase{loc: loc}
}

// Summarize aggregates loans in a single pass. The lent total covers every
// loan that was paid out, whether or not it has been repaid since.
func Summarize(loans []loan.Loan) Summary {
	s := Summary{TotalLoans: len(loans), TotalLent: new(big.Int)}
	for _, l := range loans {
		switch l.Status() {
		case loan.StatusRepaid:
			s.ByStatus.Repaid++
			s.RepaidLoans++
		case loan.StatusApproved:
			s.ByStatus.Approved++
		default:
			s.ByStatus.Pending++
		}
		if l.Approved || l.Repaid {
			if l.Amount != nil {
				s.TotalLent.Add(s.TotalLent, l.Amount)
			}
		}
		switch l.Bucket() {
		case loan.BucketSmall:
			s.ByAmount.Small++
		case loan.BucketMedium:
			s.ByAmount.Medium++
		default:
			s.ByAmount.Large++
		}
	}
	s.SuccessRate = percent(s.ByStatus.Approved, s.TotalLoans)
	s.Recent = recent(loans, recentLimit)
	return s
}

// recent returns up to n loans, newest first, without touching the input.
func recent(loans []loan.Loan, n int) []loan.Loan {
	sorted := make([]loan.Loan, len(loans))
	copy(sorted, loans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp > sorted[j].Timestamp })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// percent is round(part/total*100) with halves rounded up; 0 when total is 0.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}

// Refresh reads every loan once and summarizes them.
func (u *Usecase) Refresh(ctx context.Context, conn *connector.Conn) (Summary, error) {
	if conn == nil {
		return Summary{}, ErrNotConnected
	}
	loans, err := conn.Contract.AllLoans(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(loans), nil
}

// ToastFor renders the outcome of a refresh.
func ToastFor(err error) notice.Toast {
	switch {
	case err == nil:
		return notice.Success("Dashboard data refreshed successfully")
	case errors.Is(err, ErrNotConnected):
		return notice.Warning("Please connect your wallet first")
	default:
		return notice.Error("Failed to refresh dashboard: %s", err.Error())
	}
}

// BuildView turns a summary into display values. Bucket and pie percentages
// are rounded independently against max(total, 1), so they need not sum to 100.
func (u *Usecase) BuildView(s Summary) View {
	base := s.TotalLoans
	if base < 1 {
		base = 1
	}
	v := View{
		Cards: []StatCard{
			{ID: "total-loans", Label: "Total Loans", Value: fmt.Sprint(s.TotalLoans)},
			{ID: "total-lent", Label: "Total EDU Lent", Value: loan.FormatTokens(s.TotalLent)},
			{ID: "repaid-loans", Label: "Repaid Loans", Value: fmt.Sprint(s.RepaidLoans)},
			{ID: "success-rate", Label: "Success Rate", Value: fmt.Sprintf("%d%%", s.SuccessRate)},
		},
		Buckets: []BucketBar{
			{Bucket: loan.BucketSmall, Label: "Small (0-1 EDU)", Percent: percent(s.ByAmount.Small, base)},
			{Bucket: loan.BucketMedium, Label: "Medium (1-5 EDU)", Percent: percent(s.ByAmount.Medium, base)},
			{Bucket: loan.BucketLarge, Label: "Large (5+ EDU)", Percent: percent(s.ByAmount.Large, base)},
		},
	}

	// Rounded shares can sum past 100; stops are clamped so the last
	// segment never starts beyond the circle.
	p1 := min(percent(s.ByStatus.Pending, base), 100)
	p2 := min(p1+percent(s.ByStatus.Approved, base), 100)
	p3 := min(p2+percent(s.ByStatus.Repaid, base), 100)
	v.PieGradient = fmt.Sprintf(
		"conic-gradient(var(--primary-color) 0%% %d%%, var(--secondary-color) %d%% %d%%, var(--success) %d%% %d%%, var(--warning) %d%% 100%%)",
		p1, p1, p2, p2, p3, p3)

	for _, l := range s.Recent {
		amount := loan.FormatTokens(l.Amount)
		status := l.Status().Label()
		v.Timeline = append(v.Timeline, TimelineItem{
			Date:  loan.FormatTimestamp(l.Timestamp, u.loc),
			Title: fmt.Sprintf("%s EDU Loan - %s", amount, status),
			Description: fmt.Sprintf("Borrower %s requested a loan of %s EDU. Current status: %s",
				loan.ShortenAddress(l.Borrower.Hex()), amount, status),
		})
	}
	return v
}

type exportDoc struct {
	Summary
	TotalLent string `json:"totalLent"`
}

// Export serializes the summary for download, lent total in tokens.
func Export(s Summary) ([]byte, error) {
	if s.Recent == nil {
		s.Recent = []loan.Loan{}
	}
	return json.MarshalIndent(exportDoc{Summary: s, TotalLent: loan.FormatTokens(s.TotalLent)}, "", "  ")
}
