package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"loanchain-web/internal/usecase/connector"
	"loanchain-web/internal/usecase/dashboard"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard summary over all loans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			return runSummary(ctx, cmd.OutOrStdout(), e.conn, dashboard.NewUsecase(e.cfg.Location()), jsonOut)
		})
	},
}

func runSummary(ctx context.Context, w io.Writer, conn *connector.Conn, uc *dashboard.Usecase, asJSON bool) error {
	s, err := uc.Refresh(ctx, conn)
	if err != nil {
		return err
	}
	if asJSON {
		b, err := dashboard.Export(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	v := uc.BuildView(s)
	for _, c := range v.Cards {
		fmt.Fprintf(w, "%-16s %s\n", c.Label+":", c.Value)
	}
	fmt.Fprintf(w, "\nBy status: pending %d, approved %d, repaid %d, rejected %d\n",
		s.ByStatus.Pending, s.ByStatus.Approved, s.ByStatus.Repaid, s.ByStatus.Rejected)
	fmt.Fprintln(w, "By amount:")
	for _, b := range v.Buckets {
		fmt.Fprintf(w, "  %-18s %3d%%\n", b.Label, b.Percent)
	}
	if len(v.Timeline) > 0 {
		fmt.Fprintln(w, "\nRecent activity:")
		for _, t := range v.Timeline {
			fmt.Fprintf(w, "  %s  %s\n", t.Date, t.Title)
		}
	}
	return nil
}
