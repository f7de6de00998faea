package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"loanchain-web/internal/usecase/action"
	"loanchain-web/internal/usecase/connector"
)

var loanCmd = &cobra.Command{
	Use:   "loan <id>",
	Short: "Print one loan by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			return runLoan(ctx, cmd.OutOrStdout(), e.conn, action.NewUsecase(e.cfg.Location()), args[0], jsonOut)
		})
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List every loan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			return runLoans(ctx, cmd.OutOrStdout(), e.conn, action.NewUsecase(e.cfg.Location()), jsonOut)
		})
	},
}

func runLoan(ctx context.Context, w io.Writer, conn *connector.Conn, uc *action.Usecase, id string, asJSON bool) error {
	res, err := uc.LoanByID(ctx, conn, id)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, res.Rows[0])
	}
	_, err = fmt.Fprintln(w, res.Info)
	return err
}

func runLoans(ctx context.Context, w io.Writer, conn *connector.Conn, uc *action.Usecase, asJSON bool) error {
	res, err := uc.AllLoans(ctx, conn)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, res.Rows)
	}
	if res.Message != "" {
		_, err = fmt.Fprintln(w, res.Message)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBORROWER\tAMOUNT\tSTATUS\tREQUESTED")
	for _, r := range res.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Borrower, r.Amount, r.Status.Text, r.Time)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
