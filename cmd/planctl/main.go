// Command planctl previews installment plans from the terminal using the
// same planner the console serves.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"landdeals-console/internal/domain/installment"
	installmentUsecase "landdeals-console/internal/service/installment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type previewOptions struct {
	amount    float64
	count     int
	frequency string
	start     string
	mode      string
	asJSON    bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Installment plan tools for the land deals console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPreviewCmd())
	return root
}

func newPreviewCmd() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the installment schedule for a plan",
		Example: `  planctl preview --amount 300000 --count 3 --start 2024-01-31
  planctl preview --amount 100000 --count 4 --frequency quarterly --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.amount, "amount", 0, "total amount to split")
	f.IntVar(&opts.count, "count", 2, "number of installments")
	f.StringVar(&opts.frequency, "frequency", string(installment.FrequencyMonthly), "monthly, quarterly, half_yearly or yearly")
	f.StringVar(&opts.start, "start", "", "first installment date (YYYY-MM-DD)")
	f.StringVar(&opts.mode, "mode", string(installment.DateModeAuto), "auto or custom")
	f.BoolVar(&opts.asJSON, "json", false, "print the preview as JSON")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func runPreview(out io.Writer, opts *previewOptions) error {
	svc := installmentUsecase.NewInstallmentService(nil, zap.NewNop())

	preview, err := svc.Preview(&installment.PlanRequest{
		TotalAmount: opts.amount,
		Count:       opts.count,
		Frequency:   installment.Frequency(opts.frequency),
		StartDate:   opts.start,
		DateMode:    installment.DateMode(opts.mode),
	})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(preview)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDUE DATE\tAMOUNT")
	for _, row := range preview.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\n", row.InstallmentNumber, row.DateDisplay, row.AmountDisplay)
	}
	fmt.Fprintf(w, "\tTOTAL\t%s\n", preview.TotalDisplay)
	if err := w.Flush(); err != nil {
		return err
	}

	if preview.CountClamped {
		fmt.Fprintf(out, "note: installment count clamped to %d\n", preview.Count)
	}
	if !preview.MatchesTotal {
		fmt.Fprintln(out, "warning: installments do not add up to the total amount")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
