package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"newsdesk/internal/payout"
	"newsdesk/internal/store"
)

const (
	formatCSV = "csv"
	formatPDF = "pdf"
)

type ledgerOpener func(ctx context.Context, configPath string) (*payout.Ledger, func(), error)

func newRootCmd(open ledgerOpener) *cobra.Command {
	var configPath string

	withLedger := func(cmd *cobra.Command, fn func(*payout.Ledger) error) error {
		ledger, closeFn, err := open(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(ledger)
	}

	root := &cobra.Command{
		Use:          "payout",
		Short:        "Calculate, save and export author payouts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newCalculateCmd(withLedger),
		newSaveCmd(withLedger),
		newHistoryCmd(withLedger),
		newExportCmd(withLedger),
	)
	return root
}

type ledgerRunner func(cmd *cobra.Command, fn func(*payout.Ledger) error) error

func newCalculateCmd(run ledgerRunner) *cobra.Command {
	var rate, articles string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Set the rate and article count and compute the total",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, n, err := payout.ParseInputs(rate, articles)
			if err != nil {
				return err
			}
			return run(cmd, func(l *payout.Ledger) error {
				total, err := l.Calculate(cmd.Context(), r, n)
				if err := keepGoing(err); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Total payout: $%s\n", payout.FormatAmount(total))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "payout per article")
	cmd.Flags().StringVar(&articles, "articles", "", "number of articles")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("articles")
	return cmd
}

func newSaveCmd(run ledgerRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save the current calculation to history and reset the inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(l *payout.Ledger) error {
				record, err := l.Save(cmd.Context())
				if err := keepGoing(err); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %d articles at $%s = $%s (%s)\n",
					record.ID, record.Articles, payout.FormatRate(record.Rate), record.TotalPayout, record.Date)
				return nil
			})
		},
	}
}

func newHistoryCmd(run ledgerRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved payouts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(l *payout.Ledger) error {
				history := l.History()
				if len(history) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No payout history.")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "INVOICE\tDATE\tRATE\tARTICLES\tTOTAL")
				for _, r := range history {
					fmt.Fprintf(tw, "%s\t%s\t$%s\t%d\t$%s\n",
						r.ID, r.Date, payout.FormatRate(r.Rate), r.Articles, r.TotalPayout)
				}
				return tw.Flush()
			})
		},
	}
}

func newExportCmd(run ledgerRunner) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export payout history as CSV or PDF",
		Long: `Write the saved payout history to a file.

The default output is payout_history.csv or payout_history.pdf in the current
directory. Use --output - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatCSV && format != formatPDF {
				return fmt.Errorf("invalid --format %q: must be csv or pdf", format)
			}
			if output == "" {
				output = "payout_history." + format
			}

			return run(cmd, func(l *payout.Ledger) error {
				write := l.ExportCSV
				if format == formatPDF {
					write = l.ExportPDF
				}

				if output == "-" {
					return write(cmd.OutOrStdout())
				}
				return writeFile(output, write)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", formatCSV, "export format: csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// keepGoing drops storage errors; the ledger has already logged them.
func keepGoing(err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return nil
	}
	return err
}
