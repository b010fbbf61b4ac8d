package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
)

// NewAlertsCommand agrupa los subcomandos de alertas.
func NewAlertsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Mantenimiento de alertas de stock",
	}
	cmd.AddCommand(newAckAllCommand(rootOpts))
	return cmd
}

func newAckAllCommand(opts *RootOptions) *cobra.Command {
	var siteID string

	cmd := &cobra.Command{
		Use:   "ack-all",
		Short: "Marca como leídas todas las alertas pendientes",
		Long: `Marca como leídas todas las alertas pendientes, de una finca o de todas.

Ejemplos:
  ledgerctl alerts ack-all
  ledgerctl alerts ack-all --site-id finca-norte`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			b, err := opts.Open(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "no se pudo abrir la persistencia", err)
			}
			defer b.Close()

			uc := inventory.NewAlertUseCase(b.Tx, b.Alerts, b.StockRecords, nil, nil, opts.Log)
			n, err := uc.AcknowledgeAll(ctx, siteID)
			if err != nil {
				return WrapExitError(ExitCommandError, "no se pudo reconocer las alertas", err)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"site_id": siteID, "acknowledged": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d alertas marcadas como leídas.\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&siteID, "site-id", "", "limitar a una finca")
	return cmd
}
