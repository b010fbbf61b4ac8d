package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
)

// VerifyOptions flags del comando verify.
type VerifyOptions struct {
	*RootOptions
	StockID string
	SiteID  string
}

// VerifyRecord resultado por registro de stock.
type VerifyRecord struct {
	StockRecordID string `json:"stock_record_id"`
	Name          string `json:"name"`
	Snapshot      string `json:"snapshot"`
	Replayed      string `json:"replayed"`
	Movements     int    `json:"movements"`
	Consistent    bool   `json:"consistent"`
}

// VerifyResult resultado global.
type VerifyResult struct {
	Records       []VerifyRecord `json:"records"`
	Total         int            `json:"total"`
	AllConsistent bool           `json:"all_consistent"`
}

// NewVerifyCommand crea el comando verify.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Reproduce el historial de movimientos y lo compara con el stock actual",
		Long: `Recalcula el stock de cada registro sumando sus movimientos desde cero y
lo compara con la cantidad materializada.

Códigos de salida:
  0 - Todos los registros coinciden
  1 - Hay registros con deriva
  2 - Error de comando (configuración, conexión, registro inexistente)

Ejemplos:
  ledgerctl verify
  ledgerctl verify --stock-id 6f1c...
  ledgerctl verify --site-id finca-norte --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.StockID, "stock-id", "", "verificar solo este registro")
	cmd.Flags().StringVar(&opts.SiteID, "site-id", "", "limitar a una finca")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	b, err := opts.Open(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir la persistencia", err)
	}
	defer b.Close()

	uc := inventory.NewReplayUseCase(b.Tx, b.StockRecords)

	var reports []inventory.ReplayReport
	if opts.StockID != "" {
		r, err := uc.Verify(ctx, opts.StockID)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("no se pudo verificar %s", opts.StockID), err)
		}
		reports = []inventory.ReplayReport{*r}
	} else {
		reports, err = uc.VerifyAll(ctx, opts.SiteID)
		if err != nil {
			return WrapExitError(ExitCommandError, "no se pudo listar los registros", err)
		}
	}

	result := VerifyResult{
		Records:       make([]VerifyRecord, 0, len(reports)),
		Total:         len(reports),
		AllConsistent: true,
	}
	for _, r := range reports {
		rec := VerifyRecord{
			StockRecordID: r.StockRecordID,
			Name:          r.Name,
			Snapshot:      r.Snapshot.String(),
			Replayed:      r.Replayed.String(),
			Movements:     r.Movements,
			Consistent:    r.Consistent(),
		}
		if !rec.Consistent {
			result.AllConsistent = false
			opts.Log.Warn().
				Str("stock_record_id", r.StockRecordID).
				Str("snapshot", rec.Snapshot).
				Str("replayed", rec.Replayed).
				Msg("deriva detectada")
		}
		result.Records = append(result.Records, rec)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return WrapExitError(ExitCommandError, "no se pudo escribir la salida", err)
		}
	} else {
		printVerifyText(cmd, result, opts.Verbose)
	}

	if !result.AllConsistent {
		return NewExitError(ExitFailure, "el ledger no coincide con el stock materializado")
	}
	return nil
}

func printVerifyText(cmd *cobra.Command, result VerifyResult, verbose bool) {
	out := cmd.OutOrStdout()
	if result.Total == 0 {
		fmt.Fprintln(out, "No hay registros de stock.")
		return
	}
	for _, r := range result.Records {
		if r.Consistent && !verbose {
			continue
		}
		mark := "OK"
		if !r.Consistent {
			mark = "DERIVA"
		}
		fmt.Fprintf(out, "%-6s %s (%s): stock=%s replay=%s movimientos=%d\n",
			mark, r.StockRecordID, r.Name, r.Snapshot, r.Replayed, r.Movements)
	}
	if result.AllConsistent {
		fmt.Fprintf(out, "%d registros verificados, sin deriva.\n", result.Total)
	}
}
