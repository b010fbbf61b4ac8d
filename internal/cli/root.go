package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bananera-ledger/internal/infrastructure/backend"
	"github.com/jhoicas/bananera-ledger/pkg/config"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
)

// RootOptions flags globales y dependencias compartidas por los subcomandos.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Open abre la persistencia; en tests se reemplaza por un store en memoria.
	Open func(ctx context.Context) (*backend.Backend, error)
	Log  *logger.Logger
}

// ValidFormats formatos de salida admitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz de ledgerctl. La persistencia se toma de pkg/config.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Open: openFromConfig})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Herramientas de operación del ledger bananero",
		Long:  "Verificación de consistencia del ledger de inventario y mantenimiento de alertas.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("formato %q inválido: use uno de %v", opts.Format, ValidFormats))
			}
			if opts.Log == nil {
				level := "warn"
				if opts.Verbose {
					level = "debug"
				}
				opts.Log = logger.NewWithWriter(cmd.ErrOrStderr(), level)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "salida detallada")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (json|text)")

	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewAlertsCommand(opts))

	return cmd
}

func openFromConfig(ctx context.Context) (*backend.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return backend.Open(ctx, cfg)
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
