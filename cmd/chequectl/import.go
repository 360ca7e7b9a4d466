package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/importer"
	"github.com/MrJamesThe3rd/tesoreria/internal/importer/planilla"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

func (a *app) chequesImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Create cheques from a bank or ERP export",
		Long: fmt.Sprintf(`Create one cheque per row of a CSV export. The file encoding and the
column layout are detected automatically; bank names are matched against
the bank catalog.

Known layouts: %s.`, strings.Join(planilla.Profiles(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil {
					slog.Error("failed to close file", "error", closeErr)
				}
			}()

			svc, err := a.importer()
			if err != nil {
				return err
			}

			batch, err := svc.Read(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()

			if err := printBatch(out, batch); err != nil {
				return err
			}

			if dryRun || len(batch.Rows) == 0 {
				return nil
			}

			rep, err := svc.Import(cmd.Context(), batch)
			if err != nil {
				return fmt.Errorf("import interrupted after %d cheques: %w", len(rep.Created), err)
			}

			return printReport(out, rep)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and show the rows without creating anything")

	return cmd
}

func printBatch(out io.Writer, b *importer.Batch) error {
	if _, err := fmt.Fprintln(out, subtleStyle.Render(
		fmt.Sprintf("layout %s · encoding %s · %d cheques", b.Layout, b.Charset, len(b.Rows)))); err != nil {
		return err
	}

	for _, name := range b.Unresolved {
		if _, err := fmt.Fprintln(out, warningStyle.Render("unknown bank: "+name)); err != nil {
			return err
		}
	}

	if len(b.Rows) == 0 {
		return nil
	}

	t, err := newTable(out, "Línea", "Tipo", "Número", "Monto", "Cobro prev.", "Contraparte")
	if err != nil {
		return err
	}

	for _, row := range b.Rows {
		p := row.Params
		if err := t.row(
			strconv.Itoa(row.Line),
			p.Tipo.Label(),
			p.Numero,
			present.Money(p.Monto),
			present.Date(p.FechaCobroPrevista),
			present.Text(p.BeneficiarioNombre),
		); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return t.flush()
}

func printReport(out io.Writer, rep *importer.Report) error {
	if _, err := fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%d cheques created", len(rep.Created)))); err != nil {
		return err
	}

	for _, f := range rep.Failed {
		if _, err := fmt.Fprintln(out, errorStyle.Render(f.Error())); err != nil {
			return err
		}
	}

	if len(rep.Failed) > 0 {
		return fmt.Errorf("%d rows failed", len(rep.Failed))
	}

	return nil
}
