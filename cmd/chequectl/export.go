package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/encoding"
	"github.com/MrJamesThe3rd/tesoreria/internal/export"
)

func (a *app) chequesExportCmd() *cobra.Command {
	var (
		opts    chequesListOptions
		dir     string
		format  string
		charset string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered cheques to a CSV or XLSX file",
		Long: `Write every cheque matching the filters to a file in the output
directory. CSV files are semicolon separated and use the cartera layout, so
they can be fed back to "cheques import"; use --charset windows-1252 for
older spreadsheet software. --format xlsx writes a workbook with numeric
amounts instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := opts.query()
			if err != nil {
				return err
			}

			if charset != encoding.UTF8 && charset != encoding.Windows1252 {
				return fmt.Errorf("unknown --charset %q (%s, %s)", charset, encoding.UTF8, encoding.Windows1252)
			}

			cheques, err := a.cheques()
			if err != nil {
				return err
			}

			lookups, err := a.lookups()
			if err != nil {
				return err
			}

			res, err := export.NewService(cheques, lookups).Export(cmd.Context(), q.ListFilter, dir, export.Options{
				Format:  export.Format(format),
				Charset: charset,
			})
			if err != nil {
				return fmt.Errorf("failed to export cheques: %w", err)
			}

			out := cmd.OutOrStdout()

			if _, err := fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%d cheques written to %s", res.Count, res.Path))); err != nil {
				return err
			}

			_, err = fmt.Fprint(out, export.GenerateSummary(res))

			return err
		},
	}

	cmd.Flags().StringVar(&opts.tipo, "tipo", "", "recibido or emitido")
	cmd.Flags().StringSliceVar(&opts.estados, "estado", nil, "one or more estados, comma separated")
	cmd.Flags().Int64Var(&opts.banco, "banco", 0, "bank id")
	cmd.Flags().StringVar(&opts.desde, "desde", "", "expected collection date from (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.hasta, "hasta", "", "expected collection date to (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&dir, "out", "o", "./exports", "output directory")
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVar(&charset, "charset", encoding.UTF8, "CSV file encoding")

	return cmd
}
