package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

func (a *app) flujosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flujos",
		Short: "Treasury flow projections",
	}

	cmd.AddCommand(a.flujosListCmd())

	return cmd
}

func (a *app) flujosListCmd() *cobra.Command {
	var (
		signo string
		desde string
		hasta string
		p     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projected income and expenses with the page balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := flujo.ListQuery{Page: p, Limit: a.cfg.List.PageSize}

			if signo != "" {
				s := flujo.Signo(signo)
				if !s.Valid() {
					return fmt.Errorf("unknown signo %q (ingreso, egreso)", signo)
				}

				q.Signo = &s
			}

			var err error
			if q.Desde, err = optionalDate("desde", desde); err != nil {
				return err
			}

			if q.Hasta, err = optionalDate("hasta", hasta); err != nil {
				return err
			}

			svc, err := a.flujos()
			if err != nil {
				return err
			}

			res, err := svc.List(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to list flujos: %w", err)
			}

			return printFlujos(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&signo, "signo", "", "ingreso or egreso")
	cmd.Flags().StringVar(&desde, "desde", "", "from date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hasta, "hasta", "", "to date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&p, "page", 1, "page number")

	return cmd
}

func printFlujos(out io.Writer, res *flujo.ListResult) error {
	if len(res.Items) == 0 {
		_, err := fmt.Fprintln(out, subtleStyle.Render("No flujos found."))
		return err
	}

	t, err := newTable(out, "Fecha", "Signo", "Monto", "Origen", "Descripción")
	if err != nil {
		return err
	}

	for _, f := range res.Items {
		if err := t.row(
			present.Date(f.Fecha),
			f.Signo.Label(),
			present.Money(f.Signed()),
			f.OrigenTipo.Label(),
			present.Text(f.Descripcion),
		); err != nil {
			return fmt.Errorf("failed to write flujo row: %w", err)
		}
	}

	if err := t.flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(out, "\n%s %s\n", headerStyle.Render("Saldo de la página"), present.Money(flujo.Balance(res.Items))); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, pageFooter(res.Meta))

	return err
}
