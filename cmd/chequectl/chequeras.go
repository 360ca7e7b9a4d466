package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

func (a *app) chequerasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chequeras",
		Short: "List and block checkbooks",
	}

	cmd.AddCommand(a.chequerasListCmd())
	cmd.AddCommand(a.chequerasToggleCmd())

	return cmd
}

func (a *app) chequerasListCmd() *cobra.Command {
	var (
		estado string
		q      string
		p      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checkbooks with their usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := chequera.ListQuery{Page: p, Limit: a.cfg.List.PageSize, Q: q}

			if estado != "" {
				e := chequera.Estado(estado)
				if !e.Valid() {
					return fmt.Errorf("unknown estado %q (activa, agotada, bloqueada, anulada)", estado)
				}

				query.Estado = &e
			}

			svc, err := a.chequeras()
			if err != nil {
				return err
			}

			res, err := svc.List(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to list chequeras: %w", err)
			}

			return printChequeras(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&estado, "estado", "", "activa, agotada, bloqueada or anulada")
	cmd.Flags().StringVar(&q, "q", "", "free-text search")
	cmd.Flags().IntVar(&p, "page", 1, "page number")

	return cmd
}

func printChequeras(out io.Writer, res *chequera.ListResult) error {
	if len(res.Items) == 0 {
		_, err := fmt.Fprintln(out, subtleStyle.Render("No chequeras found."))
		return err
	}

	t, err := newTable(out, "ID", "Descripción", "Banco", "Cuenta", "Rango", "Próximo", "Uso", "Estado")
	if err != nil {
		return err
	}

	for _, ch := range res.Items {
		if err := t.row(
			strconv.FormatInt(ch.ID, 10),
			present.Text(ch.Descripcion),
			present.Text(ch.BancoNombre),
			present.Text(ch.CuentaNumero),
			fmt.Sprintf("%d–%d", ch.NroDesde, ch.NroHasta),
			strconv.FormatInt(ch.ProximoNro, 10),
			fmt.Sprintf("%d/%d (%s)", ch.Usados, ch.Rango, present.Percent(ch.PorcentajeUso)),
			ch.Estado.Label(),
		); err != nil {
			return fmt.Errorf("failed to write chequera row: %w", err)
		}
	}

	if err := t.flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, pageFooter(res.Meta))

	return err
}

func (a *app) chequerasToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Block an active checkbook or reactivate a blocked one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			svc, err := a.chequeras()
			if err != nil {
				return err
			}

			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get chequera: %w", err)
			}

			updated, err := svc.Toggle(cmd.Context(), current)
			if err != nil {
				return fmt.Errorf("failed to toggle chequera: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
				fmt.Sprintf("Chequera %d: %s → %s", updated.ID, current.Estado.Label(), updated.Estado.Label())))

			return err
		},
	}
}
