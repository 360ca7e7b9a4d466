package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

func (a *app) chequesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cheques",
		Short: "List cheques and run lifecycle transitions",
	}

	cmd.AddCommand(a.chequesListCmd())
	cmd.AddCommand(a.chequesShowCmd())
	cmd.AddCommand(a.chequesActionsCmd())
	cmd.AddCommand(a.chequesTransitionCmd())
	cmd.AddCommand(a.chequesImportCmd())
	cmd.AddCommand(a.chequesExportCmd())

	return cmd
}

type chequesListOptions struct {
	q       string
	tipo    string
	estados []string
	banco   int64
	desde   string
	hasta   string
	page    int
	limit   int
}

func (o chequesListOptions) query() (cheque.ListQuery, error) {
	q := cheque.ListQuery{Page: o.page, Limit: o.limit, Q: strings.TrimSpace(o.q)}

	if o.tipo != "" {
		t := cheque.Tipo(o.tipo)
		if !t.Valid() {
			return q, fmt.Errorf("unknown tipo %q (recibido, emitido)", o.tipo)
		}

		q.Tipo = &t
	}

	for _, s := range o.estados {
		e := cheque.Estado(s)
		if !e.Valid() {
			return q, fmt.Errorf("unknown estado %q", s)
		}

		q.Estados = append(q.Estados, e)
	}

	if o.banco > 0 {
		q.BancoID = &o.banco
	}

	var err error
	if q.PrevistaDesde, err = optionalDate("desde", o.desde); err != nil {
		return q, err
	}

	if q.PrevistaHasta, err = optionalDate("hasta", o.hasta); err != nil {
		return q, err
	}

	return q, nil
}

func optionalDate(name, s string) (*civil.Date, error) {
	if s == "" {
		return nil, nil
	}

	d, err := civil.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}

	return &d, nil
}

func (a *app) chequesListCmd() *cobra.Command {
	var opts chequesListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cheques with the summary bar",
		Long: `List one page of cheques matching the filters, followed by the
per-state summary of the whole filtered set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := opts.query()
			if err != nil {
				return err
			}

			svc, err := a.cheques()
			if err != nil {
				return err
			}

			res, err := svc.List(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to list cheques: %w", err)
			}

			bancos := a.bancoNames(cmd)

			return printCheques(cmd.OutOrStdout(), res, bancos)
		},
	}

	cmd.Flags().StringVar(&opts.q, "q", "", "free-text search")
	cmd.Flags().StringVar(&opts.tipo, "tipo", "", "recibido or emitido")
	cmd.Flags().StringSliceVar(&opts.estados, "estado", nil, "one or more estados, comma separated")
	cmd.Flags().Int64Var(&opts.banco, "banco", 0, "bank id")
	cmd.Flags().StringVar(&opts.desde, "desde", "", "expected collection date from (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.hasta, "hasta", "", "expected collection date to (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "page size (default: $LIST_PAGE_SIZE)")

	cmd.PreRun = func(*cobra.Command, []string) {
		if opts.limit <= 0 {
			opts.limit = a.cfg.List.PageSize
		}
	}

	return cmd
}

// bancoNames loads the bank catalog for display. A failure only costs the
// names, so it is logged and ignored.
func (a *app) bancoNames(cmd *cobra.Command) map[int64]string {
	svc, err := a.lookups()
	if err != nil {
		return nil
	}

	bancos, err := svc.Bancos(cmd.Context())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("bank names unavailable: "+err.Error()))
		return nil
	}

	return lookup.BancoNames(bancos)
}

func printCheques(out io.Writer, res *cheque.ListResult, bancos map[int64]string) error {
	if len(res.Items) == 0 {
		_, err := fmt.Fprintln(out, subtleStyle.Render("No cheques match the filters."))
		return err
	}

	t, err := newTable(out, "ID", "Tipo", "Número", "Monto", "Estado", "Cobro prev.", "Banco", "Beneficiario")
	if err != nil {
		return err
	}

	for _, c := range res.Items {
		if err := t.row(
			strconv.FormatInt(c.ID, 10),
			c.Tipo.Label(),
			c.Numero,
			present.Money(c.Monto),
			c.Estado.Label(),
			present.Date(c.FechaCobroPrevista),
			present.Ref(bancos, c.BancoID),
			present.Text(c.BeneficiarioNombre),
		); err != nil {
			return fmt.Errorf("failed to write cheque row: %w", err)
		}
	}

	if err := t.flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}

	if err := printKPIs(out, cheque.Summarize(res.Resumen)); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, pageFooter(res.Meta))

	return err
}

func printKPIs(out io.Writer, kpis []cheque.KPI) error {
	parts := make([]string, len(kpis))
	for i, k := range kpis {
		parts[i] = fmt.Sprintf("%s %s (%s)", headerStyle.Render(k.Label), present.Count(k.Cantidad), present.Money(k.Monto))
	}

	_, err := fmt.Fprintln(out, strings.Join(parts, subtleStyle.Render("  │  ")))

	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}

	return id, nil
}

func (a *app) chequesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one cheque and the actions it allows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			svc, err := a.cheques()
			if err != nil {
				return err
			}

			c, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get cheque: %w", err)
			}

			return printCheque(cmd.OutOrStdout(), c, a.bancoNames(cmd))
		},
	}
}

func printCheque(out io.Writer, c *cheque.Cheque, bancos map[int64]string) error {
	fields := [][2]string{
		{"Tipo", c.Tipo.Label()},
		{"Canal", present.Text(c.Canal)},
		{"Monto", present.Money(c.Monto)},
		{"Estado", c.Estado.Label()},
		{"Emisión", present.Date(c.FechaEmision)},
		{"Vencimiento", present.Date(c.FechaVencimiento)},
		{"Cobro previsto", present.Date(c.FechaCobroPrevista)},
		{"Banco", present.Ref(bancos, c.BancoID)},
		{"Beneficiario", present.Text(c.BeneficiarioNombre)},
		{"Observaciones", present.Text(c.Observaciones)},
		{"Motivo", present.Text(c.MotivoEstado)},
		{"Acciones", actionList(c.Allowed())},
	}

	if _, err := fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Cheque %s (#%d)", c.Numero, c.ID))); err != nil {
		return err
	}

	for _, f := range fields {
		if _, err := fmt.Fprintf(out, "%-15s %s\n", subtleStyle.Render(f[0]), f[1]); err != nil {
			return err
		}
	}

	return nil
}

func actionList(set cheque.ActionSet) string {
	if set.Empty() {
		return present.Empty
	}

	labels := make([]string, 0, len(cheque.Actions))
	for _, a := range set.Slice() {
		labels = append(labels, a.Label())
	}

	return strings.Join(labels, ", ")
}

func (a *app) chequesActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions <id>",
		Short: "List the transitions a cheque allows and where each leads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			svc, err := a.cheques()
			if err != nil {
				return err
			}

			c, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get cheque: %w", err)
			}

			return printActions(cmd.OutOrStdout(), c)
		},
	}
}

func printActions(out io.Writer, c *cheque.Cheque) error {
	allowed := c.Allowed().Slice()
	if len(allowed) == 0 {
		_, err := fmt.Fprintln(out, subtleStyle.Render(fmt.Sprintf("%s cheque in %s allows no actions.", c.Tipo.Label(), c.Estado.Label())))
		return err
	}

	t, err := newTable(out, "Acción", "Verbo", "Nuevo estado", "Requiere")
	if err != nil {
		return err
	}

	for _, act := range allowed {
		target := present.Empty
		if e, ok := cheque.Target(c.Tipo, act); ok {
			target = e.Label()
		}

		if err := t.row(act.Label(), string(act), target, requirement(act)); err != nil {
			return fmt.Errorf("failed to write action row: %w", err)
		}
	}

	return t.flush()
}

func requirement(a cheque.Action) string {
	switch {
	case a == cheque.ActionAplicarAProveedor:
		return "--proveedor"
	case a.NeedsMotivo():
		return "--motivo (opcional)"
	}

	return present.Empty
}

func (a *app) chequesTransitionCmd() *cobra.Command {
	var (
		proveedor int64
		compra    int64
		motivo    string
		fecha     string
	)

	cmd := &cobra.Command{
		Use:   "transition <id> <accion>",
		Short: "Run a lifecycle transition on a cheque",
		Long: `Run one lifecycle transition. The action is checked against the
cheque's current state before anything is sent; aplicar-a-proveedor needs
--proveedor.

Actions: depositar, acreditar, rechazar, aplicar-a-proveedor, entregar,
compensar, anular.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			action, ok := cheque.ParseAction(args[1])
			if !ok {
				return fmt.Errorf("unknown action %q", args[1])
			}

			payload := cheque.TransitionPayload{Motivo: strings.TrimSpace(motivo)}
			if proveedor > 0 {
				payload.ProveedorID = &proveedor
			}

			if compra > 0 {
				payload.CompraID = &compra
			}

			if payload.Fecha, err = optionalDate("fecha", fecha); err != nil {
				return err
			}

			svc, err := a.cheques()
			if err != nil {
				return err
			}

			c, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get cheque: %w", err)
			}

			if err := svc.PerformTransition(cmd.Context(), action, c, payload); err != nil {
				if errors.Is(err, cheque.ErrInvalid) {
					return err
				}

				return fmt.Errorf("failed to %s cheque: %w", action, err)
			}

			updated, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("transition sent, but reloading failed: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
				fmt.Sprintf("Cheque %s: %s → %s", updated.Numero, c.Estado.Label(), updated.Estado.Label())))

			return err
		},
	}

	cmd.Flags().Int64Var(&proveedor, "proveedor", 0, "vendor id (aplicar-a-proveedor)")
	cmd.Flags().Int64Var(&compra, "compra", 0, "purchase id (aplicar-a-proveedor)")
	cmd.Flags().StringVar(&motivo, "motivo", "", "reason (rechazar, anular)")
	cmd.Flags().StringVar(&fecha, "fecha", "", "effective date (YYYY-MM-DD)")

	return cmd
}
