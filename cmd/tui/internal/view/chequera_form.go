package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

func requiredNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("requerido")
	}

	return optionalID(s)
}

func parseNumber(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

// chequeraForm creates a checkbook or edits one. Only the description, the
// range end and the next number can change after creation.
type chequeraForm struct {
	form    *huh.Form
	current *chequera.Chequera

	descripcion string
	cuenta      int64
	desde       string
	hasta       string
	proximo     string
}

func newChequeraForm(current *chequera.Chequera, cuentas []*lookup.Cuenta) *chequeraForm {
	cf := &chequeraForm{current: current}

	var fields []huh.Field

	fields = append(fields, huh.NewInput().Title("Descripción").Value(&cf.descripcion))

	if current == nil {
		opts := make([]huh.Option[int64], len(cuentas))
		for i, c := range cuentas {
			opts[i] = huh.NewOption(c.Label(), c.ID)
		}

		fields = append(fields,
			huh.NewSelect[int64]().
				Title("Cuenta bancaria").
				Options(opts...).
				Value(&cf.cuenta).
				Validate(func(id int64) error {
					if id == 0 {
						return errors.New("elegí una cuenta")
					}

					return nil
				}),
			huh.NewInput().Title("Número desde").Value(&cf.desde).Validate(requiredNumber),
		)
	} else {
		cf.descripcion = current.Descripcion
		cf.hasta = strconv.FormatInt(current.NroHasta, 10)
		cf.proximo = strconv.FormatInt(current.ProximoNro, 10)
	}

	fields = append(fields,
		huh.NewInput().Title("Número hasta").Value(&cf.hasta).Validate(requiredNumber),
		huh.NewInput().Title("Próximo número (opcional)").Value(&cf.proximo).Validate(optionalID),
	)

	cf.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)

	return cf
}

func (cf *chequeraForm) createParams() chequera.CreateParams {
	return chequera.CreateParams{
		Descripcion:   strings.TrimSpace(cf.descripcion),
		BancoCuentaID: cf.cuenta,
		NroDesde:      parseNumber(cf.desde),
		NroHasta:      parseNumber(cf.hasta),
		ProximoNro:    parseNumber(cf.proximo),
	}
}

// updateParams sends only the fields that changed.
func (cf *chequeraForm) updateParams() chequera.UpdateParams {
	var p chequera.UpdateParams

	if d := strings.TrimSpace(cf.descripcion); d != cf.current.Descripcion {
		p.Descripcion = &d
	}

	if h := parseNumber(cf.hasta); h != cf.current.NroHasta {
		p.NroHasta = &h
	}

	if n := parseNumber(cf.proximo); n != 0 && n != cf.current.ProximoNro {
		p.ProximoNro = &n
	}

	return p
}

var fechaCampos = []chequera.FechaCampo{chequera.FechaEmision, chequera.FechaVencimiento, chequera.FechaCobroPrevista}

func fechaCampoLabel(f chequera.FechaCampo) string {
	switch f {
	case chequera.FechaVencimiento:
		return "Vencimiento"
	case chequera.FechaCobroPrevista:
		return "Cobro previsto"
	}

	return "Emisión"
}

// chequeraChequesFilterForm edits the filters of a checkbook's cheques.
type chequeraChequesFilterForm struct {
	form *huh.Form
	base chequera.ChequesFilter

	estado cheque.Estado
	campo  chequera.FechaCampo
	desde  string
	hasta  string
}

func newChequeraChequesFilterForm(f chequera.ChequesFilter) *chequeraChequesFilterForm {
	ff := &chequeraChequesFilterForm{
		base:  f,
		campo: f.FechaCampo,
		desde: formatDate(f.Desde),
		hasta: formatDate(f.Hasta),
	}

	if ff.campo == "" {
		ff.campo = chequera.FechaEmision
	}

	if f.Estado != nil {
		ff.estado = *f.Estado
	}

	estados := []huh.Option[cheque.Estado]{huh.NewOption("Todos", cheque.Estado(""))}
	for _, e := range cheque.Estados {
		estados = append(estados, huh.NewOption(e.Label(), e))
	}

	campos := make([]huh.Option[chequera.FechaCampo], len(fechaCampos))
	for i, c := range fechaCampos {
		campos[i] = huh.NewOption(fechaCampoLabel(c), c)
	}

	ff.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[cheque.Estado]().Title("Estado").Options(estados...).Value(&ff.estado),
		huh.NewSelect[chequera.FechaCampo]().Title("Fecha").Options(campos...).Value(&ff.campo),
		huh.NewInput().Title("Desde").Placeholder("AAAA-MM-DD").Value(&ff.desde).Validate(optionalDate),
		huh.NewInput().Title("Hasta").Placeholder("AAAA-MM-DD").Value(&ff.hasta).Validate(optionalDate),
	)).WithWidth(50).WithShowHelp(false)

	return ff
}

func (ff *chequeraChequesFilterForm) filter() (chequera.ChequesFilter, error) {
	f := ff.base
	f.Estado = nil
	f.FechaCampo = ff.campo

	if ff.estado != "" {
		f.Estado = &ff.estado
	}

	var err error

	if f.Desde, err = parseDate(ff.desde); err != nil {
		return f, fmt.Errorf("%w: %w", chequera.ErrInvalid, err)
	}

	if f.Hasta, err = parseDate(ff.hasta); err != nil {
		return f, fmt.Errorf("%w: %w", chequera.ErrInvalid, err)
	}

	if f.Desde != nil && f.Hasta != nil && f.Desde.After(f.Hasta.Time) {
		return f, chequera.ErrInvalidChequesFilter
	}

	return f, nil
}
