package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
)

var errChequeMonto = fmt.Errorf("%w: %w", cheque.ErrInvalid, errInvalidAmount)

// chequeFilterForm edits the typed filters of the cheques page.
type chequeFilterForm struct {
	form *huh.Form
	base cheque.ListFilter

	tipo    cheque.Tipo
	estados []cheque.Estado
	banco   int64
	desde   string
	hasta   string
}

func newChequeFilterForm(f cheque.ListFilter, bancos []*lookup.Banco) *chequeFilterForm {
	ff := &chequeFilterForm{
		base:    f,
		estados: append([]cheque.Estado(nil), f.Estados...),
		banco:   derefID(f.BancoID),
		desde:   formatDate(f.PrevistaDesde),
		hasta:   formatDate(f.PrevistaHasta),
	}

	if f.Tipo != nil {
		ff.tipo = *f.Tipo
	}

	estadoOpts := make([]huh.Option[cheque.Estado], len(cheque.Estados))
	for i, e := range cheque.Estados {
		estadoOpts[i] = huh.NewOption(e.Label(), e)
	}

	ff.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[cheque.Tipo]().
			Title("Tipo").
			Options(
				huh.NewOption("Todos", cheque.Tipo("")),
				huh.NewOption(cheque.TipoRecibido.Label(), cheque.TipoRecibido),
				huh.NewOption(cheque.TipoEmitido.Label(), cheque.TipoEmitido),
			).
			Value(&ff.tipo),
		huh.NewMultiSelect[cheque.Estado]().
			Title("Estados").
			Options(estadoOpts...).
			Height(8).
			Value(&ff.estados),
		huh.NewSelect[int64]().
			Title("Banco").
			Options(bancoOptions(bancos, "Todos")...).
			Value(&ff.banco),
		huh.NewInput().
			Title("Cobro previsto desde").
			Placeholder("AAAA-MM-DD").
			Value(&ff.desde).
			Validate(optionalDate),
		huh.NewInput().
			Title("Cobro previsto hasta").
			Placeholder("AAAA-MM-DD").
			Value(&ff.hasta).
			Validate(optionalDate),
	)).WithWidth(50).WithShowHelp(false)

	return ff
}

// filter returns the edited filter, keeping the base ordering.
func (ff *chequeFilterForm) filter() (cheque.ListFilter, error) {
	f := ff.base
	f.Tipo = nil
	f.Estados = ff.estados
	f.BancoID = idOrNil(ff.banco)

	if ff.tipo != "" {
		f.Tipo = &ff.tipo
	}

	var err error

	if f.PrevistaDesde, err = parseDate(ff.desde); err != nil {
		return f, fmt.Errorf("%w: %w", cheque.ErrInvalid, err)
	}

	if f.PrevistaHasta, err = parseDate(ff.hasta); err != nil {
		return f, fmt.Errorf("%w: %w", cheque.ErrInvalid, err)
	}

	if f.PrevistaDesde != nil && f.PrevistaHasta != nil && f.PrevistaDesde.After(f.PrevistaHasta.Time) {
		return f, cheque.ErrInvalidDateRange
	}

	return f, nil
}

// chequeForm creates a cheque or edits one. Tipo and emission date are
// fixed once created.
type chequeForm struct {
	form    *huh.Form
	current *cheque.Cheque

	tipo          cheque.Tipo
	canal         string
	numero        string
	monto         string
	emision       string
	vencimiento   string
	cobro         string
	banco         int64
	beneficiario  string
	observaciones string
}

func newChequeForm(current *cheque.Cheque, bancos []*lookup.Banco) *chequeForm {
	cf := &chequeForm{current: current, tipo: cheque.TipoRecibido, canal: "fisico"}

	if current != nil {
		cf.tipo = current.Tipo
		cf.canal = current.Canal
		cf.numero = current.Numero
		cf.monto = current.Monto.StringFixed(2)
		cf.vencimiento = formatDate(&current.FechaVencimiento)
		cf.cobro = formatDate(&current.FechaCobroPrevista)
		cf.banco = derefID(current.BancoID)
		cf.beneficiario = current.BeneficiarioNombre
		cf.observaciones = current.Observaciones
	}

	var fields []huh.Field

	if current == nil {
		fields = append(fields,
			huh.NewSelect[cheque.Tipo]().
				Title("Tipo").
				Options(
					huh.NewOption(cheque.TipoRecibido.Label(), cheque.TipoRecibido),
					huh.NewOption(cheque.TipoEmitido.Label(), cheque.TipoEmitido),
				).
				Value(&cf.tipo),
		)
	}

	fields = append(fields,
		huh.NewSelect[string]().
			Title("Canal").
			Options(huh.NewOption("Físico", "fisico"), huh.NewOption("ECHEQ", "echeq")).
			Value(&cf.canal),
		huh.NewInput().
			Title("Número").
			Value(&cf.numero).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("requerido")
				}

				return nil
			}),
		huh.NewInput().
			Title("Monto").
			Placeholder("1.250,50").
			Value(&cf.monto).
			Validate(validAmount),
	)

	if current == nil {
		fields = append(fields,
			huh.NewInput().Title("Emisión").Placeholder("AAAA-MM-DD").Value(&cf.emision).Validate(optionalDate),
		)
	}

	fields = append(fields,
		huh.NewInput().Title("Vencimiento").Placeholder("AAAA-MM-DD").Value(&cf.vencimiento).Validate(optionalDate),
		huh.NewInput().Title("Cobro previsto").Placeholder("AAAA-MM-DD").Value(&cf.cobro).Validate(requiredDate),
		huh.NewSelect[int64]().
			Title("Banco").
			Options(bancoOptions(bancos, "Sin banco")...).
			Value(&cf.banco),
		huh.NewInput().Title("Beneficiario").Value(&cf.beneficiario),
		huh.NewText().Title("Observaciones").CharLimit(500).Value(&cf.observaciones),
	)

	cf.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(60).WithShowHelp(false)

	return cf
}

func (cf *chequeForm) dates() (emision, vencimiento, cobro civil.Date, err error) {
	for _, f := range []struct {
		raw string
		dst *civil.Date
	}{{cf.emision, &emision}, {cf.vencimiento, &vencimiento}, {cf.cobro, &cobro}} {
		d, err := parseDate(f.raw)
		if err != nil {
			return emision, vencimiento, cobro, fmt.Errorf("%w: %w", cheque.ErrInvalid, err)
		}

		if d != nil {
			*f.dst = *d
		}
	}

	return emision, vencimiento, cobro, nil
}

func (cf *chequeForm) createParams() (cheque.CreateParams, error) {
	monto, err := parseAmount(cf.monto)
	if err != nil {
		return cheque.CreateParams{}, errChequeMonto
	}

	emision, vencimiento, cobro, err := cf.dates()
	if err != nil {
		return cheque.CreateParams{}, err
	}

	return cheque.CreateParams{
		Tipo:               cf.tipo,
		Canal:              cf.canal,
		Numero:             strings.TrimSpace(cf.numero),
		Monto:              monto,
		FechaEmision:       emision,
		FechaVencimiento:   vencimiento,
		FechaCobroPrevista: cobro,
		BancoID:            idOrNil(cf.banco),
		BeneficiarioNombre: strings.TrimSpace(cf.beneficiario),
		Observaciones:      strings.TrimSpace(cf.observaciones),
	}, nil
}

// updateParams sends only the fields that changed.
func (cf *chequeForm) updateParams() (cheque.UpdateParams, error) {
	c := cf.current

	var p cheque.UpdateParams

	monto, err := parseAmount(cf.monto)
	if err != nil {
		return p, errChequeMonto
	}

	_, vencimiento, cobro, err := cf.dates()
	if err != nil {
		return p, err
	}

	if cf.canal != c.Canal {
		p.Canal = &cf.canal
	}

	if n := strings.TrimSpace(cf.numero); n != c.Numero {
		p.Numero = &n
	}

	if !monto.Equal(c.Monto) {
		p.Monto = &monto
	}

	if !vencimiento.Equal(c.FechaVencimiento.Time) {
		p.FechaVencimiento = &vencimiento
	}

	if !cobro.Equal(c.FechaCobroPrevista.Time) {
		p.FechaCobroPrevista = &cobro
	}

	if cf.banco != derefID(c.BancoID) {
		p.BancoID = &cf.banco
	}

	if b := strings.TrimSpace(cf.beneficiario); b != c.BeneficiarioNombre {
		p.BeneficiarioNombre = &b
	}

	if o := strings.TrimSpace(cf.observaciones); o != c.Observaciones {
		p.Observaciones = &o
	}

	return p, nil
}
