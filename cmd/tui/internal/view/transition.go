package view

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

var errNotANumber = errors.New("debe ser un número")

// transitionForm is the modal asking for the optional payload of a
// transition and a final confirmation.
type transitionForm struct {
	form   *huh.Form
	cheque *cheque.Cheque
	action cheque.Action

	motivo    string
	proveedor string
	compra    string
	fecha     string
	confirm   bool
}

func newTransitionForm(c *cheque.Cheque, a cheque.Action) *transitionForm {
	t := &transitionForm{cheque: c, action: a, confirm: true}

	hint := a.Label()
	if target, ok := cheque.Target(c.Tipo, a); ok {
		hint = fmt.Sprintf("%s → %s", c.Estado.Label(), target.Label())
	}

	fields := []huh.Field{
		huh.NewNote().
			Title(fmt.Sprintf("%s cheque %s", a.Label(), c.Numero)).
			Description(hint),
	}

	switch {
	case a == cheque.ActionAplicarAProveedor:
		// Left optional here: the dispatcher rejects a missing vendor.
		fields = append(fields,
			huh.NewInput().
				Title("Proveedor (id)").
				Value(&t.proveedor).
				Validate(optionalID),
		)

		if c.Tipo == cheque.TipoEmitido {
			fields = append(fields,
				huh.NewInput().
					Title("Compra (id, opcional)").
					Value(&t.compra).
					Validate(optionalID),
			)
		}
	case a.NeedsMotivo():
		fields = append(fields,
			huh.NewText().
				Title("Motivo").
				CharLimit(250).
				Value(&t.motivo),
		)
	case a == cheque.ActionDepositar:
		fields = append(fields,
			huh.NewInput().
				Title("Fecha de acreditación prevista (opcional)").
				Placeholder("AAAA-MM-DD").
				Value(&t.fecha).
				Validate(optionalDate),
		)
	}

	fields = append(fields,
		huh.NewConfirm().
			Title("¿Confirmar?").
			Affirmative("Sí").
			Negative("No").
			Value(&t.confirm),
	)

	t.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)

	return t
}

// payload builds the request body from the form values.
func (t *transitionForm) payload() (cheque.TransitionPayload, error) {
	p := cheque.TransitionPayload{Motivo: strings.TrimSpace(t.motivo)}

	var err error

	if p.ProveedorID, err = parseOptionalID(t.proveedor); err != nil {
		return p, fmt.Errorf("proveedor: %w", err)
	}

	if p.CompraID, err = parseOptionalID(t.compra); err != nil {
		return p, fmt.Errorf("compra: %w", err)
	}

	if s := strings.TrimSpace(t.fecha); s != "" {
		d, err := civil.Parse(s)
		if err != nil {
			return p, err
		}

		p.Fecha = &d
	}

	return p, nil
}

func parseOptionalID(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, errNotANumber
	}

	return &id, nil
}

func optionalID(s string) error {
	_, err := parseOptionalID(s)
	return err
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := civil.Parse(strings.TrimSpace(s)); err != nil {
		return errors.New("fecha inválida (AAAA-MM-DD)")
	}

	return nil
}

// TransitionDoneMsg reports the outcome of a transition call.
type TransitionDoneMsg struct {
	Cheque *cheque.Cheque
	Action cheque.Action
	Err    error
}

// transitioner runs the payload modal and the dispatcher call for a page
// that shows cheque cards. Only one call is in flight at a time.
type transitioner struct {
	svc     *cheque.Service
	timeout time.Duration
	form    *transitionForm
	busy    bool
}

func newTransitioner(svc *cheque.Service, timeout time.Duration) transitioner {
	return transitioner{svc: svc, timeout: timeout}
}

func (t transitioner) Active() bool { return t.form != nil }

// Busy reports whether a confirmed transition has not reported back yet.
func (t transitioner) Busy() bool { return t.busy }

// Done clears the in-flight call once its TransitionDoneMsg arrives.
func (t transitioner) Done() transitioner {
	t.busy = false
	return t
}

func (t transitioner) Open(req TransitionRequestedMsg) (transitioner, tea.Cmd) {
	if t.busy || t.form != nil {
		return t, nil
	}

	t.form = newTransitionForm(req.Cheque, req.Action)
	return t, t.form.form.Init()
}

func (t transitioner) Update(msg tea.Msg) (transitioner, tea.Cmd) {
	if t.form == nil {
		return t, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		t.form = nil
		return t, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	t.form.form, cmd, done = updateForm(t.form.form, msg)
	if !done {
		return t, cmd
	}

	f := t.form
	t.form = nil

	if !f.confirm {
		return t, nil
	}

	t.busy = true

	payload, err := f.payload()
	if err != nil {
		err = fmt.Errorf("%w: %w", cheque.ErrInvalid, err)
		return t, func() tea.Msg { return TransitionDoneMsg{Cheque: f.cheque, Action: f.action, Err: err} }
	}

	return t, t.perform(f.cheque, f.action, payload)
}

func (t transitioner) perform(c *cheque.Cheque, a cheque.Action, payload cheque.TransitionPayload) tea.Cmd {
	svc, timeout := t.svc, t.timeout

	return func() tea.Msg {
		ctx, cancel := apiCtx(timeout)
		defer cancel()

		err := svc.PerformTransition(ctx, a, c, payload)
		if err != nil {
			slog.Warn("transition failed", "cheque", c.ID, "action", a, "error", err)
		}

		return TransitionDoneMsg{Cheque: c, Action: a, Err: err}
	}
}

func (t transitioner) View() string {
	if t.form == nil {
		return ""
	}

	return panelStyle.Render(t.form.form.View())
}

// transitionNotice is the success toast text.
func transitionNotice(msg TransitionDoneMsg) string {
	if target, ok := cheque.Target(msg.Cheque.Tipo, msg.Action); ok {
		return fmt.Sprintf("Cheque %s: %s", msg.Cheque.Numero, strings.ToLower(target.Label()))
	}

	return fmt.Sprintf("Cheque %s: %s", msg.Cheque.Numero, strings.ToLower(msg.Action.Label()))
}
