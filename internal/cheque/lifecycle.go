package cheque

import "strings"

// Action is a state transition verb. Its value is also the endpoint suffix
// under /cheques/:id/.
type Action string

const (
	ActionDepositar         Action = "depositar"
	ActionAcreditar         Action = "acreditar"
	ActionRechazar          Action = "rechazar"
	ActionAplicarAProveedor Action = "aplicar-a-proveedor"
	ActionEntregar          Action = "entregar"
	ActionCompensar         Action = "compensar"
	ActionAnular            Action = "anular"
)

// Actions is the canonical order used for buttons and ActionSet bits.
var Actions = []Action{
	ActionDepositar,
	ActionAcreditar,
	ActionRechazar,
	ActionAplicarAProveedor,
	ActionEntregar,
	ActionCompensar,
	ActionAnular,
}

var actionLabels = map[Action]string{
	ActionDepositar:         "Depositar",
	ActionAcreditar:         "Acreditar",
	ActionRechazar:          "Rechazar",
	ActionAplicarAProveedor: "Aplicar a proveedor",
	ActionEntregar:          "Entregar",
	ActionCompensar:         "Compensar",
	ActionAnular:            "Anular",
}

func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	_, ok := actionLabels[a]

	return a, ok
}

func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}

	return string(a)
}

// NeedsMotivo reports whether the UI should prompt for a reason.
func (a Action) NeedsMotivo() bool {
	return a == ActionRechazar || a == ActionAnular
}

func (a Action) bit() ActionSet {
	for i, v := range Actions {
		if v == a {
			return 1 << i
		}
	}

	return 0
}

// ActionSet is a small bitset over Actions.
type ActionSet uint8

// AllActions grants every verb; pages narrow it to their capability set.
var AllActions = NewActionSet(Actions...)

func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s |= a.bit()
	}

	return s
}

func (s ActionSet) Has(a Action) bool {
	b := a.bit()
	return b != 0 && s&b == b
}

func (s ActionSet) With(actions ...Action) ActionSet {
	return s | NewActionSet(actions...)
}

func (s ActionSet) Intersect(o ActionSet) ActionSet { return s & o }

func (s ActionSet) Empty() bool { return s == 0 }

// Slice returns the members in canonical order.
func (s ActionSet) Slice() []Action {
	out := make([]Action, 0, len(Actions))

	for _, a := range Actions {
		if s.Has(a) {
			out = append(out, a)
		}
	}

	return out
}

func (s ActionSet) String() string {
	parts := make([]string, 0, len(Actions))
	for _, a := range s.Slice() {
		parts = append(parts, string(a))
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// AllowedActions is the single permission table for cheque transitions. It
// is pure and must be re-evaluated against the latest record after every
// transition.
//
// Void is granted to every non-terminal state on top of the per-type table,
// so the result is the union of both rules.
func AllowedActions(tipo Tipo, estado Estado) ActionSet {
	var s ActionSet

	switch tipo {
	case TipoRecibido:
		switch estado {
		case EstadoRegistrado, EstadoEnCartera:
			s = NewActionSet(ActionDepositar, ActionEntregar, ActionAplicarAProveedor, ActionAnular)
		case EstadoDepositado:
			s = NewActionSet(ActionAcreditar, ActionRechazar)
		case EstadoEntregado:
			s = NewActionSet(ActionCompensar)
		}
	case TipoEmitido:
		switch estado {
		case EstadoRegistrado, EstadoEnCartera:
			s = NewActionSet(ActionEntregar, ActionAplicarAProveedor, ActionAnular)
		case EstadoAplicadoACompra, EstadoEntregado:
			s = NewActionSet(ActionCompensar, ActionAnular)
		}
	}

	if estado.Valid() && !estado.Terminal() {
		s = s.With(ActionAnular)
	}

	return s
}

// Target is the state a cheque lands in after the action. Applying a
// received cheque to a vendor endorses it; applying an issued one settles a
// purchase.
func Target(tipo Tipo, a Action) (Estado, bool) {
	switch a {
	case ActionDepositar:
		return EstadoDepositado, true
	case ActionAcreditar:
		return EstadoAcreditado, true
	case ActionRechazar:
		return EstadoRechazado, true
	case ActionEntregar:
		return EstadoEntregado, true
	case ActionCompensar:
		return EstadoCompensado, true
	case ActionAnular:
		return EstadoAnulado, true
	case ActionAplicarAProveedor:
		if tipo == TipoEmitido {
			return EstadoAplicadoACompra, true
		}

		return EstadoEndosado, true
	}

	return "", false
}
