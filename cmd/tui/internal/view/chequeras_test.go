package view

import (
	"errors"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

var cmdsType = reflect.TypeOf([]tea.Cmd(nil))

// drain runs cmd and every command batched or sequenced inside it,
// returning the messages in order. Follow-up commands are not run.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	if cmd == nil {
		return nil
	}

	msg := cmd()
	if msg == nil {
		return nil
	}

	// tea.BatchMsg and the unexported sequence message are both []tea.Cmd.
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().ConvertibleTo(cmdsType) {
		var out []tea.Msg
		for _, c := range v.Convert(cmdsType).Interface().([]tea.Cmd) {
			out = append(out, drain(t, c)...)
		}

		return out
	}

	return []tea.Msg{msg}
}

func feed(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()

	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}

	return m
}

func TestChequeras_ToggleRevertsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := chequera.NewMockRepository(ctrl)
	lookups := lookup.NewMockRepository(ctrl)

	lookups.EXPECT().ListCuentas(gomock.Any(), gomock.Nil()).Return(nil, nil)
	repo.EXPECT().ListChequeras(gomock.Any(), gomock.Any()).Return(&chequera.ListResult{
		Items: []*chequera.Chequera{{ID: 1, Descripcion: "Pagos", NroDesde: 1, NroHasta: 50, ProximoNro: 10, Estado: chequera.EstadoActiva}},
		Meta:  page.Meta{Page: 1, TotalPages: 1, Total: 1, Paginated: true},
	}, nil)
	repo.EXPECT().UpdateChequera(gomock.Any(), int64(1), chequera.UpdateParams{Estado: new(chequera.EstadoBloqueada)}).
		Return(nil, errors.New("503 service unavailable"))

	svc := Services{Chequeras: chequera.NewService(repo), Lookups: lookup.NewService(lookups)}
	settings := Settings{PageSize: 10, Debounce: time.Millisecond, Timeout: time.Second}

	var m tea.Model = NewChequerasModel(svc, settings)
	m = feed(t, m, drain(t, m.Init())...)

	estado := func() string {
		rows := m.(ChequerasModel).table.Rows()
		require.Len(t, rows, 1)

		return rows[0][6]
	}
	require.Equal(t, "Activa", estado())

	m, cmd := m.Update(runes("t"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Bloqueada", estado(), "toggle shows the new estado before the call returns")

	// A second press while the call is in flight is ignored.
	_, again := m.Update(runes("t"))
	assert.Nil(t, again)

	m = feed(t, m, cmd())
	assert.Equal(t, "Activa", estado())

	cm := m.(ChequerasModel)
	assert.True(t, cm.feedback.Blocking())
	assert.Empty(t, cm.toggling)

	// The next key only dismisses the alert.
	m, _ = m.Update(runes("t"))
	assert.False(t, m.(ChequerasModel).feedback.Visible())
}

func TestChequeras_ToggleResultArrivesWithDetailOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := chequera.NewMockRepository(ctrl)
	lookups := lookup.NewMockRepository(ctrl)

	lookups.EXPECT().ListCuentas(gomock.Any(), gomock.Nil()).Return(nil, nil)
	repo.EXPECT().ListChequeras(gomock.Any(), gomock.Any()).Return(&chequera.ListResult{
		Items: []*chequera.Chequera{{ID: 1, Descripcion: "Pagos", NroDesde: 1, NroHasta: 50, ProximoNro: 10, Estado: chequera.EstadoActiva}},
		Meta:  page.Meta{Page: 1, TotalPages: 1, Total: 1, Paginated: true},
	}, nil)
	repo.EXPECT().UpdateChequera(gomock.Any(), int64(1), chequera.UpdateParams{Estado: new(chequera.EstadoBloqueada)}).
		Return(nil, errors.New("503 service unavailable"))

	svc := Services{Chequeras: chequera.NewService(repo), Lookups: lookup.NewService(lookups)}
	settings := Settings{PageSize: 10, Debounce: time.Millisecond, Timeout: time.Second}

	var m tea.Model = NewChequerasModel(svc, settings)
	m = feed(t, m, drain(t, m.Init())...)

	m, toggle := m.Update(runes("t"))
	require.NotNil(t, toggle)

	// The detail opens before the PATCH answers; its own load is not run.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, chequerasDetail, m.(ChequerasModel).state)

	m = feed(t, m, toggle())

	cm := m.(ChequerasModel)
	assert.Empty(t, cm.toggling)
	assert.True(t, cm.feedback.Blocking())
	assert.Contains(t, cm.View(), genericFailure)

	// The alert takes the next key; the detail stays open.
	m, _ = m.Update(runes("j"))
	cm = m.(ChequerasModel)
	assert.False(t, cm.feedback.Visible())
	assert.Equal(t, chequerasDetail, cm.state)

	m = feed(t, m, detailClosedMsg{})
	require.Equal(t, chequerasBrowse, m.(ChequerasModel).state)

	rows := m.(ChequerasModel).table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Activa", rows[0][6])

	_, again := m.Update(runes("t"))
	assert.NotNil(t, again, "the checkbook is no longer held as busy")
}

func TestChequeras_SaveInFlightBlocksForms(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := chequera.NewMockRepository(ctrl)
	lookups := lookup.NewMockRepository(ctrl)

	lookups.EXPECT().ListCuentas(gomock.Any(), gomock.Nil()).Return(nil, nil)
	repo.EXPECT().ListChequeras(gomock.Any(), gomock.Any()).Return(&chequera.ListResult{
		Items: []*chequera.Chequera{{ID: 1, Descripcion: "Pagos", NroDesde: 1, NroHasta: 50, ProximoNro: 10, Estado: chequera.EstadoActiva}},
		Meta:  page.Meta{Page: 1, TotalPages: 1, Total: 1, Paginated: true},
	}, nil)

	svc := Services{Chequeras: chequera.NewService(repo), Lookups: lookup.NewService(lookups)}
	settings := Settings{PageSize: 10, Debounce: time.Millisecond, Timeout: time.Second}

	var m tea.Model = NewChequerasModel(svc, settings)
	m = feed(t, m, drain(t, m.Init())...)

	m, cmd := m.Update(runes("e"))
	require.NotNil(t, cmd)

	cm := m.(ChequerasModel)
	require.Equal(t, chequerasEdit, cm.state)
	cm.editForm.form.State = huh.StateCompleted

	m, save := cm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, save)
	require.True(t, m.(ChequerasModel).saving)

	for _, key := range []string{"n", "e", "x"} {
		_, cmd = m.Update(runes(key))
		assert.Nil(t, cmd, key)
		assert.Equal(t, chequerasBrowse, m.(ChequerasModel).state)
	}

	m = feed(t, m, chequeraSavedMsg{err: errors.New("503 service unavailable")})
	assert.False(t, m.(ChequerasModel).saving)
}
