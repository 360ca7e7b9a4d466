package view

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

func newChequesPage(t *testing.T, items ...*cheque.Cheque) tea.Model {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := cheque.NewMockRepository(ctrl)
	lookups := lookup.NewMockRepository(ctrl)

	lookups.EXPECT().ListBancos(gomock.Any()).Return(nil, nil)
	repo.EXPECT().ListCheques(gomock.Any(), gomock.Any()).Return(&cheque.ListResult{
		Result: page.Result[cheque.Cheque]{
			Items: items,
			Meta:  page.Meta{Page: 1, TotalPages: 1, Total: len(items), Paginated: true},
		},
	}, nil)

	svc := Services{Cheques: cheque.NewService(repo), Lookups: lookup.NewService(lookups)}
	settings := Settings{PageSize: 10, Debounce: time.Millisecond, Timeout: time.Second}

	var m tea.Model = NewChequesModel(svc, settings)

	return feed(t, m, drain(t, m.Init())...)
}

func TestCheques_SaveInFlightBlocksForms(t *testing.T) {
	m := newChequesPage(t, &cheque.Cheque{ID: 1, Numero: "10", Tipo: cheque.TipoRecibido, Estado: cheque.EstadoEnCartera})

	m, cmd := m.Update(runes("n"))
	require.NotNil(t, cmd)

	cm := m.(ChequesModel)
	require.Equal(t, chequesEdit, cm.state)
	cm.editForm.form.State = huh.StateCompleted

	// Submitting closes the form and starts the save; the command is not run.
	m, save := cm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, save)
	require.True(t, m.(ChequesModel).saving)

	for _, key := range []string{"n", "e", "x"} {
		_, cmd = m.Update(runes(key))
		assert.Nil(t, cmd, key)
		assert.Equal(t, chequesBrowse, m.(ChequesModel).state)
	}

	m = feed(t, m, chequeSavedMsg{notice: "Cheque 11 creado"})
	assert.False(t, m.(ChequesModel).saving)

	m, cmd = m.Update(runes("n"))
	assert.NotNil(t, cmd)
	assert.Equal(t, chequesEdit, m.(ChequesModel).state)
}

func TestCheques_TransitionInFlightIgnoresCard(t *testing.T) {
	c := &cheque.Cheque{ID: 5, Numero: "88", Tipo: cheque.TipoRecibido, Estado: cheque.EstadoEnCartera}
	m := newChequesPage(t, c)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, chequesCard, m.(ChequesModel).state)

	m, request := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, request)
	require.Equal(t, TransitionRequestedMsg{Cheque: c, Action: cheque.ActionDepositar}, request())

	m = feed(t, m, request())

	cm := m.(ChequesModel)
	require.True(t, cm.transitions.Active())
	cm.transitions.form.form.State = huh.StateCompleted

	m, dispatch := cm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, dispatch)

	cm = m.(ChequesModel)
	assert.True(t, cm.transitions.Busy())
	assert.False(t, cm.transitions.Active())
	assert.Equal(t, chequesCard, cm.state)

	// The card still shows the old record; enter does nothing until the
	// call reports back.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	m = feed(t, m, TransitionDoneMsg{Cheque: c, Action: cheque.ActionDepositar, Err: errors.New("409 conflict")})

	cm = m.(ChequesModel)
	assert.False(t, cm.transitions.Busy())
	assert.True(t, cm.feedback.Blocking())

	m, _ = m.Update(runes("q"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
}
