package view

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/chequera"
	"github.com/MrJamesThe3rd/tesoreria/internal/flujo"
)

type FeedbackKind int

const (
	FeedbackSuccess FeedbackKind = iota
	FeedbackWarning
	FeedbackError
)

const feedbackTTL = 3 * time.Second

// genericFailure is the alert shown for every remote failure; the error
// text goes underneath as detail.
const genericFailure = "Acción no disponible o incompleta"

type feedbackExpiredMsg struct {
	seq int
}

// Feedback is the toast-modal shown over every page. Success toasts expire
// on their own; warnings and errors hold the keyboard until dismissed.
type Feedback struct {
	kind    FeedbackKind
	title   string
	detail  string
	visible bool
	seq     int
}

func (f Feedback) Show(kind FeedbackKind, title, detail string) (Feedback, tea.Cmd) {
	f.kind, f.title, f.detail = kind, title, detail
	f.visible = true
	f.seq++

	if kind != FeedbackSuccess {
		return f, nil
	}

	seq := f.seq

	return f, tea.Tick(feedbackTTL, func(time.Time) tea.Msg {
		return feedbackExpiredMsg{seq: seq}
	})
}

func (f Feedback) Success(title string) (Feedback, tea.Cmd) {
	return f.Show(FeedbackSuccess, title, "")
}

// Failure reports err: local validation errors as warnings with their own
// text, anything else as the generic blocking alert.
func (f Feedback) Failure(err error) (Feedback, tea.Cmd) {
	if isValidation(err) {
		return f.Show(FeedbackWarning, "Revisá los datos", err.Error())
	}

	return f.Show(FeedbackError, genericFailure, err.Error())
}

func isValidation(err error) bool {
	return errors.Is(err, cheque.ErrInvalid) ||
		errors.Is(err, chequera.ErrInvalid) ||
		errors.Is(err, flujo.ErrInvalid)
}

func (f Feedback) Visible() bool { return f.visible }

// Blocking reports whether the next key press belongs to the alert.
func (f Feedback) Blocking() bool {
	return f.visible && f.kind != FeedbackSuccess
}

func (f Feedback) Dismiss() Feedback {
	f.visible = false
	return f
}

func (f Feedback) Update(msg tea.Msg) (Feedback, tea.Cmd) {
	if m, ok := msg.(feedbackExpiredMsg); ok && m.seq == f.seq && f.kind == FeedbackSuccess {
		f.visible = false
	}

	return f, nil
}

func (f Feedback) View() string {
	if !f.visible {
		return ""
	}

	color := successColor

	switch f.kind {
	case FeedbackWarning:
		color = warningColor
	case FeedbackError:
		color = errorColor
	}

	body := lipgloss.NewStyle().Bold(true).Foreground(color).Render(f.title)
	if f.detail != "" {
		body += "\n" + faintStyle.Render(f.detail)
	}

	if f.Blocking() {
		body += "\n\n" + faintStyle.Render("(cualquier tecla para cerrar)")
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(body)
}
