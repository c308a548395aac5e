package main

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// spinnerModel drives a bubbletea program that shows a spinner with a
// status label while work runs in the background on another goroutine,
// the same tea.Program/Init/Update/View shape the pack's gert-tui uses
// (pkg/tui/app.go) scaled down to a single-purpose busy indicator.
type spinnerModel struct {
	sp   spinner.Model
	text string
	done chan struct{}
}

func newSpinnerModel(text string, done chan struct{}) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return spinnerModel{sp: s, text: text, done: done}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, waitDone(m.done))
}

type doneMsg struct{}

func waitDone(done chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return doneMsg{}
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case doneMsg:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.sp, cmd = m.sp.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.sp.View() + " " + m.text + "\n"
}

// withSpinner runs work in the background, showing a terminal spinner
// labeled text while it completes, if stdout is an interactive TTY
// (mattn/go-isatty); otherwise it just runs work synchronously with no
// animation, since a spinner writing escape codes into a pipe or log
// file is noise, not feedback.
func withSpinner(ctx context.Context, text string, work func(context.Context)) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		work(ctx)
		return
	}

	done := make(chan struct{})
	go func() {
		work(ctx)
		close(done)
	}()

	p := tea.NewProgram(newSpinnerModel(text, done))
	_, _ = p.Run()
}
