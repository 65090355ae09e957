package monitor

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ptop/internal/errors"
)

// Run drives the dashboard in the alternate screen until the user quits or
// the model's context is cancelled. Signal handling is left to the caller's
// context so that SIGTERM ends the loop the same way q does.
func Run(m Model, in io.Reader, out io.Writer) (Model, error) {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		return m, errors.WrapWithCode(err, errors.ErrRender,
			"The dashboard stopped unexpectedly",
			"Check the log file for the last skipped tick.")
	}

	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
