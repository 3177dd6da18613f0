package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) }

// TUI launches the interactive terminal UI for artist search.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if !isTerminal() {
		return fmt.Errorf("%w: the TUI needs an interactive terminal; use 'artx search' instead", shared.ErrInvalidArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	explorer, err := r.explorer(cmd, models.SourceTUI)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, explorer, shared.OpenBrowser)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
