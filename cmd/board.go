package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/maedana/torudo/internal"
)

// BoardCommand runs the interactive project board. It owns the full setup:
// first-run prompts, the initial load (which injects missing ids), the file
// watcher and the editor client.
func BoardCommand(dir, socket string, maxCardHeight int, logger *log.Logger) error {
	file := internal.NewTaskFile(dir)
	if err := internal.EnsureSetup(file, os.Stdin, os.Stdout); err != nil {
		return err
	}

	tasks, err := file.Load()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	logger.Debug("loaded tasks", "count", len(tasks))

	watcher, err := internal.NewWatcher(dir, file.TodoPath())
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer watcher.Close()

	editor := internal.NewEditorClient(socket, file.DetailDir())
	board := internal.NewBoard(file, tasks, editor, logger, watcher.Changes(), maxCardHeight)

	p := tea.NewProgram(board, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
