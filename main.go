package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/vibra/internal/config"
	"github.com/olivier-w/vibra/internal/ui"
)

func main() {
	params, err := config.Parse("vibra", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(params.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(newStartupModel(params, ui.StartPlayer), tea.WithAltScreen())
	finalModel, err := program.Run()
	if m, ok := finalModel.(ui.Model); ok {
		m.Close()
	}
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sm, ok := finalModel.(startupModel); ok && sm.err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", sm.err)
		os.Exit(1)
	}
}

// setupLogging sends the std logger to path, or discards it while the TUI
// owns the terminal.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "vibra")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { f.Close() }, nil
}
