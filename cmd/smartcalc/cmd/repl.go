package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartcalc/go-smartcalc/internal/config"
	"github.com/smartcalc/go-smartcalc/internal/tui/repl"
)

func runREPL() error {
	cliCfg := config.Get()
	model := repl.New(cliCfg.Language, cliCfg)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
