package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/shelf/internal/autosave"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/theme"
	"github.com/nikbrunner/shelf/internal/tui"
)

// runTUI runs the full interactive TUI.
func runTUI(ctx context.Context) error {
	e, err := openEnv(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	th, err := theme.Load(ctx, e.backend)
	if err != nil {
		e.log.Warn("using default theme", logger.Error(err))
	}

	saver := autosave.New(e.store, e.cfg.Autosave.Interval, e.log)
	saver.Start(ctx)

	app := tui.NewApp(tui.AppParams{
		Store:     e.store,
		Settings:  e.backend,
		Theme:     th,
		Autosaver: saver,
		Resolver:  e.res,
		Logger:    e.log,
		Context:   ctx,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, runErr := p.Run()
	saver.Stop()

	// Final save; an interrupted context must not block it
	if err := e.store.Persist(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("run app: %w", runErr)
	}
	return nil
}
