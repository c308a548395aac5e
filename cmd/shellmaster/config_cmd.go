package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/shellmaster/sm/internal/config"
)

// runConfigWizard drives an interactive huh.Form to edit the persisted
// LLM endpoint settings (original_source/src/shellmaster/client.py's
// `--config` mode, reimplemented as a form instead of three sequential
// click.prompt calls).
func runConfigWizard() error {
	cfg := config.Load()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base URL").
				Description("OpenAI-compatible chat completions endpoint").
				Value(&cfg.BaseURL),
			huh.NewInput().
				Title("Model Name").
				Value(&cfg.Model),
			huh.NewInput().
				Title("API Key").
				Description("use EMPTY for unauthenticated local servers").
				Value(&cfg.APIKey),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: invalid settings: %w", err)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("config: saving: %w", err)
	}
	fmt.Println(hintStyle.Render("Saved!"))
	return nil
}
