package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/shellmaster/sm/internal/config"
	"github.com/shellmaster/sm/internal/knowledge"
	"github.com/shellmaster/sm/internal/llmclient"
	"github.com/shellmaster/sm/internal/pipeline"
	"github.com/shellmaster/sm/internal/state"
)

// interactivePassthrough lists command substrings that require inherited
// stdio rather than captured output, because they either read from the
// terminal directly or take over the screen
// (original_source/src/shellmaster/client.py: is_interactive).
var interactivePassthrough = []string{
	"vim", "nano", "sudo", "ssh", "top", "htop", "less", "more",
}

func runAsk(ctx context.Context, query string) error {
	cfg := config.Load()
	if cfg.BaseURL == "" {
		fmt.Println(hintStyle.Render("Tip: run 'sm --config' to set up your LLM first."))
		return nil
	}

	store, err := openKnowledgeStore()
	if err != nil {
		fmt.Println(hintStyle.Render(fmt.Sprintf("Warning: knowledge store unavailable (%v); continuing without examples.", err)))
	}
	if store != nil {
		defer store.Close()
	}

	p := &pipeline.Pipeline{
		LLM:   llmclient.New(cfg.BaseURL, cfg.APIKey, cfg.Model),
		Store: store,
	}

	var result state.State
	withSpinner(ctx, "Scouting system & planning...", func(ctx context.Context) {
		result = p.Run(ctx, query)
	})

	if debugFlag {
		fmt.Println(panel(debugPanelStyle, "Debug Info",
			fmt.Sprintf("Intent: %+v\nComplexity: %s\n\n%s", result.Intent, result.Complexity, result.ScoutInfo)))
	}

	if result.Error != "" {
		fmt.Println(panel(errorPanelStyle, "Error", result.Error))
		return nil
	}

	if result.Command == "" {
		fmt.Println(hintStyle.Render("No command generated. Try rephrasing your request."))
		return nil
	}

	fmt.Println(panel(commandPanelStyle, "Suggested Command", result.Command))

	var execute bool
	err = huh.NewConfirm().
		Title("Execute?").
		Value(&execute).
		Run()
	if err != nil || !execute {
		return nil
	}

	return executeCommand(result.Command)
}

// executeCommand runs cmd either with inherited stdio (for interactive
// commands) or captured, printing stdout/stderr panels afterward
// (original_source/src/shellmaster/client.py, step 8).
func executeCommand(cmdStr string) error {
	isInteractive := false
	for _, kw := range interactivePassthrough {
		if strings.Contains(cmdStr, kw) {
			isInteractive = true
			break
		}
	}

	cmd := exec.Command("/bin/bash", "-lc", cmdStr)

	if isInteractive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		_ = cmd.Run()
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	_ = cmd.Run() // a nonzero exit from the user's chosen command is not a CLI failure

	if out := strings.TrimSpace(stdout.String()); out != "" {
		fmt.Println(panel(outputPanelStyle, "Output", out))
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		fmt.Println(panel(errorPanelStyle, "Error", errOut))
	}
	return nil
}

// openKnowledgeStore opens the local badger-backed knowledge store at
// ~/.config/shellmaster/knowledge, or knowledgeDBDir when overridden.
func openKnowledgeStore() (*knowledge.Store, error) {
	dir := knowledgeDBDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config", "shellmaster", "knowledge")
	}
	return knowledge.Open(knowledge.Options{Dir: dir})
}
