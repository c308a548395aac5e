package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	debugFlag      bool
	configFlag     bool
	knowledgeDBDir string
)

var rootCmd = &cobra.Command{
	Use:   "sm [query...]",
	Short: "ShellMaster: AI-powered Linux assistant",
	Long: `ShellMaster turns a natural-language request into a single suggested
shell command, using a short local reconnaissance pass and a local
example knowledge base to ground its suggestion.`,
	Args:                  cobra.ArbitraryArgs,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFlag {
			return runConfigWizard()
		}
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return cmd.Help()
		}
		if debugFlag {
			shutdown, err := enableDebugTracing()
			if err != nil {
				return err
			}
			defer shutdown(cmd.Context())
		}
		return runAsk(cmd.Context(), query)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "show scout logs and intent debug info")
	rootCmd.Flags().BoolVar(&configFlag, "config", false, "configure the LLM endpoint interactively")
	rootCmd.PersistentFlags().StringVar(&knowledgeDBDir, "knowledge-dir", "", "override the local knowledge store directory")
}
