// Package main implements the intentguard CLI.
//
// File index:
//   - main.go: root command, zap logger wiring, global flags.
//   - cmd_dispatch.go: "dispatch" — route one tool call through the
//     mediation pipeline using a minimal demo tool dispatcher.
//   - cmd_trace.go: "trace verify" — replay agent_trace.jsonl and
//     confirm every line parses independently.
//   - cmd_intents.go: "intents list" / "intents show" — read-only views
//     over the policy store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"intentguard/internal/logging"
)

var (
	workspace string
	debugFlag bool

	zapLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "intentguard",
	Short: "Tool-call mediation layer for an agentic coding assistant",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if debugFlag {
			level = zapcore.DebugLevel
			logging.SetDebug(true)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.Encoding = "console"
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		zapLogger = l
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", ".", "workspace root")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(dispatchCmd, traceCmd, intentsCmd)

	if err := rootCmd.Execute(); err != nil {
		if zapLogger != nil {
			zapLogger.Error("command failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
