package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"intentguard/internal/dispatch"
)

var (
	dispatchParams []string
	dispatchIntent string
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <tool_name>",
	Short: "Route one tool call through the mediation pipeline",
	Long: `Builds a tool context for <tool_name> and runs it through the full
pre-hook/post-hook chain, printing the resulting payload.

A session's selected intent is not persisted between invocations of this
CLI (each call is a fresh process), so pass --intent on every destructive
call once a session has selected one via select_active_intent.

Example:
  intentguard dispatch select_active_intent --param intent_id=INT-001
  intentguard dispatch write_to_file --intent INT-001 --param path=src/api/routes.ts --param content="..."`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolName := args[0]
		params, err := parseParams(dispatchParams)
		if err != nil {
			return err
		}

		facade := dispatch.NewFacade(demoDispatcher{}, nil, "", "")
		result := facade.Dispatch(context.Background(), toolName, params, workspace, dispatchIntent)

		fmt.Println(result.Content)
		if result.Blocked {
			os.Exit(2)
		}
		if result.Err != nil {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	dispatchCmd.Flags().StringArrayVar(&dispatchParams, "param", nil, "key=value tool parameter (repeatable)")
	dispatchCmd.Flags().StringVar(&dispatchIntent, "intent", "", "session's already-selected intent id, if any")
}

func parseParams(raw []string) (map[string]any, error) {
	params := make(map[string]any, len(raw))
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", kv)
		}
		params[parts[0]] = parts[1]
	}
	return params, nil
}

// demoDispatcher is a minimal host-side ToolDispatcher for manual CLI
// testing. It is not part of the specification: the real tool
// implementations are an external collaborator (spec §1). It supports
// just enough of the write/read surface to exercise the pipeline
// end-to-end from the command line.
type demoDispatcher struct{}

func (demoDispatcher) Dispatch(ctx context.Context, toolName string, params map[string]any) (string, error) {
	switch toolName {
	case "write_to_file", "write_file", "create_file":
		path, _ := params["path"].(string)
		content, _ := params["content"].(string)
		if path == "" {
			return "", fmt.Errorf("missing path parameter")
		}
		full := path
		if workspace != "." {
			full = workspace + "/" + path
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return "", err
		}
		return fmt.Sprintf("wrote %d bytes to %s", len(content), path), nil
	case "read_file":
		path, _ := params["path"].(string)
		full := path
		if workspace != "." {
			full = workspace + "/" + path
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("demo dispatcher does not implement tool %q", toolName)
	}
}
