package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"intentguard/internal/ledger"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Inspect the workspace's append-only trace ledger",
}

var traceVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Replay agent_trace.jsonl, confirming every line parses independently",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(workspace, ledger.DefaultRelPath)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("no trace ledger found; 0 entries")
				return nil
			}
			return err
		}
		defer f.Close()

		counts := map[string]int{}
		lineNo := 0
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			lineNo++
			var entry ledger.TraceEntry
			if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
				return fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
			}
			counts[entry.MutationClass]++
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		fmt.Printf("%d entries verified\n", lineNo)
		for class, n := range counts {
			fmt.Printf("  %s: %d\n", class, n)
		}
		return nil
	},
}

func init() {
	traceCmd.AddCommand(traceVerifyCmd)
}
