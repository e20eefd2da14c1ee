package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"intentguard/internal/policy"
)

var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "Read-only views over the intent policy store",
}

var intentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all declared intents",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := policy.NewStore()
		intents, err := store.LoadIntents(workspace)
		if err != nil {
			return err
		}
		if len(intents) == 0 {
			fmt.Println("no intents declared")
			return nil
		}
		for _, it := range intents {
			fmt.Printf("%-12s %-8s %s\n", it.ID, it.Status, it.Name)
		}
		return nil
	},
}

var intentsShowCmd = &cobra.Command{
	Use:   "show <intent_id>",
	Short: "Show one intent's full detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := policy.NewStore()
		intent, err := store.FindIntent(workspace, args[0])
		if err != nil {
			return err
		}
		if intent == nil {
			return fmt.Errorf("no such intent: %s", args[0])
		}

		fmt.Printf("id:       %s\n", intent.ID)
		fmt.Printf("name:     %s\n", intent.Name)
		fmt.Printf("status:   %s\n", intent.Status)
		fmt.Printf("scope:    %s\n", strings.Join(intent.OwnedScope, ", "))
		fmt.Printf("depends:  %s\n", strings.Join(intent.DependsOn, ", "))
		if intent.BlockedReason != "" {
			fmt.Printf("blocked:  %s\n", intent.BlockedReason)
		}
		return nil
	},
}

func init() {
	intentsCmd.AddCommand(intentsListCmd, intentsShowCmd)
}
