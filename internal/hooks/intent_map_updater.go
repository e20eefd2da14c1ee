package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"intentguard/internal/pipeline"
	"intentguard/internal/policy"
)

const intentMapRelPath = ".orchestration/intent_map.md"

// IntentMapUpdater regenerates a human-readable Markdown view of intent
// state after every write-set call. It is non-core and best-effort: any
// failure is swallowed (spec §4.G).
func IntentMapUpdater(store *policy.Store) pipeline.PostHookFunc {
	return func(ctx *pipeline.Context) error {
		if !WriteTools[ctx.ToolName] {
			return nil
		}

		intents, err := store.LoadIntents(ctx.Workspace)
		if err != nil {
			return fmt.Errorf("intent map: load intents: %w", err)
		}

		sorted := append([]policy.Intent(nil), intents...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

		var b strings.Builder
		b.WriteString("# Intent Map\n\n")
		b.WriteString("Regenerated automatically; do not edit by hand.\n\n")
		for _, it := range sorted {
			b.WriteString(fmt.Sprintf("## %s — %s\n\n", it.ID, it.Name))
			b.WriteString(fmt.Sprintf("- Status: %s\n", it.Status))
			b.WriteString(fmt.Sprintf("- Owned scope: %s\n\n", strings.Join(it.OwnedScope, ", ")))
		}

		path := filepath.Join(ctx.Workspace, intentMapRelPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("intent map: mkdir: %w", err)
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("intent map: write: %w", err)
		}
		return nil
	}
}
