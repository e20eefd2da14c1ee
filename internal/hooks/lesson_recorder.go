package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"intentguard/internal/classify"
	"intentguard/internal/pipeline"
)

const claudeMDRelPath = "CLAUDE.md"

const claudeMDHeader = "# CLAUDE.md\n\nNotes accumulated by intentguard when an agent's change evolves the exported API surface of a file.\n"

// LessonRecorder appends a timestamped Markdown section to the
// workspace's CLAUDE.md whenever a mutation is classified as
// INTENT_EVOLUTION. It seeds the file with a header on first write.
// Best-effort: errors are swallowed (spec §4.G).
func LessonRecorder() pipeline.PostHookFunc {
	return func(ctx *pipeline.Context) error {
		if !ctx.HasMutationClass || ctx.MutationClass != classify.ClassIntentEvoluted {
			return nil
		}
		if !ctx.HasIntentID || ctx.IntentID == "" {
			return nil
		}

		target, _ := ExtractPath(ctx)

		path := filepath.Join(ctx.Workspace, claudeMDRelPath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(claudeMDHeader), 0o644); err != nil {
				return fmt.Errorf("lesson recorder: seed %s: %w", path, err)
			}
		}

		section := fmt.Sprintf(
			"\n## %s — intent %s\n\nFile `%s` changed its exported API surface.\n",
			time.Now().UTC().Format(time.RFC3339), ctx.IntentID, target,
		)

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("lesson recorder: open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := f.WriteString(section); err != nil {
			return fmt.Errorf("lesson recorder: write %s: %w", path, err)
		}
		return nil
	}
}
