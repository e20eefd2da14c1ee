package hooks

import (
	"fmt"
	"path/filepath"
	"strings"

	"intentguard/internal/pipeline"
	"intentguard/internal/policy"
)

// ScopeEnforcer authorizes a destructive-set tool's target path against
// the active intent's owned_scope. It is a no-op whenever no intent is
// set, no path can be extracted, the target is ignored, or the intent
// has since vanished — the Gatekeeper already handles the intent-missing
// case (spec §4.F).
func ScopeEnforcer(store *policy.Store) pipeline.PreHookFunc {
	return func(ctx *pipeline.Context) (*pipeline.Context, *pipeline.BlockSignal, error) {
		if ReadOnlyTools[ctx.ToolName] {
			return ctx, nil, nil
		}
		if !DestructiveTools[ctx.ToolName] {
			return ctx, nil, nil
		}
		if !ctx.HasIntentID || ctx.IntentID == "" {
			return ctx, nil, nil
		}

		target, ok := ExtractPath(ctx)
		if !ok {
			// Open Question in SPEC_FULL.md: preserved as silent pass-through.
			return ctx, nil, nil
		}

		abs := target
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(ctx.Workspace, target)
		}

		if store.IsFileIgnored(ctx.Workspace, abs) {
			return ctx, nil, nil
		}

		intent, err := store.FindIntent(ctx.Workspace, ctx.IntentID)
		if err != nil {
			return nil, pipeline.Block(pipeline.CodeGenericBlock,
				fmt.Sprintf("failed to read intents: %v", err)), nil
		}
		if intent == nil {
			return ctx, nil, nil
		}

		if store.IsFileInScope(ctx.Workspace, intent, abs) {
			return ctx, nil, nil
		}

		return nil, pipeline.Block(pipeline.CodeScopeViolation, fmt.Sprintf(
			"%q is outside the authorized scope of intent %q: %s",
			target, intent.ID, strings.Join(intent.OwnedScope, ", "),
		)), nil
	}
}
