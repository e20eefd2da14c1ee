package hooks

import (
	"fmt"
	"sort"
	"strings"

	"intentguard/internal/pipeline"
	"intentguard/internal/policy"
)

// ContextInjector is the handshake tool pre-hook. It triggers only for
// select_active_intent; the real tool is never invoked — its result is
// always the injected intent_context document or a block (spec §4.F).
func ContextInjector(store *policy.Store) pipeline.PreHookFunc {
	return func(ctx *pipeline.Context) (*pipeline.Context, *pipeline.BlockSignal, error) {
		if ctx.ToolName != "select_active_intent" {
			return ctx, nil, nil
		}

		id, ok := ctx.StringParam("intent_id")
		if !ok || id == "" {
			return nil, pipeline.Block(pipeline.CodeGenericBlock,
				"select_active_intent requires a non-empty string intent_id"), nil
		}

		intent, err := store.FindIntent(ctx.Workspace, id)
		if err != nil {
			return nil, pipeline.Block(pipeline.CodeGenericBlock,
				fmt.Sprintf("failed to read intents: %v", err)), nil
		}
		if intent == nil {
			available, err := store.LoadIntents(ctx.Workspace)
			if err != nil {
				return nil, pipeline.Block(pipeline.CodeGenericBlock,
					fmt.Sprintf("failed to read intents: %v", err)), nil
			}
			return nil, pipeline.Block(pipeline.CodeUnknownIntent,
				fmt.Sprintf("no intent %q found; available: %s", id, listIDs(available))), nil
		}

		switch intent.Status {
		case policy.StatusComplete:
			return nil, pipeline.Block(pipeline.CodeCompleteIntent,
				fmt.Sprintf("intent %q is already COMPLETE", id)), nil
		case policy.StatusBlocked:
			return nil, pipeline.Block(pipeline.CodeBlockedIntent,
				fmt.Sprintf("intent %q is BLOCKED: %s", id, intent.BlockedReason)), nil
		}

		enriched := ctx.WithIntentID(id)
		enriched = enriched.WithInjectedResult(buildIntentContext(intent))
		return enriched, nil, nil
	}
}

func listIDs(intents []policy.Intent) string {
	ids := make([]string, len(intents))
	for i, it := range intents {
		ids[i] = it.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
