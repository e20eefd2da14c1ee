package hooks

import "intentguard/internal/pipeline"

// IntentGatekeeper passes read-only/meta tools through unconditionally.
// For tools in the destructive set, it blocks with NO_INTENT_DECLARED
// unless an intent has already been selected on this context. Tools in
// neither set pass through unchanged (spec §4.F).
func IntentGatekeeper() pipeline.PreHookFunc {
	return func(ctx *pipeline.Context) (*pipeline.Context, *pipeline.BlockSignal, error) {
		if ReadOnlyTools[ctx.ToolName] {
			return ctx, nil, nil
		}
		if !DestructiveTools[ctx.ToolName] {
			return ctx, nil, nil
		}
		if !ctx.HasIntentID || ctx.IntentID == "" {
			return nil, pipeline.Block(pipeline.CodeNoIntentDeclared,
				"no intent declared for this session; call select_active_intent(intent_id) before using "+ctx.ToolName), nil
		}
		return ctx, nil, nil
	}
}
