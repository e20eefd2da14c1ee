// Package hooks implements the concrete pre-hooks and post-hooks of the
// mediation pipeline: Context Injector, Intent Gatekeeper, Scope
// Enforcer, and Optimistic Lock Guard as pre-hooks; Trace Logger,
// Intent-Map Updater, and Lesson Recorder as post-hooks (spec §4.F,
// §4.G).
package hooks

import "intentguard/internal/pipeline"

// ReadOnlyTools is the read-only/meta tool allowlist of spec §6: these
// pass through the Gatekeeper unconditionally.
var ReadOnlyTools = toSet(
	"read_file", "list_files", "list_directory", "search_files",
	"get_file_info", "codebase_search", "read_command_output",
	"select_active_intent", "attempt_completion", "ask_followup_question",
	"switch_mode", "use_mcp_tool", "access_mcp_resource",
	"run_slash_command", "skill", "update_todo_list", "new_task",
)

// DestructiveTools is the authorization-required set of spec §6.
var DestructiveTools = toSet(
	"write_file", "write_to_file", "create_file", "apply_diff",
	"apply_patch", "edit", "search_and_replace", "search_replace",
	"edit_file", "insert_code_block", "replace_in_file", "delete_file",
	"execute_command", "run_terminal_command", "generate_image",
)

// nonWriteDestructive are the destructive-set tools excluded from the
// write subset used by the Lock Guard and Trace Logger.
var nonWriteDestructive = toSet("execute_command", "run_terminal_command", "generate_image")

// WriteTools is the destructive "write subset" of spec §6: the Lock
// Guard and Trace Logger only apply to these.
var WriteTools = subtract(DestructiveTools, nonWriteDestructive)

// PathParamNames are tried in order to extract a target path parameter
// from a tool call, per spec §6.
var PathParamNames = []string{"path", "file_path", "target_file", "destination"}

func toSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func subtract(base, remove map[string]bool) map[string]bool {
	out := make(map[string]bool, len(base))
	for k := range base {
		if !remove[k] {
			out[k] = true
		}
	}
	return out
}

// ExtractPath tries each of PathParamNames in order against ctx.Params,
// returning the first non-empty string value found.
func ExtractPath(ctx *pipeline.Context) (string, bool) {
	for _, name := range PathParamNames {
		if v, ok := ctx.StringParam(name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
