// Package pipeline implements the hook pipeline engine: ordered
// pre-hook and post-hook registries with block-signal short-circuiting
// and fail-safe error containment (spec §4.E).
package pipeline

import "intentguard/internal/classify"

// Context is the per-call tool context passed through the pipeline.
// Pre-hooks must not mutate a Context they receive — each returns a new
// or cloned value via Clone — so that a block signal never leaves a
// partially-mutated context visible to the caller.
type Context struct {
	ToolName    string
	Params      map[string]any
	Workspace   string
	SessionID   string
	IntentID    string
	HasIntentID bool

	MutationClass      classify.Class
	HasMutationClass   bool
	OldContentSnapshot []byte
	HasOldContent      bool

	InjectedResult    string
	HasInjectedResult bool

	VCSRevision    string
	HasVCSRevision bool
}

// NewContext builds the initial context for a tool call, per the
// Dispatch Façade's first step.
func NewContext(toolName string, params map[string]any, workspace, sessionID string) *Context {
	return &Context{
		ToolName:  toolName,
		Params:    cloneParams(params),
		Workspace: workspace,
		SessionID: sessionID,
	}
}

// Clone returns a deep-enough copy of ctx for a hook to enrich without
// mutating the caller's value.
func (c *Context) Clone() *Context {
	clone := *c
	clone.Params = cloneParams(c.Params)
	return &clone
}

func cloneParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// WithIntentID returns a clone of ctx with IntentID set.
func (c *Context) WithIntentID(id string) *Context {
	clone := c.Clone()
	clone.IntentID = id
	clone.HasIntentID = true
	return clone
}

// WithInjectedResult returns a clone of ctx with InjectedResult set.
func (c *Context) WithInjectedResult(result string) *Context {
	clone := c.Clone()
	clone.InjectedResult = result
	clone.HasInjectedResult = true
	return clone
}

// WithOldContentSnapshot returns a clone of ctx with OldContentSnapshot set.
func (c *Context) WithOldContentSnapshot(content []byte) *Context {
	clone := c.Clone()
	clone.OldContentSnapshot = content
	clone.HasOldContent = true
	return clone
}

// WithMutationClass returns a clone of ctx with MutationClass set.
func (c *Context) WithMutationClass(class classify.Class) *Context {
	clone := c.Clone()
	clone.MutationClass = class
	clone.HasMutationClass = true
	return clone
}

// WithVCSRevision returns a clone of ctx with VCSRevision set.
func (c *Context) WithVCSRevision(revision string) *Context {
	clone := c.Clone()
	clone.VCSRevision = revision
	clone.HasVCSRevision = true
	return clone
}

// StringParam extracts a string parameter, reporting whether it was
// present and actually a string.
func (c *Context) StringParam(name string) (string, bool) {
	v, ok := c.Params[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
