// Package dispatch implements the Dispatch Façade: the single entry
// point a host uses to route a tool call through the mediation pipeline
// (spec §4.H).
package dispatch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"intentguard/internal/hasher"
	"intentguard/internal/hooks"
	"intentguard/internal/ledger"
	"intentguard/internal/pipeline"
	"intentguard/internal/policy"
	"intentguard/internal/vcs"
)

// ToolDispatcher is the host-supplied, out-of-scope collaborator that
// actually executes a tool once the mediation layer has approved the
// call. It is the system's boundary with the real tool implementations
// (file I/O, shell execution, diff application, …), none of which are
// part of this specification.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, toolName string, params map[string]any) (string, error)
}

// ToolDispatcherFunc adapts a plain function to ToolDispatcher.
type ToolDispatcherFunc func(ctx context.Context, toolName string, params map[string]any) (string, error)

func (f ToolDispatcherFunc) Dispatch(ctx context.Context, toolName string, params map[string]any) (string, error) {
	return f(ctx, toolName, params)
}

// Result is the value dispatch() returns to the host, per spec §4.H.
type Result struct {
	Content     string
	Blocked     bool
	BlockReason string
	BlockCode   pipeline.BlockCode

	// Err is set when the host's ToolDispatcher itself failed (the call
	// passed every pre-hook and actually ran). It is distinct from
	// Blocked, which means the mediation layer stopped the call before
	// the real tool ran at all.
	Err error
}

// Facade is the single entry point used by the host. It owns one
// Engine instance, wired once per Facade (spec §9, "a single public
// registration entry point prevents double-registration").
type Facade struct {
	engine  *pipeline.Engine
	store   *policy.Store
	probe   *vcs.Probe
	writer  *ledger.Writer
	tools   ToolDispatcher
	session string

	registerOnce sync.Once
}

// NewFacade constructs a Facade with the default hook wiring: Context
// Injector, Intent Gatekeeper, Scope Enforcer, Lock Guard as pre-hooks
// (in that order); Trace Logger, Intent-Map Updater, Lesson Recorder as
// post-hooks (in that order). sessionID is the session identifier
// carried on every context; an empty sessionID is replaced here by a
// fresh UUID.
func NewFacade(tools ToolDispatcher, probeTimeoutOverride *vcs.Probe, ledgerRelPath, sessionID string) *Facade {
	f := &Facade{
		engine:  pipeline.NewEngine(),
		store:   policy.NewStore(),
		probe:   probeTimeoutOverride,
		writer:  ledger.NewWriter(ledgerRelPath),
		tools:   tools,
		session: sessionID,
	}
	if f.probe == nil {
		f.probe = vcs.NewProbe()
	}
	if f.session == "" {
		f.session = uuid.NewString()
	}
	f.register()
	return f
}

// register wires the default hook chain exactly once per Facade,
// mirroring spec §9's single registration entry point.
func (f *Facade) register() {
	f.registerOnce.Do(func() {
		f.engine.RegisterPre("context_injector", hooks.ContextInjector(f.store))
		f.engine.RegisterPre("intent_gatekeeper", hooks.IntentGatekeeper())
		f.engine.RegisterPre("scope_enforcer", hooks.ScopeEnforcer(f.store))
		f.engine.RegisterPre("lock_guard", hooks.LockGuard())

		f.engine.RegisterPost("trace_logger", hooks.TraceLogger(f.probe, f.writer))
		f.engine.RegisterPost("intent_map_updater", hooks.IntentMapUpdater(f.store))
		f.engine.RegisterPost("lesson_recorder", hooks.LessonRecorder())
	})
}

// Dispatch routes one tool call through the pipeline, per spec §4.H. The
// host passes sessionIntent when it already knows which intent this
// session is working under (e.g. carried over from a prior dispatch); an
// empty string means no intent is yet declared for this call.
func (f *Facade) Dispatch(ctx context.Context, toolName string, params map[string]any, workspace, sessionIntent string) Result {
	toolCtx := pipeline.NewContext(toolName, params, workspace, f.session)
	if sessionIntent != "" {
		toolCtx = toolCtx.WithIntentID(sessionIntent)
	}

	enriched, block := f.engine.RunPre(toolCtx)
	if block != nil {
		return Result{
			Content:     errorPayload(block.Reason, block.Code),
			Blocked:     true,
			BlockReason: block.Reason,
			BlockCode:   block.Code,
		}
	}

	if enriched.HasInjectedResult {
		f.engine.RunPost(enriched)
		return Result{Content: toolResultPayload(enriched.InjectedResult)}
	}

	result, err := f.tools.Dispatch(ctx, toolName, enriched.Params)
	f.engine.RunPost(enriched)
	if err != nil {
		return Result{Content: toolErrorPayload(err.Error()), Err: err}
	}
	return Result{Content: toolResultPayload(result)}
}

// RawFingerprint exposes the Structural Hasher's raw hash for hosts
// that want to precompute a read_hash before calling Dispatch (e.g. a
// "read then later write" flow), avoiding a second file read.
func RawFingerprint(content []byte) string {
	return hasher.RawHash(content)
}
