package pipeline

import (
	"fmt"

	"intentguard/internal/logging"
)

// PreHookFunc is a pre-hook: given the current context, it returns
// either an enriched context to carry forward, or a block signal that
// aborts the chain. An unexpected error (third return) is converted by
// the engine into a GENERIC_BLOCK — a pre-hook's own bugs must never
// open a hole (spec §4.E).
type PreHookFunc func(ctx *Context) (*Context, *BlockSignal, error)

// PostHookFunc is a post-hook: best-effort observability over the
// final context. Its error is logged and swallowed; it never affects
// control flow or the tool result.
type PostHookFunc func(ctx *Context) error

type namedPreHook struct {
	name string
	fn   PreHookFunc
}

type namedPostHook struct {
	name string
	fn   PostHookFunc
}

// Engine holds the ordered pre-hook and post-hook registries. It is a
// plain value; the Dispatch Façade holds one instance (spec §9, "Hook
// registry without global state").
type Engine struct {
	pre  []namedPreHook
	post []namedPostHook
}

// NewEngine constructs an empty Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// RegisterPre appends a pre-hook to the end of the pre-chain. Hooks run
// in registration order.
func (e *Engine) RegisterPre(name string, fn PreHookFunc) {
	e.pre = append(e.pre, namedPreHook{name: name, fn: fn})
}

// RegisterPost appends a post-hook to the end of the post-chain. Hooks
// run in registration order.
func (e *Engine) RegisterPost(name string, fn PostHookFunc) {
	e.post = append(e.post, namedPostHook{name: name, fn: fn})
}

// RunPre runs the pre-chain sequentially. The first block signal (or
// internal hook error, converted to GENERIC_BLOCK) aborts the chain and
// is returned; remaining pre-hooks are not invoked.
func (e *Engine) RunPre(ctx *Context) (*Context, *BlockSignal) {
	current := ctx
	for _, h := range e.pre {
		next, block, err := e.invokePre(h, current)
		if block != nil {
			return current, block
		}
		if err != nil {
			return current, Block(CodeGenericBlock, fmt.Sprintf("pre-hook %q failed: %v", h.name, err))
		}
		current = next
	}
	return current, nil
}

// invokePre calls a single pre-hook, recovering from a panic and
// reporting it the same way as a returned error: fail-safe, never a
// hole.
func (e *Engine) invokePre(h namedPreHook, ctx *Context) (next *Context, block *BlockSignal, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = nil
			block = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.fn(ctx)
}

// RunPost runs every post-hook, always, even if one fails. Failures are
// logged and swallowed (spec §4.E, §7).
func (e *Engine) RunPost(ctx *Context) {
	for _, h := range e.post {
		e.invokePost(h, ctx)
	}
}

func (e *Engine) invokePost(h namedPostHook, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warnf(logging.CategoryPipeline, "post-hook %q panicked: %v", h.name, r)
		}
	}()
	if err := h.fn(ctx); err != nil {
		logging.Warnf(logging.CategoryPipeline, "post-hook %q failed: %v", h.name, err)
	}
}
