package pipeline

// BlockCode identifies why a pre-hook short-circuited the chain.
type BlockCode string

const (
	CodeNoIntentDeclared BlockCode = "NO_INTENT_DECLARED"
	CodeScopeViolation   BlockCode = "SCOPE_VIOLATION"
	CodeStaleFile        BlockCode = "STALE_FILE"
	CodeUnknownIntent    BlockCode = "UNKNOWN_INTENT"
	CodeCompleteIntent   BlockCode = "COMPLETE_INTENT"
	CodeBlockedIntent    BlockCode = "BLOCKED_INTENT"
	CodeGenericBlock     BlockCode = "GENERIC_BLOCK"
)

// BlockSignal is the sum-type error branch of a pre-hook's result: a
// reason plus a machine-readable code, surfaced to the agent as the
// tool's result rather than thrown (spec §3, §9).
type BlockSignal struct {
	Reason string
	Code   BlockCode
}

func (b *BlockSignal) Error() string {
	return b.Reason
}

// Block constructs a BlockSignal.
func Block(code BlockCode, reason string) *BlockSignal {
	return &BlockSignal{Reason: reason, Code: code}
}
