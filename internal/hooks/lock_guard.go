package hooks

import (
	"fmt"
	"os"
	"path/filepath"

	"intentguard/internal/hasher"
	"intentguard/internal/pipeline"
)

// LockGuard is the optimistic concurrency pre-hook. It applies only to
// the write subset of the destructive tool set. It captures the
// current on-disk content as old_content_snapshot (consumed later by
// the Classifier) and, if the caller declared a read_hash, blocks with
// STALE_FILE on mismatch against the current raw fingerprint (spec
// §4.F).
func LockGuard() pipeline.PreHookFunc {
	return func(ctx *pipeline.Context) (*pipeline.Context, *pipeline.BlockSignal, error) {
		if !WriteTools[ctx.ToolName] {
			return ctx, nil, nil
		}

		target, ok := ExtractPath(ctx)
		if !ok {
			return ctx, nil, nil
		}

		abs := target
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(ctx.Workspace, target)
		}

		content, err := os.ReadFile(abs)
		if err != nil {
			// Either the file doesn't exist yet (new-file case) or it is
			// otherwise unreadable; both pass through per spec.
			return ctx, nil, nil
		}

		currentHash := hasher.RawHash(content)
		enriched := ctx.WithOldContentSnapshot(content)

		readHash, ok := ctx.StringParam("read_hash")
		if !ok {
			return enriched, nil, nil
		}

		if readHash != currentHash {
			return nil, pipeline.Block(pipeline.CodeStaleFile, fmt.Sprintf(
				"stale read: declared read_hash %q does not match current fingerprint %q; "+
					"re-read %q and retry with the current hash",
				readHash, currentHash, target,
			)), nil
		}

		return enriched, nil, nil
	}
}
