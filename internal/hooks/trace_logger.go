package hooks

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"intentguard/internal/classify"
	"intentguard/internal/hasher"
	"intentguard/internal/ledger"
	"intentguard/internal/pipeline"
	"intentguard/internal/vcs"
)

// TraceLogger is the Trace Logger post-hook. It fires on the write
// subset of the destructive tool set, fingerprinting the post-write
// content, classifying the mutation against the pre-write snapshot
// captured by LockGuard, and appending one Trace Entry to the
// workspace's JSONL ledger (spec §4.G).
func TraceLogger(probe *vcs.Probe, writer *ledger.Writer) pipeline.PostHookFunc {
	return func(ctx *pipeline.Context) error {
		if !WriteTools[ctx.ToolName] {
			return nil
		}

		target, ok := ExtractPath(ctx)
		if !ok {
			return nil
		}

		abs := target
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(ctx.Workspace, target)
		}

		// A deleted file logs with empty content, per spec.
		newContent, err := os.ReadFile(abs)
		if err != nil {
			newContent = nil
		}

		fp := hasher.ComputeFingerprint(abs, newContent)

		var classification classify.Classification
		if ctx.HasOldContent {
			classification = classify.Classify(abs, ctx.OldContentSnapshot, newContent)
		} else {
			classification = classify.Classification{
				MutationClass: classify.ClassUnknown,
				Reason:        "no old content captured",
			}
		}

		// Post-hooks run sequentially over one shared context; recording
		// the classification here lets the Lesson Recorder observe it
		// without recomputing it.
		ctx.MutationClass = classification.MutationClass
		ctx.HasMutationClass = true

		relPath := probe.ToRelativePath(ctx.Workspace, abs)

		var revisionID *string
		if rev := probe.FileRevisionAtHead(ctx.Workspace, relPath); rev != "" {
			ctx.VCSRevision = rev
			ctx.HasVCSRevision = true
			revisionID = &rev
		}

		entry := ledger.TraceEntry{
			ID:                   uuid.NewString(),
			Timestamp:            time.Now().UTC(),
			VCS:                  ledger.VCSInfo{RevisionID: revisionID},
			MutationClass:        string(classification.MutationClass),
			ClassificationReason: classification.Reason,
			Files: []ledger.File{
				{
					RelativePath: relPath,
					Conversations: []ledger.Conversation{
						{
							SessionID:   ctx.SessionID,
							Contributor: contributorFrom(ctx),
							Ranges: []ledger.Range{
								{
									StartLine:    1,
									EndLine:      lineCount(newContent),
									ContentHash:  fp.Hash,
									HashMethod:   fp.Method,
									ASTNodeCount: fp.NodeCount,
								},
							},
							Related: relatedFrom(ctx),
						},
					},
				},
			},
		}

		return writer.Append(ctx.Workspace, entry)
	}
}

func contributorFrom(ctx *pipeline.Context) ledger.Contributor {
	model, _ := ctx.StringParam("model_identifier")
	return ledger.Contributor{
		EntityType:      "AI",
		ModelIdentifier: model,
	}
}

func relatedFrom(ctx *pipeline.Context) []ledger.Related {
	if !ctx.HasIntentID || ctx.IntentID == "" {
		return nil
	}
	return []ledger.Related{{Type: "intent", Value: ctx.IntentID}}
}

func lineCount(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 1
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	return n
}
