package hooks

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"intentguard/internal/classify"
	"intentguard/internal/ledger"
	"intentguard/internal/pipeline"
	"intentguard/internal/policy"
	"intentguard/internal/vcs"
)

func TestTraceLogger_AppendsOneEntryPerWrite(t *testing.T) {
	ws := t.TempDir()
	target := filepath.Join(ws, "src", "api", "routes.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("export function add(a, b) { return a + b; }"), 0o644))

	ctx := pipeline.NewContext("write_to_file", map[string]any{"path": "src/api/routes.ts"}, ws, "sess-1").
		WithIntentID("INT-001").
		WithOldContentSnapshot([]byte("export function add(a, b) { return a + b; }"))

	writer := ledger.NewWriter("")
	hook := TraceLogger(vcs.NewProbe(), writer)
	require.NoError(t, hook(ctx))

	path := filepath.Join(ws, ledger.DefaultRelPath)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var entry ledger.TraceEntry
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	require.Equal(t, "AST_REFACTOR", entry.MutationClass)
	require.Len(t, entry.Files, 1)
	require.Equal(t, "src/api/routes.ts", entry.Files[0].RelativePath)
	require.Equal(t, "INT-001", entry.Files[0].Conversations[0].Related[0].Value)

	require.True(t, ctx.HasMutationClass)
	require.Equal(t, classify.ClassASTRefactor, ctx.MutationClass)
}

func TestTraceLogger_NonWriteToolIsNoop(t *testing.T) {
	ws := t.TempDir()
	ctx := pipeline.NewContext("read_file", map[string]any{"path": "a.ts"}, ws, "sess-1")
	hook := TraceLogger(vcs.NewProbe(), ledger.NewWriter(""))
	require.NoError(t, hook(ctx))

	_, err := os.Stat(filepath.Join(ws, ledger.DefaultRelPath))
	require.True(t, os.IsNotExist(err))
}

func TestIntentMapUpdater_RegeneratesFile(t *testing.T) {
	ws := t.TempDir()
	dir := filepath.Join(ws, ".orchestration")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active_intents.yaml"), []byte(oneIntent), 0o644))

	store := policy.NewStore()
	hook := IntentMapUpdater(store)

	ctx := pipeline.NewContext("write_to_file", map[string]any{"path": "src/api/a.ts"}, ws, "sess-1")
	require.NoError(t, hook(ctx))

	data, err := os.ReadFile(filepath.Join(ws, ".orchestration", "intent_map.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "INT-001")
	require.Contains(t, string(data), "IN_PROGRESS")
}

func TestLessonRecorder_FiresOnlyOnIntentEvolution(t *testing.T) {
	ws := t.TempDir()
	hook := LessonRecorder()

	noEvolution := pipeline.NewContext("write_to_file", map[string]any{"path": "a.ts"}, ws, "sess-1").
		WithIntentID("INT-001").
		WithMutationClass(classify.ClassASTRefactor)
	require.NoError(t, hook(noEvolution))
	_, err := os.Stat(filepath.Join(ws, "CLAUDE.md"))
	require.True(t, os.IsNotExist(err))

	evolved := pipeline.NewContext("write_to_file", map[string]any{"path": "a.ts"}, ws, "sess-1").
		WithIntentID("INT-001").
		WithMutationClass(classify.ClassIntentEvoluted)
	require.NoError(t, hook(evolved))

	data, err := os.ReadFile(filepath.Join(ws, "CLAUDE.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "INT-001")
}

func TestLessonRecorder_AppendsWithoutOverwritingHeader(t *testing.T) {
	ws := t.TempDir()
	hook := LessonRecorder()

	for i := 0; i < 2; i++ {
		ctx := pipeline.NewContext("write_to_file", map[string]any{"path": "a.ts"}, ws, "sess-1").
			WithIntentID("INT-001").
			WithMutationClass(classify.ClassIntentEvoluted)
		require.NoError(t, hook(ctx))
	}

	data, err := os.ReadFile(filepath.Join(ws, "CLAUDE.md"))
	require.NoError(t, err)
	require.Equal(t, 1, countOccurrences(string(data), "# CLAUDE.md"))
	require.Equal(t, 2, countOccurrences(string(data), "intent INT-001"))
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}
