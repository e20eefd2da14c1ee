package ledger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleEntry(id string) TraceEntry {
	return TraceEntry{
		ID:                   id,
		Timestamp:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MutationClass:        "AST_REFACTOR",
		ClassificationReason: "Exported API surface unchanged — internal refactor only",
		Files: []File{
			{RelativePath: "src/api/routes.ts"},
		},
	}
}

// TestAppend_OrderedAndEachLineIndependentlyParseable exercises invariant
// 7: the ledger is append-only and every line parses on its own.
func TestAppend_OrderedAndEachLineIndependentlyParseable(t *testing.T) {
	ws := t.TempDir()
	w := NewWriter("")

	for i := 0; i < 5; i++ {
		require.NoError(t, w.Append(ws, sampleEntry(string(rune('a'+i)))))
	}

	path := filepath.Join(ws, DefaultRelPath)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry TraceEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		ids = append(ids, entry.ID)
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
}

func TestAppend_CreatesParentDirectory(t *testing.T) {
	ws := t.TempDir()
	w := NewWriter("custom/dir/trace.jsonl")

	require.NoError(t, w.Append(ws, sampleEntry("only")))

	_, err := os.Stat(filepath.Join(ws, "custom", "dir", "trace.jsonl"))
	require.NoError(t, err)
}

func TestAppend_ConcurrentWritesAllSucceed(t *testing.T) {
	ws := t.TempDir()
	w := NewWriter("")

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		i := i
		go func() {
			done <- w.Append(ws, sampleEntry(string(rune('a'+i))))
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	path := filepath.Join(ws, DefaultRelPath)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry TraceEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines++
	}
	require.Equal(t, 10, lines)
}
