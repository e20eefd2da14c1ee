package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeIntentsFile(t *testing.T, ws string, body string) {
	t.Helper()
	dir := filepath.Join(ws, ".orchestration")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active_intents.yaml"), []byte(body), 0o644))
}

const sampleIntents = `active_intents:
  - id: INT-001
    name: Build the API
    status: IN_PROGRESS
    owned_scope:
      - "src/api/**"
    constraints:
      - "use camelCase"
    acceptance_criteria:
      - "tests pass"
    created_at: 2024-01-01T00:00:00Z
    updated_at: 2024-01-01T00:00:00Z
  - id: INT-002
    name: Done work
    status: COMPLETE
    owned_scope: []
    created_at: 2024-01-01T00:00:00Z
    updated_at: 2024-01-01T00:00:00Z
`

func TestLoadIntents_Missing(t *testing.T) {
	ws := t.TempDir()
	store := NewStore()

	intents, err := store.LoadIntents(ws)
	require.NoError(t, err)
	require.Empty(t, intents)
}

func TestLoadIntents_Malformed(t *testing.T) {
	ws := t.TempDir()
	writeIntentsFile(t, ws, "not: [valid yaml")
	store := NewStore()

	_, err := store.LoadIntents(ws)
	require.ErrorIs(t, err, ErrMalformedIntents)
}

func TestFindIntent(t *testing.T) {
	ws := t.TempDir()
	writeIntentsFile(t, ws, sampleIntents)
	store := NewStore()

	intent, err := store.FindIntent(ws, "INT-001")
	require.NoError(t, err)
	require.NotNil(t, intent)
	require.Equal(t, StatusInProgress, intent.Status)

	missing, err := store.FindIntent(ws, "INT-999")
	require.NoError(t, err)
	require.Nil(t, missing)
}

// TestUpdateIntentStatus_RoundTrip exercises invariant 6: update then
// reload reflects the new status.
func TestUpdateIntentStatus_RoundTrip(t *testing.T) {
	ws := t.TempDir()
	writeIntentsFile(t, ws, sampleIntents)
	store := NewStore()

	require.NoError(t, store.UpdateIntentStatus(ws, "INT-001", StatusComplete))

	intents, err := store.LoadIntents(ws)
	require.NoError(t, err)

	found, err := store.FindIntent(ws, "INT-001")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, StatusComplete, found.Status)
	require.WithinDuration(t, time.Now().UTC(), found.UpdatedAt, time.Minute)
	require.Len(t, intents, 2)
}

func TestUpdateIntentStatus_Unknown(t *testing.T) {
	ws := t.TempDir()
	writeIntentsFile(t, ws, sampleIntents)
	store := NewStore()

	err := store.UpdateIntentStatus(ws, "INT-NOPE", StatusBlocked)
	require.ErrorIs(t, err, ErrUnknownIntent)
}

func TestUpdateIntentStatus_PreservesHeader(t *testing.T) {
	ws := t.TempDir()
	writeIntentsFile(t, ws, sampleIntents)
	store := NewStore()

	require.NoError(t, store.UpdateIntentStatus(ws, "INT-001", StatusBlocked))

	data, err := os.ReadFile(filepath.Join(ws, intentsRelPath))
	require.NoError(t, err)
	require.Contains(t, string(data), "managed by intentguard")
}

// TestIsFileInScope exercises the glob semantics required by spec §4.A:
// "**" matches any number of segments, and a sibling directory does not
// match.
func TestIsFileInScope(t *testing.T) {
	ws := t.TempDir()
	store := NewStore()
	intent := &Intent{ID: "INT-001", OwnedScope: []string{"src/api/**"}}

	require.True(t, store.IsFileInScope(ws, intent, filepath.Join(ws, "src/api/routes.ts")))
	require.True(t, store.IsFileInScope(ws, intent, filepath.Join(ws, "src/api/v1/users.ts")))
	require.False(t, store.IsFileInScope(ws, intent, filepath.Join(ws, "src/ui/button.tsx")))
}

func TestIsFileIgnored(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, ".intentignore"), []byte(
		"# comment\n\nbuild/**\n*.generated.ts\n"), 0o644))
	store := NewStore()

	require.True(t, store.IsFileIgnored(ws, filepath.Join(ws, "build/out.js")))
	require.True(t, store.IsFileIgnored(ws, filepath.Join(ws, "foo.generated.ts")))
	require.False(t, store.IsFileIgnored(ws, filepath.Join(ws, "src/api/routes.ts")))
}

func TestIsFileIgnored_NoFile(t *testing.T) {
	ws := t.TempDir()
	store := NewStore()
	require.False(t, store.IsFileIgnored(ws, filepath.Join(ws, "anything.ts")))
}
