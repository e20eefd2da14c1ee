package vcs

import (
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain guards against goroutine leaks from the timeout-bounded
// exec.Command plumbing in Probe.run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestToRelativePath(t *testing.T) {
	p := NewProbe()
	ws := "/workspace/project"

	require.Equal(t, "src/api/routes.ts", p.ToRelativePath(ws, "/workspace/project/src/api/routes.ts"))
}

func TestToRelativePath_OutsideWorkspaceReturnsAbsolute(t *testing.T) {
	p := NewProbe()
	ws := "/workspace/project"

	got := p.ToRelativePath(ws, "/elsewhere/file.ts")
	require.Equal(t, filepath.ToSlash("/elsewhere/file.ts"), got)
}

func TestCurrentRevision_NonGitDirReturnsEmpty(t *testing.T) {
	p := NewProbe()
	ws := t.TempDir()

	require.Equal(t, "", p.CurrentRevision(ws))
}

func TestFileRevisionAtHead_NonGitDirReturnsEmpty(t *testing.T) {
	p := NewProbe()
	ws := t.TempDir()

	require.Equal(t, "", p.FileRevisionAtHead(ws, "src/api/routes.ts"))
}

func TestCurrentRevision_RealRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	ws := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = ws
		require.NoError(t, cmd.Run())
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")

	require.NoError(t, exec.Command("sh", "-c", "echo hi > "+filepath.Join(ws, "a.txt")).Run())
	run("add", "a.txt")
	run("commit", "-q", "-m", "initial")

	p := NewProbe()
	rev := p.CurrentRevision(ws)
	require.NotEmpty(t, rev)
}

func TestProbe_TimeoutDefaultsApplied(t *testing.T) {
	p := &Probe{}
	require.Equal(t, DefaultTimeout, p.timeout())

	p2 := &Probe{Timeout: 500 * time.Millisecond}
	require.Equal(t, 500*time.Millisecond, p2.timeout())
}
