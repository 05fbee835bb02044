package formtest

import (
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/formidable/pkg/form"
)

// UpdateEnv enables rewriting golden files in MatchesFile when set to 1.
const UpdateEnv = "FORMIDABLE_UPDATE_SNAPSHOTS"

// Snapshot captures the engine state and the notifications delivered so far.
type Snapshot struct {
	State         form.State     `yaml:"state"`
	Notifications []Notification `yaml:"notifications,omitempty"`
}

// CaptureSnapshot captures the current state and recorded notifications.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return &Snapshot{State: t.Engine.State(), Notifications: t.Notifications()}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When UpdateEnv=1 is set,
// the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	actual, err := s.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
		return
	}
	if diff := cmp.Diff(string(expected), string(actual)); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes the snapshot as YAML. Map keys are sorted, so equal
// snapshots encode identically.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Diff returns a diff between other and this snapshot, or "" if they
// encode identically.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := s.Marshal()
	b, _ := other.Marshal()
	return cmp.Diff(string(b), string(a))
}
