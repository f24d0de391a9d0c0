package testsupport

import (
	"testing"

	"longbox/internal/journal"
)

// MustOpenJournal opens a throwaway journal database under the test's temp
// directory and closes it on cleanup.
func MustOpenJournal(t *testing.T) *journal.Journal {
	t.Helper()
	cfg := NewConfig(t)
	j, err := journal.Open(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Errorf("close journal: %v", err)
		}
	})
	return j
}
