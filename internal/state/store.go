package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/bsj5/profilecard/internal/lanyard"
)

// Snapshot is the latest fetch outcome available to the UI.
type Snapshot struct {
	Document            lanyard.Document
	HasDocument         bool
	LastUpdated         time.Time
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int
	Polls               int
}

// IsOffline returns true when the presence API has been unreachable for
// multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Status returns the Discord status to show, offline until a document has
// been fetched.
func (s Snapshot) Status() lanyard.Status {
	if !s.HasDocument {
		return lanyard.StatusOffline
	}
	return s.Document.Data.DiscordStatus
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records one fetch. When err is non-nil the previous document is
// kept and the error is recorded for visibility.
func (s *Store) Update(doc *lanyard.Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.Polls++
	s.snapshot.LastUpdated = now

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if doc != nil {
		s.snapshot.Document = cloneDocument(*doc)
		s.snapshot.HasDocument = true
	}
	s.snapshot.LastError = nil
	s.snapshot.LastSuccess = now
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Document = cloneDocument(s.snapshot.Document)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneDocument(doc lanyard.Document) lanyard.Document {
	if len(doc.Data.Activities) == 0 {
		doc.Data.Activities = nil
		return doc
	}
	acts := make([]lanyard.Activity, len(doc.Data.Activities))
	copy(acts, doc.Data.Activities)
	doc.Data.Activities = acts
	return doc
}
