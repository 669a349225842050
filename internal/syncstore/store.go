// Package syncstore keeps the dashboard's in-memory replica of the
// appointments table consistent with the remote store. Snapshot loads and
// change events are the only two ways the replica mutates.
package syncstore

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	domain "github.com/BruksfildServices01/clinic-frontdesk/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/events"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/models"
)

type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.Appointment, error)
}

// View is a read-only projection. Appointments are copies; mutating them
// does not affect the store.
type View struct {
	Appointments []models.Appointment
	Loading      bool
	Err          error
	Version      uint64
}

type Store struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu       sync.RWMutex
	items    []models.Appointment
	inflight int
	loadSeq  uint64
	applied  uint64
	lastErr  error
	version  uint64
	watchers map[int]chan uint64
	nextID   int
}

func New(fetcher Fetcher, logger *slog.Logger) *Store {
	return &Store{
		fetcher:  fetcher,
		logger:   logger,
		items:    []models.Appointment{},
		watchers: map[int]chan uint64{},
	}
}

// ======================================================
// SNAPSHOT
// ======================================================

// LoadSnapshot replaces the whole collection with a fresh fetch. The fetch
// runs outside the lock; the swap is atomic. A failed fetch keeps the
// previous collection. When loads overlap, a load that started before the
// last applied one is discarded.
func (s *Store) LoadSnapshot(ctx context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	s.inflight++
	s.loadSeq++
	seq := s.loadSeq
	s.bumpLocked()
	s.mu.Unlock()

	rows, err := s.fetcher.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if seq < s.applied {
		s.bumpLocked()
		s.logger.Info("stale appointments snapshot discarded", "seq", seq, "applied", s.applied)
		return cloneAll(s.items), nil
	}

	if err != nil {
		if !httperr.IsBusiness(err, httperr.CodeFetchFailed) {
			err = httperr.Wrap(httperr.CodeFetchFailed, err)
		}
		s.lastErr = err
		s.bumpLocked()
		s.logger.Error("appointments snapshot failed", "error", err, "kept", len(s.items))
		return nil, err
	}

	next := make([]models.Appointment, len(rows))
	for i := range rows {
		next[i] = rows[i].Clone()
	}
	slices.SortFunc(next, compare)

	s.items = next
	s.applied = seq
	s.lastErr = nil
	s.bumpLocked()
	s.logger.Info("appointments snapshot loaded", "count", len(next))

	return cloneAll(next), nil
}

// ======================================================
// EVENTS
// ======================================================

// Apply folds one change event into the collection. Created and Updated
// are both upserts keyed by id, so replays are harmless.
func (s *Store) Apply(ev events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case events.Created:
		s.upsertLocked(e.Appointment)
	case events.Updated:
		s.upsertLocked(e.Appointment)
	case events.Deleted:
		i := s.indexLocked(e.ID)
		if i < 0 {
			return
		}
		s.items = slices.Delete(s.items, i, i+1)
	default:
		return
	}
	s.bumpLocked()
}

func (s *Store) upsertLocked(a models.Appointment) {
	a = a.Clone()
	if i := s.indexLocked(a.ID); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	pos, _ := slices.BinarySearchFunc(s.items, a, compare)
	s.items = slices.Insert(s.items, pos, a)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(a models.Appointment) bool { return a.ID == id })
}

// ======================================================
// READS
// ======================================================

func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return View{
		Appointments: cloneAll(s.items),
		Loading:      s.inflight > 0,
		Err:          s.lastErr,
		Version:      s.version,
	}
}

func (s *Store) Get(id string) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Appointment{}, false
	}
	return s.items[i].Clone(), true
}

// Watch delivers the store version after every change. Slow readers miss
// intermediate versions but always see the latest one eventually.
func (s *Store) Watch() (<-chan uint64, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan uint64, 1)
	s.watchers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w)
		}
	}
}

func (s *Store) bumpLocked() {
	s.version++
	for _, w := range s.watchers {
		select {
		case w <- s.version:
		default:
			// drain the stale version so the newest one fits
			select {
			case <-w:
			default:
			}
			select {
			case w <- s.version:
			default:
			}
		}
	}
}

func compare(a, b models.Appointment) int {
	return domain.Compare(&a, &b)
}

func cloneAll(list []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}
