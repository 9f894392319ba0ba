package store

import (
	"sync"

	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/storage"
)

// Store owns the in-memory AppData aggregate. Update is the only mutation
// entry point; every entity manager goes through it. Updates are serialized
// by the mutex, so callers always observe either the old or the new state.
//
// In local mode (mirror != nil) every update is synchronously written to
// disk; a failed write is logged and the in-memory value stays authoritative.
// In remote mode the upstream server already persisted before Update runs,
// so no mirroring happens.
type Store struct {
	mu     sync.RWMutex
	data   models.AppData
	mirror *storage.Local
	log    zerolog.Logger
}

func New(initial models.AppData, mirror *storage.Local) *Store {
	initial.Normalize()
	return &Store{
		data:   initial,
		mirror: mirror,
		log:    logger.WithComponent("store"),
	}
}

// Snapshot returns a copy of the aggregate. Collection slices are copied so
// a later Update cannot be observed through a snapshot already handed out.
func (s *Store) Snapshot() models.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyData(s.data)
}

// Update applies transform to the current aggregate under the write lock and
// mirrors the result to disk in local mode.
func (s *Store) Update(transform func(models.AppData) models.AppData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := transform(copyData(s.data))
	next.Normalize()
	s.data = next

	if s.mirror != nil {
		if err := s.mirror.Save(next); err != nil {
			s.log.Warn().Err(err).Msg("local mirror write failed, in-memory state remains authoritative")
		}
	}
}

func copyData(d models.AppData) models.AppData {
	out := d
	out.Quotations = append([]models.Quotation(nil), d.Quotations...)
	out.Vouchers = append([]models.Voucher(nil), d.Vouchers...)
	out.Contracts = append([]models.Contract(nil), d.Contracts...)
	out.Users = append([]models.User(nil), d.Users...)
	out.SMSLogs = append([]models.SMSLog(nil), d.SMSLogs...)
	return out
}
