// Package memory is an in-process implementation of the repository
// interfaces. It mirrors the guarantees of the Postgres schema (conditional
// slot reserve, no overlapping slots, one active appointment per slot) and
// backs the use case and HTTP tests.
package memory

import (
	"maps"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq map[string]uint

	users        map[uint]models.User
	services     map[uint]models.Service
	images       map[uint]models.ServiceImage
	stylists     map[uint]models.Stylist
	slots        map[uint]models.Slot
	appointments map[uint]models.Appointment

	// FailCreateAppointment, when set, is returned by CreateAppointment.
	FailCreateAppointment error

	// Now stamps created_at and updated_at.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		seq:          map[string]uint{},
		users:        map[uint]models.User{},
		services:     map[uint]models.Service{},
		images:       map[uint]models.ServiceImage{},
		stylists:     map[uint]models.Stylist{},
		slots:        map[uint]models.Slot{},
		appointments: map[uint]models.Appointment{},
		Now:          time.Now,
	}
}

func (s *Store) next(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

type snapshot struct {
	seq          map[string]uint
	users        map[uint]models.User
	services     map[uint]models.Service
	images       map[uint]models.ServiceImage
	stylists     map[uint]models.Stylist
	slots        map[uint]models.Slot
	appointments map[uint]models.Appointment
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		seq:          maps.Clone(s.seq),
		users:        maps.Clone(s.users),
		services:     maps.Clone(s.services),
		images:       maps.Clone(s.images),
		stylists:     maps.Clone(s.stylists),
		slots:        maps.Clone(s.slots),
		appointments: maps.Clone(s.appointments),
	}
}

// restore swaps the whole store back to snap. A write made outside a
// transaction while the failed one ran is lost with it, so use cases that
// must survive a concurrent rollback write through Transaction.
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq = snap.seq
	s.users = snap.users
	s.services = snap.services
	s.images = snap.images
	s.stylists = snap.stylists
	s.slots = snap.slots
	s.appointments = snap.appointments
}

// transaction serialises units of work and rolls the whole store back when
// fn fails. Nested calls join the outer unit.
func (s *Store) transaction(inTx bool, fn func() error) error {
	if inTx {
		return fn()
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) serviceWithImages(svc models.Service) models.Service {
	svc.Images = []models.ServiceImage{}
	for _, img := range s.images {
		if img.ServiceID == svc.ID {
			svc.Images = append(svc.Images, img)
		}
	}
	sortByID(svc.Images, func(i models.ServiceImage) uint { return i.ID })
	return svc
}

func (s *Store) activeOnSlot(slotID, excludeID uint) bool {
	for _, ap := range s.appointments {
		if ap.ID == excludeID || ap.SlotID != slotID {
			continue
		}
		if ap.Status == "pending" || ap.Status == "confirmed" {
			return true
		}
	}
	return false
}
