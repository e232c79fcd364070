package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Query struct {
	ActorID  *uint
	Entity   string
	EntityID *uint
	Limit    int
}

const DefaultLimit = 100

// Store persists audit rows. Postgres and Mongo implementations exist.
type Store interface {
	Save(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, q Query) ([]models.AuditLog, error)
}

type Logger struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Logger {
	return &Logger{store: store, now: time.Now}
}

func (l *Logger) Log(
	ctx context.Context,
	actorID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metaJSON,
		CreatedAt: l.now(),
	}

	return l.store.Save(ctx, &entry)
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, error) {
	if q.Limit <= 0 || q.Limit > 500 {
		q.Limit = DefaultLimit
	}
	return l.store.List(ctx, q)
}
