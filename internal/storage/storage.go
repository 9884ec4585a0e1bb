package storage

import "vaultCore/internal/model"

// Journal defines a sink for lifecycle events.
type Journal interface {
	PutEventBatch(events []model.LifecycleEvent) error
}
