package stocks

import "context"

// SnapshotRepository persists the single published snapshot (Redis in
// production). Save replaces the previous snapshot wholesale; Load returns
// (nil, nil) when no snapshot has been published yet.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}
