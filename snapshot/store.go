package snapshot

import (
	"context"

	"github.com/cardroom/betting"
)

// Store persists table snapshots between hands. The betting core treats the
// snapshot as opaque state; stores decide the format.
type Store interface {
	Save(ctx context.Context, snap *betting.TableSnapshot) error
	Load(ctx context.Context, tableID string) (*betting.TableSnapshot, bool, error)
	Delete(ctx context.Context, tableID string) error
}
