package content

import (
	"context"
	"strings"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
)

// Merge lays stored rows over the default tree field by field. Rows for a
// section or key the schema does not know, and blank values, are skipped so
// every field of the result is non-empty.
func Merge(rows []ContentRow) Tree {
	tree := DefaultTree()
	for _, row := range rows {
		if strings.TrimSpace(row.Value) == "" {
			continue
		}
		tree.set(row.Section, row.Key, row.Value)
	}
	return tree
}

// Snapshot is one resolved read of the landing page: the merged tree plus the
// rows it was built from. Snapshots are shared between readers and must be
// treated as read-only.
type Snapshot struct {
	Content  Tree
	Raw      []ContentRow
	Degraded bool // store unreachable, Content is the default tree
}

// Load reads every stored row and merges it with the defaults. A storage
// failure is logged and yields the default tree; it is never returned.
func Load(ctx context.Context, store Store) Snapshot {
	log := logger.FromContext(ctx).WithComponent("landing_content")

	rows, err := store.ListAll(ctx)
	if err != nil {
		log.Warn("Landing page content unavailable, serving defaults", logger.Err(err))
		return Snapshot{Content: DefaultTree(), Raw: []ContentRow{}, Degraded: true}
	}
	if rows == nil {
		rows = []ContentRow{}
	}

	for _, row := range rows {
		if !HasField(row.Section, row.Key) {
			log.Debug("Ignoring stored row outside the content schema",
				logger.Section(string(row.Section)), logger.ContentKey(row.Key))
		}
	}

	return Snapshot{Content: Merge(rows), Raw: rows}
}
