package content

import (
	"context"
	"fmt"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
)

// SeedDefaults inserts the default value of every field missing from the
// store and returns how many rows it created. Admin edits only update rows,
// so a field must be seeded before it can be edited.
func SeedDefaults(ctx context.Context, store Store) (int, error) {
	log := logger.FromContext(ctx).WithComponent("landing_seed")

	rows, err := store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list existing content: %w", err)
	}

	existing := make(map[Section]map[string]struct{})
	for _, row := range rows {
		if existing[row.Section] == nil {
			existing[row.Section] = make(map[string]struct{})
		}
		existing[row.Section][row.Key] = struct{}{}
	}

	defaults := DefaultTree()
	inserted := 0
	for _, sec := range Sections() {
		for _, key := range Fields(sec) {
			if _, ok := existing[sec][key]; ok {
				continue
			}
			value, _ := defaults.Get(sec, key)
			if _, err := store.Upsert(ctx, sec, key, value, nil); err != nil {
				return inserted, fmt.Errorf("seed %s.%s: %w", sec, key, err)
			}
			inserted++
			log.Debug("Seeded content", logger.Section(string(sec)), logger.ContentKey(key))
		}
	}

	log.Info("Landing page content seeded", logger.Count(inserted))
	return inserted, nil
}
