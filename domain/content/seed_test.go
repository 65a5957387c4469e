package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaults(t *testing.T) {
	store := newMemStore(ContentRow{Section: SectionHero, Key: "title_main", Value: "Kept"})
	ctx := context.Background()

	total := 0
	for _, sec := range Sections() {
		total += len(Fields(sec))
	}

	n, err := SeedDefaults(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, total-1, n)

	v, _ := store.value(SectionHero, "title_main")
	assert.Equal(t, "Kept", v)
	v, ok := store.value(SectionFooter, "company_name")
	require.True(t, ok)
	assert.Equal(t, DefaultTree().Footer.CompanyName, v)

	n, err = SeedDefaults(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedDefaults_StoreDown(t *testing.T) {
	store := newMemStore()
	store.failList = true

	_, err := SeedDefaults(context.Background(), store)
	var se *StorageError
	assert.ErrorAs(t, err, &se)
}
