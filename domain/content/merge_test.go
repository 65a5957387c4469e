package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_EmptyStoreYieldsDefaults(t *testing.T) {
	assert.Equal(t, DefaultTree(), Merge(nil))
	assert.Equal(t, DefaultTree(), Merge([]ContentRow{}))
}

func TestMerge_PerFieldNotPerSection(t *testing.T) {
	merged := Merge([]ContentRow{{Section: SectionHero, Key: "title_main", Value: "X"}})

	assert.Equal(t, "X", merged.Hero.TitleMain)

	want := DefaultTree().Flatten()
	got := merged.Flatten()
	for _, key := range Fields(SectionHero) {
		if key == "title_main" {
			continue
		}
		assert.Equal(t, want[SectionHero][key], got[SectionHero][key], key)
	}
	for _, sec := range Sections() {
		if sec != SectionHero {
			assert.Equal(t, want[sec], got[sec], sec)
		}
	}
}

func TestMerge_OverrideCorrectness(t *testing.T) {
	rows := []ContentRow{
		{Section: SectionHero, Key: "subtitle", Value: "Sub"},
		{Section: SectionExecutives, Key: "alex_name", Value: "Alexandra"},
		{Section: SectionTheme, Key: "primary_color", Value: "#000000"},
		{Section: SectionFooter, Key: "contact_email", Value: "hello@example.com"},
	}
	merged := Merge(rows)
	got := merged.Flatten()
	defaults := DefaultTree().Flatten()

	overridden := make(map[Section]map[string]bool)
	for _, r := range rows {
		assert.Equal(t, r.Value, got[r.Section][r.Key])
		if overridden[r.Section] == nil {
			overridden[r.Section] = map[string]bool{}
		}
		overridden[r.Section][r.Key] = true
	}
	for _, sec := range Sections() {
		for _, key := range Fields(sec) {
			if !overridden[sec][key] {
				assert.Equal(t, defaults[sec][key], got[sec][key], "%s.%s", sec, key)
			}
		}
	}
}

func TestMerge_IgnoresBlankAndUnknownRows(t *testing.T) {
	merged := Merge([]ContentRow{
		{Section: SectionHero, Key: "title_main", Value: ""},
		{Section: SectionHero, Key: "subtitle", Value: "   "},
		{Section: SectionHero, Key: "not_a_field", Value: "ignored"},
		{Section: "pricing", Key: "title", Value: "ignored"},
	})
	assert.Equal(t, DefaultTree(), merged)
	require.NoError(t, checkComplete(merged))
}

func TestMerge_OrderIndependent(t *testing.T) {
	a := ContentRow{Section: SectionCTA, Key: "title", Value: "A"}
	b := ContentRow{Section: SectionHeader, Key: "logo_text", Value: "B"}
	assert.Equal(t, Merge([]ContentRow{a, b}), Merge([]ContentRow{b, a}))
}

func TestLoad_StorageFailureDegradesToDefaults(t *testing.T) {
	store := newMemStore()
	store.failList = true

	snap := Load(context.Background(), store)
	assert.True(t, snap.Degraded)
	assert.Equal(t, DefaultTree(), snap.Content)
	assert.NotNil(t, snap.Raw)
	assert.Empty(t, snap.Raw)
}

func TestLoad_ReturnsRawRows(t *testing.T) {
	store := newMemStore(ContentRow{Section: SectionHero, Key: "title_main", Value: "Stored"})

	snap := Load(context.Background(), store)
	assert.False(t, snap.Degraded)
	require.Len(t, snap.Raw, 1)
	assert.Equal(t, "Stored", snap.Content.Hero.TitleMain)
}
