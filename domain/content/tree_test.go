package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections_MatchDeclaredConstants(t *testing.T) {
	assert.Equal(t, declaredSections, Sections())
	for _, s := range declaredSections {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Section("pricing").Valid())
}

func TestDefaultTree_Complete(t *testing.T) {
	require.NoError(t, checkComplete(DefaultTree()))

	tree := DefaultTree()
	for _, sec := range Sections() {
		require.NotEmpty(t, Fields(sec), sec)
		for _, key := range Fields(sec) {
			v, ok := tree.Get(sec, key)
			require.True(t, ok, "%s.%s", sec, key)
			assert.NotEmpty(t, strings.TrimSpace(v), "%s.%s", sec, key)
		}
	}
}

func TestCheckComplete_ReportsBlankField(t *testing.T) {
	tree := DefaultTree()
	tree.Hero.Subtitle = " "
	err := checkComplete(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hero.subtitle")
}

func TestDefaultTree_ReturnsCopy(t *testing.T) {
	tree := DefaultTree()
	tree.Hero.TitleMain = "changed"
	assert.Equal(t, "AI Boss Brainz", DefaultTree().Hero.TitleMain)
}

func TestTree_JSONShapeMatchesSchema(t *testing.T) {
	tree := DefaultTree()
	raw, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded map[Section]map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, tree.Flatten(), decoded)
	assert.Equal(t, "AI Boss Brainz", decoded[SectionHero]["title_main"])
	assert.Equal(t, "Alex", decoded[SectionExecutives]["alex_name"])
}

func TestFieldsAndHasField(t *testing.T) {
	assert.Contains(t, Fields(SectionHero), "title_main")
	assert.Nil(t, Fields("nonexistent"))
	assert.True(t, HasField(SectionFooter, "copyright"))
	assert.False(t, HasField(SectionFooter, "bogus"))
	assert.False(t, HasField("nonexistent", "bogus"))

	fields := Fields(SectionHero)
	fields[0] = "mutated"
	assert.Equal(t, "title_main", Fields(SectionHero)[0])
}

func TestDefaultValue(t *testing.T) {
	v, ok := DefaultValue(SectionHero, "title_main")
	require.True(t, ok)
	assert.Equal(t, "AI Boss Brainz", v)

	_, ok = DefaultValue(SectionHero, "bogus")
	assert.False(t, ok)
}
