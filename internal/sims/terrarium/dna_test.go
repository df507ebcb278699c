package terrarium

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogListsSortedSpecies(t *testing.T) {
	assert.Equal(t, []string{"KAURI", "LAVENDER", "SUNFLOWER"}, DefaultCatalog().Species())
}

func TestParseCatalogReadsNumbersAndTexts(t *testing.T) {
	doc := []byte(`
species:
  fern:
    seed_activation_level: 12
    stem_max_height: 4.5
    stem_color: "#00AA00"
    evergreen: true
`)
	c, err := ParseCatalog(doc)
	require.NoError(t, err)

	dna, ok := c.Traits("  Fern ")
	require.True(t, ok)
	assert.Equal(t, "FERN", dna.Species)
	assert.InDelta(t, 12, dna.Float(TraitActivationLevel, 0), 1e-9)
	assert.InDelta(t, 4.5, dna.Float(TraitStemMaxHeight, 0), 1e-9)
	assert.Equal(t, "#00AA00", dna.Text(TraitStemColor, ""))
	assert.Equal(t, "true", dna.Text("evergreen", ""))
	assert.InDelta(t, 7, dna.Float("missing", 7), 1e-9)
	assert.Equal(t, "x", dna.Text("missing", "x"))
}

func TestParseCatalogErrors(t *testing.T) {
	cases := map[string]string{
		"malformed": "species: [",
		"empty":     "species: {}",
		"nested":    "species:\n  fern:\n    colors: [a, b]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	require.NoError(t, os.WriteFile(path, []byte("species:\n  moss:\n    seed_activation_level: 2\n"), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"MOSS"}, c.Species())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestTraitsIssueFreshLineages(t *testing.T) {
	a, ok := DefaultCatalog().Traits("kauri")
	require.True(t, ok)
	b, _ := DefaultCatalog().Traits("kauri")
	assert.NotEqual(t, a.Lineage, b.Lineage)

	child := a.Offspring()
	assert.Equal(t, a.Species, child.Species)
	assert.NotEqual(t, a.Lineage, child.Lineage)
	assert.InDelta(t, a.Float(TraitActivationLevel, 0), child.Float(TraitActivationLevel, 0), 1e-9)

	_, ok = DefaultCatalog().Traits("oak")
	assert.False(t, ok)
}

func TestZeroDNAFallsBackToDefaults(t *testing.T) {
	var d DNA
	assert.InDelta(t, 1.5, d.Float(TraitRootMaxDepth, 1.5), 1e-9)
	assert.Equal(t, "#fff", d.Text(TraitRootColor, "#fff"))
}
