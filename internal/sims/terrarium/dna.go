package terrarium

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Trait names the kernel reads.
const (
	TraitSeedColor       = "seed_color"
	TraitActivationLevel = "seed_activation_level"
	TraitRootMaxDepth    = "root_max_depth"
	TraitStemMaxHeight   = "stem_max_height"
	TraitStemColor       = "stem_color"
	TraitRootColor       = "root_color"
	TraitShootColor      = "shoot_color"
)

//go:embed species.yaml
var defaultSpeciesYAML []byte

// ErrUnknownSpecies is returned when a species is not in a catalog.
var ErrUnknownSpecies = errors.New("unknown species")

// DNA is the read-only trait bag a plant particle is built from. Copies share
// the lineage, which is how the parts of one plant recognise each other.
type DNA struct {
	Species string
	Lineage uuid.UUID

	traits *traitBag
}

type traitBag struct {
	numbers map[string]float64
	texts   map[string]string
}

// NewDNA builds a trait bag for a species with a fresh lineage.
func NewDNA(species string, numbers map[string]float64, texts map[string]string) DNA {
	bag := &traitBag{numbers: map[string]float64{}, texts: map[string]string{}}
	for k, v := range numbers {
		bag.numbers[k] = v
	}
	for k, v := range texts {
		bag.texts[k] = v
	}
	return DNA{Species: species, Lineage: uuid.New(), traits: bag}
}

// Float returns a numeric trait or def when absent.
func (d DNA) Float(name string, def float64) float64 {
	if d.traits == nil {
		return def
	}
	if v, ok := d.traits.numbers[name]; ok {
		return v
	}
	return def
}

// Text returns a string trait or def when absent.
func (d DNA) Text(name, def string) string {
	if d.traits == nil {
		return def
	}
	if v, ok := d.traits.texts[name]; ok && v != "" {
		return v
	}
	return def
}

// Offspring returns the same species and traits under a new lineage.
func (d DNA) Offspring() DNA {
	d.Lineage = uuid.New()
	return d
}

// TraitSource supplies trait bags for named species.
type TraitSource interface {
	Traits(species string) (DNA, bool)
}

// Catalog is a TraitSource backed by a YAML species file.
type Catalog struct {
	species map[string]*traitBag
}

type catalogFile struct {
	Species map[string]map[string]any `yaml:"species"`
}

var defaultCatalog = mustParseCatalog(defaultSpeciesYAML)

// DefaultCatalog returns the built-in species catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

// LoadCatalog reads a species catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a species catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse species catalog: %w", err)
	}
	if len(file.Species) == 0 {
		return nil, errors.New("parse species catalog: no species defined")
	}
	c := &Catalog{species: make(map[string]*traitBag, len(file.Species))}
	for name, raw := range file.Species {
		bag := &traitBag{numbers: map[string]float64{}, texts: map[string]string{}}
		for key, value := range raw {
			switch v := value.(type) {
			case int:
				bag.numbers[key] = float64(v)
			case float64:
				bag.numbers[key] = v
			case string:
				bag.texts[key] = v
			case bool:
				bag.texts[key] = strconv.FormatBool(v)
			default:
				return nil, fmt.Errorf("parse species catalog: %s.%s has unsupported value %v", name, key, value)
			}
		}
		c.species[strings.ToUpper(name)] = bag
	}
	return c, nil
}

func mustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Traits returns the trait bag for species with a fresh lineage.
func (c *Catalog) Traits(species string) (DNA, bool) {
	key := strings.ToUpper(strings.TrimSpace(species))
	bag, ok := c.species[key]
	if !ok {
		return DNA{}, false
	}
	return DNA{Species: key, Lineage: uuid.New(), traits: bag}, true
}

// Species lists the catalog entries in sorted order.
func (c *Catalog) Species() []string {
	names := make([]string, 0, len(c.species))
	for name := range c.species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
