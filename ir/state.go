package ir

import (
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// CompilerState is the per-compilation context: the table catalog, the
// function registry, the reference wall-clock time for relative time
// expressions, the optional result row cap and the metadata property
// catalog. It is immutable for the duration of one compilation; distinct
// compilations may share one read-only instance.
type CompilerState struct {
	relationMap     map[string]Relation
	registry        *RegistryInfo
	timeNow         time.Time
	maxOutputRows   int64
	metadataHandler *MetadataHandler
}

// NewCompilerState assembles a compiler state. maxOutputRows <= 0 disables
// the result cap.
func NewCompilerState(relations map[string]Relation, registry *RegistryInfo, now time.Time, maxOutputRows int64) *CompilerState {
	return &CompilerState{
		relationMap:     relations,
		registry:        registry,
		timeNow:         now,
		maxOutputRows:   maxOutputRows,
		metadataHandler: NewMetadataHandler(),
	}
}

// Table returns the catalog relation for name.
func (s *CompilerState) Table(name string) (Relation, bool) {
	rel, ok := s.relationMap[name]
	return rel, ok
}

// Registry returns the function registry.
func (s *CompilerState) Registry() *RegistryInfo { return s.registry }

// TimeNow is the reference time relative time strings resolve against.
func (s *CompilerState) TimeNow() time.Time { return s.timeNow }

// MaxOutputRows returns the configured result cap, 0 if unset.
func (s *CompilerState) MaxOutputRows() int64 {
	if s.maxOutputRows < 0 {
		return 0
	}
	return s.maxOutputRows
}

// MetadataHandler returns the metadata property catalog.
func (s *CompilerState) MetadataHandler() *MetadataHandler { return s.metadataHandler }

type yamlColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlCatalog struct {
	Tables map[string][]yamlColumn `yaml:"tables"`
}

// LoadCatalogYAML parses a table catalog from YAML, for tests and tooling.
func LoadCatalogYAML(data []byte) (map[string]Relation, error) {
	var cat yamlCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, errors.Wrap(err, "parsing catalog yaml")
	}
	out := make(map[string]Relation, len(cat.Tables))
	for table, cols := range cat.Tables {
		rel := make(Relation, 0, len(cols))
		for _, c := range cols {
			t, ok := yamlTypeNames[c.Type]
			if !ok {
				return nil, errors.Errorf("unknown type %q for column %q of table %q", c.Type, c.Name, table)
			}
			rel = append(rel, Column{Name: c.Name, Type: t})
		}
		out[table] = rel
	}
	return out, nil
}
