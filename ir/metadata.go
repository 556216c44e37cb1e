package ir

import "fmt"

// metadataColumnPrefix namespaces the columns synthesized for metadata
// references; user column names must not start with it.
const metadataColumnPrefix = "_attr_"

// MetadataColumnPrefix is exported for naming-rule checks.
const MetadataColumnPrefix = metadataColumnPrefix

// MetadataProperty describes one resolvable semantic column: its result
// type, the converting key columns that can produce it, and its semantic
// tag.
type MetadataProperty struct {
	Name         string
	Type         DataType
	SemanticType SemanticType
	// KeyColumns are the converting columns, in preference order; the first
	// one present in the ancestor relation is used.
	KeyColumns []string
}

// UDFName returns the conversion function for deriving the property from
// keyColumn.
func (p *MetadataProperty) UDFName(keyColumn string) string {
	return fmt.Sprintf("%s_to_%s", keyColumn, p.Name)
}

// MetadataHandler is the property catalog, built once and read-only during
// compilation.
type MetadataHandler struct {
	properties map[string]*MetadataProperty
}

// NewMetadataHandler returns a handler preloaded with the standard
// properties.
func NewMetadataHandler() *MetadataHandler {
	h := &MetadataHandler{properties: make(map[string]*MetadataProperty)}
	for _, p := range []*MetadataProperty{
		{Name: "pod_name", Type: String, SemanticType: STPodName, KeyColumns: []string{"upid"}},
		{Name: "pod_id", Type: String, SemanticType: STNone, KeyColumns: []string{"upid"}},
		{Name: "service_name", Type: String, SemanticType: STServiceName, KeyColumns: []string{"upid"}},
		{Name: "service_id", Type: String, SemanticType: STNone, KeyColumns: []string{"upid"}},
		{Name: "container_id", Type: String, SemanticType: STNone, KeyColumns: []string{"upid"}},
	} {
		h.AddProperty(p)
	}
	return h
}

// AddProperty registers p, replacing any property of the same name.
func (h *MetadataHandler) AddProperty(p *MetadataProperty) {
	h.properties[p.Name] = p
}

// HasProperty reports whether name is resolvable.
func (h *MetadataHandler) HasProperty(name string) bool {
	_, ok := h.properties[name]
	return ok
}

// Property returns the named property.
func (h *MetadataHandler) Property(name string) (*MetadataProperty, bool) {
	p, ok := h.properties[name]
	return p, ok
}
