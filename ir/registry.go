package ir

import (
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/flowscope/flowscope/planpb"
)

// UDTFSpec wraps a declared table-function signature.
type UDTFSpec struct {
	Proto *planpb.UDTFSourceSpec
}

// Relation returns the UDTF's declared output relation.
func (s *UDTFSpec) Relation() Relation {
	return RelationFromProto(s.Proto.Relation)
}

type registryKey struct {
	name     string
	argTypes string
}

func makeRegistryKey(name string, argTypes []DataType) registryKey {
	parts := make([]string, len(argTypes))
	for i, t := range argTypes {
		parts[i] = t.String()
	}
	return registryKey{name: name, argTypes: strings.Join(parts, ",")}
}

func typeList(argTypes []DataType) string {
	parts := make([]string, len(argTypes))
	for i, t := range argTypes {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// RegistryInfo answers function signature lookups. It is built once before
// compilation and read-only afterwards, so concurrent compilations may share
// one instance.
type RegistryInfo struct {
	udfs  map[registryKey]DataType
	udas  map[registryKey]DataType
	udtfs map[string]*UDTFSpec
}

// NewRegistryInfo returns an empty registry.
func NewRegistryInfo() *RegistryInfo {
	return &RegistryInfo{
		udfs:  make(map[registryKey]DataType),
		udas:  make(map[registryKey]DataType),
		udtfs: make(map[string]*UDTFSpec),
	}
}

// AddUDF registers a scalar function signature.
func (r *RegistryInfo) AddUDF(name string, argTypes []DataType, ret DataType) {
	r.udfs[makeRegistryKey(name, argTypes)] = ret
}

// AddUDA registers an aggregate function signature.
func (r *RegistryInfo) AddUDA(name string, argTypes []DataType, ret DataType) {
	r.udas[makeRegistryKey(name, argTypes)] = ret
}

// AddUDTF registers a table-function spec.
func (r *RegistryInfo) AddUDTF(spec *planpb.UDTFSourceSpec) {
	r.udtfs[spec.Name] = &UDTFSpec{Proto: spec}
}

// GetUDF returns the return type of the scalar function matching name and
// argument types.
func (r *RegistryInfo) GetUDF(name string, argTypes []DataType) (DataType, error) {
	if ret, ok := r.udfs[makeRegistryKey(name, argTypes)]; ok {
		return ret, nil
	}
	return UnknownType, ErrUDFNotFound.New(name, typeList(argTypes))
}

// GetUDA returns the output type of the aggregate function matching name and
// argument types.
func (r *RegistryInfo) GetUDA(name string, argTypes []DataType) (DataType, error) {
	if ret, ok := r.udas[makeRegistryKey(name, argTypes)]; ok {
		return ret, nil
	}
	return UnknownType, ErrUDFNotFound.New(name, typeList(argTypes))
}

// GetUDTF returns the source spec for the named table function.
func (r *RegistryInfo) GetUDTF(name string) (*UDTFSpec, bool) {
	spec, ok := r.udtfs[name]
	return spec, ok
}

// Init loads the registry from its wire listing.
func (r *RegistryInfo) Init(info *planpb.UDFInfo) {
	for _, udf := range info.ScalarUdfs {
		r.AddUDF(udf.Name, udf.ExecArgTypes, udf.ReturnType)
	}
	for _, uda := range info.Udas {
		r.AddUDA(uda.Name, uda.UpdateArgTypes, uda.FinalizeType)
	}
	for _, udtf := range info.Udtfs {
		r.AddUDTF(udtf)
	}
}

type yamlSignature struct {
	Name     string   `yaml:"name"`
	ArgTypes []string `yaml:"arg_types"`
	Return   string   `yaml:"return"`
}

type yamlRegistry struct {
	UDFs []yamlSignature `yaml:"udfs"`
	UDAs []yamlSignature `yaml:"udas"`
}

var yamlTypeNames = map[string]DataType{
	"bool":    Boolean,
	"int64":   Int64,
	"uint128": UInt128,
	"float64": Float64,
	"string":  String,
	"time":    Time64NS,
}

// InitYAML loads signatures from a YAML listing, used by tests and tooling.
func (r *RegistryInfo) InitYAML(data []byte) error {
	var reg yamlRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return errors.Wrap(err, "parsing registry yaml")
	}
	load := func(sigs []yamlSignature, add func(string, []DataType, DataType)) error {
		for _, sig := range sigs {
			args := make([]DataType, 0, len(sig.ArgTypes))
			for _, a := range sig.ArgTypes {
				t, ok := yamlTypeNames[a]
				if !ok {
					return errors.Errorf("unknown type %q in signature for %q", a, sig.Name)
				}
				args = append(args, t)
			}
			ret, ok := yamlTypeNames[sig.Return]
			if !ok {
				return errors.Errorf("unknown return type %q in signature for %q", sig.Return, sig.Name)
			}
			add(sig.Name, args, ret)
		}
		return nil
	}
	if err := load(reg.UDFs, r.AddUDF); err != nil {
		return err
	}
	return load(reg.UDAs, r.AddUDA)
}
