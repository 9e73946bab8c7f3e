package idnumber

import (
	"fmt"
	"strings"

	"idcheck/internal/idnumber/checkdigit"
	"idcheck/internal/idnumber/failure"
	"idcheck/internal/idnumber/format"
	"idcheck/internal/idnumber/shape"
)

// Type is the tag selecting one identifier scheme, "<country>_<kind>".
type Type string

// Supported identifier types.
const (
	TypeBRCPF      Type = "br_cpf"
	TypeBRCNPJ     Type = "br_cnpj"
	TypeBRCEP      Type = "br_cep"
	TypeCLRUT      Type = "cl_rut"
	TypeARCUIT     Type = "ar_cuit"
	TypeINPAN      Type = "in_pan"
	TypeKEID       Type = "ke_id"
	TypeKEKRAPIN   Type = "ke_kra_pin"
	TypeKEPassport Type = "ke_passport"
	TypeKEPostcode Type = "ke_postcode"
	TypeMTPostcode Type = "mt_postcode"
)

// String returns the tag.
func (t Type) String() string {
	return string(t)
}

// Rule rejects checksum-valid values that a domain excludes.
// It returns the failure kind, or "" when the value is acceptable.
type Rule func(parts shape.Parts) failure.Kind

// RepeatedDigits rejects values whose characters are all identical,
// such as 111.111.111-11.
func RepeatedDigits(parts shape.Parts) failure.Kind {
	bare := parts.Bare()
	if len(bare) > 1 && strings.Count(bare, bare[:1]) == len(bare) {
		return failure.KindRepeatedDigits
	}
	return ""
}

// Definition binds one identifier type to its shape, checksum scheme and layout.
// Definitions are immutable after construction.
type Definition struct {
	typ       Type
	country   string
	name      string
	shape     shape.Shape
	algorithm *checkdigit.Descriptor
	layout    format.Layout
	rules     []Rule
}

// DefinitionSpec is the input to NewDefinition.
type DefinitionSpec struct {
	Type      Type
	Country   string
	Name      string
	Shape     shape.Spec
	Algorithm *checkdigit.Descriptor
	Layout    format.Layout
	Rules     []Rule
}

// NewDefinition validates spec. The shape's check digit count must match the
// algorithm, and identifiers without an algorithm carry no check digits.
func NewDefinition(spec DefinitionSpec) (Definition, error) {
	spec.Shape.Type = string(spec.Type)
	if spec.Algorithm != nil {
		spec.Shape.CheckDigits = spec.Algorithm.Checks()
	} else if spec.Shape.CheckDigits != 0 {
		return Definition{}, fmt.Errorf("%s: check digits declared without an algorithm", spec.Type)
	}
	s, err := shape.New(spec.Shape)
	if err != nil {
		return Definition{}, err
	}
	layout := spec.Layout
	if layout == nil {
		layout = format.Plain{}
	}
	return Definition{
		typ:       spec.Type,
		country:   spec.Country,
		name:      spec.Name,
		shape:     s,
		algorithm: spec.Algorithm,
		layout:    layout,
		rules:     append([]Rule(nil), spec.Rules...),
	}, nil
}

// MustDefinition is NewDefinition for the built-in table.
func MustDefinition(spec DefinitionSpec) Definition {
	d, err := NewDefinition(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// Type returns the identifier tag.
func (d Definition) Type() Type { return d.typ }

// Country returns the ISO 3166-1 alpha-2 country code.
func (d Definition) Country() string { return d.country }

// Name returns a short human-facing name.
func (d Definition) Name() string { return d.name }

// Shape returns the surface syntax.
func (d Definition) Shape() shape.Shape { return d.shape }

// Algorithm returns the checksum scheme, if the identifier has one.
func (d Definition) Algorithm() (checkdigit.Descriptor, bool) {
	if d.algorithm == nil {
		return checkdigit.Descriptor{}, false
	}
	return *d.algorithm, true
}

// Format renders parts with the display layout.
func (d Definition) Format(parts shape.Parts) string {
	return d.layout.Format(parts.Body, parts.Check)
}
