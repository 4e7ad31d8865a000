package smithy

import (
	"fmt"
	"maps"
	"strings"

	"github.com/smithy-lang/smithy-runtime-go/traits"
)

// ShapeType is a type of Smithy shape.
// See https://smithy.io/2.0/spec/idl.html#defining-shapes.
type ShapeType int

// Enumerates ShapeType per the Smithy IDL.
const (
	ShapeTypeBlob ShapeType = iota
	ShapeTypeBoolean
	ShapeTypeString
	ShapeTypeTimestamp
	ShapeTypeByte
	ShapeTypeShort
	ShapeTypeInteger
	ShapeTypeLong
	ShapeTypeFloat
	ShapeTypeDocument
	ShapeTypeDouble
	ShapeTypeBigDecimal
	ShapeTypeBigInteger
	ShapeTypeEnum
	ShapeTypeIntEnum
	ShapeTypeList
	ShapeTypeSet
	ShapeTypeMap
	ShapeTypeStructure
	ShapeTypeUnion
	ShapeTypeMember
	ShapeTypeService
	ShapeTypeResource
	ShapeTypeOperation
)

// ShapeID fields of a Smithy shape ID.
type ShapeID struct {
	Namespace, Name, Member string
}

// String returns the IDL microformat for the shape ID.
func (s *ShapeID) String() string {
	if s.Member == "" {
		return fmt.Sprintf("%s#%s", s.Namespace, s.Name)
	}
	return fmt.Sprintf("%s#%s$%s", s.Namespace, s.Name, s.Member)
}

func stoid(s string) ShapeID {
	ns, n, _ := strings.Cut(s, "#")
	n, m, _ := strings.Cut(n, "$")
	return ShapeID{ns, n, m}
}

// Schema encodes information about a shape from a Smithy model.
//
// Generated clients use schemas at runtime to dynamically (de)serialize
// request/responses.
type Schema struct {
	ID      ShapeID
	Type    ShapeType
	Members map[string]*Schema // member name -> schema
	Traits  map[string]Trait   // trait ID -> trait

	// memberOrder is the member declaration order for structure/union
	// shapes, populated by StructBuilder. It backs MemberIndex and
	// RequiredBitmask; schemas built directly via struct literals (as the
	// zero-builder-usage path, e.g. scalar/list/map shapes) leave it nil.
	memberOrder []string

	// requiredMask is precomputed at Build() time: one bit per required
	// member, indexed per memberOrder, segmented into 64-bit words so
	// structures with more than 64 required members still work.
	requiredMask []uint64
}

// NewMember creates a member schema from a target schema, overriding traits.
//
// Traits provided for the member override any traits on the target if there
// is collision.
func NewMember(name string, target *Schema, traits ...Trait) *Schema {
	m := &Schema{
		ID:      ShapeID{Member: name},
		Type:    target.Type,
		Members: target.Members,
		Traits:  maps.Clone(target.Traits),
	}

	if len(m.Traits) == 0 && len(traits) != 0 {
		m.Traits = map[string]Trait{}
	}
	for _, t := range traits {
		m.Traits[t.TraitID()] = t
	}

	return m
}

// SchemaTrait returns the target trait on the schema if it exists.
func SchemaTrait[T Trait](s *Schema) (T, bool) {
	var trait T

	opaque, ok := s.Traits[trait.TraitID()]
	if !ok {
		return trait, false
	}

	tt, ok := opaque.(T)
	return tt, ok
}

// MemberIndex returns the declaration-order index of a member schema added
// via StructBuilder, for fast positional lookups (e.g. required-bitmask bit
// position).
func (s *Schema) MemberIndex(name string) (int, bool) {
	for i, n := range s.memberOrder {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// RequiredBitmask returns the precomputed required-member bitmask, one bit
// per member in declaration order, segmented into 64-bit words. Returns nil
// for schemas not constructed through StructBuilder.
func (s *Schema) RequiredBitmask() []uint64 {
	return s.requiredMask
}

// IsMemberSet reports whether the bit for the member at the given
// declaration-order index is set in mask, as returned by RequiredBitmask.
func IsMemberSet(mask []uint64, index int) bool {
	word, bit := index/64, index%64
	if word >= len(mask) {
		return false
	}
	return mask[word]&(1<<uint(bit)) != 0
}

// StructBuilder constructs a structure or union Schema, tracking member
// declaration order so that MemberIndex and RequiredBitmask are available
// on the built schema. Members are added as already-built schemas; a member
// cannot refer to a builder that has not been built yet, so a structure whose
// members target itself or a structure still under construction cannot be
// expressed through StructBuilder.
type StructBuilder struct {
	id      ShapeID
	typ     ShapeType
	traits  map[string]Trait
	members []*Schema
}

// NewStructBuilder starts a structure/union schema builder.
func NewStructBuilder(id ShapeID, typ ShapeType, sTraits ...Trait) *StructBuilder {
	b := &StructBuilder{id: id, typ: typ}
	if len(sTraits) > 0 {
		b.traits = make(map[string]Trait, len(sTraits))
		for _, t := range sTraits {
			b.traits[t.TraitID()] = t
		}
	}
	return b
}

// AddMember appends a member schema (as produced by NewMember) in
// declaration order.
func (b *StructBuilder) AddMember(m *Schema) *StructBuilder {
	b.members = append(b.members, m)
	return b
}

// Build freezes the schema, computing the member index and
// required-bitmask from declaration order.
func (b *StructBuilder) Build() *Schema {
	members := make(map[string]*Schema, len(b.members))
	order := make([]string, len(b.members))
	var mask []uint64

	for i, m := range b.members {
		order[i] = m.ID.Member
		members[m.ID.Member] = m

		if _, ok := SchemaTrait[*traits.Required](m); ok {
			word, bit := i/64, i%64
			for len(mask) <= word {
				mask = append(mask, 0)
			}
			mask[word] |= 1 << uint(bit)
		}
	}

	return &Schema{
		ID:           b.id,
		Type:         b.typ,
		Members:      members,
		Traits:       b.traits,
		memberOrder:  order,
		requiredMask: mask,
	}
}
