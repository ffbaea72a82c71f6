package sdp

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind names the variant held by a Value. The string form matches the
// element name used in service record documents.
type Kind string

const (
	KindBool     Kind = "boolean"
	KindUint8    Kind = "uint8"
	KindUint16   Kind = "uint16"
	KindUint32   Kind = "uint32"
	KindUint64   Kind = "uint64"
	KindUUID     Kind = "uuid"
	KindText     Kind = "text"
	KindSequence Kind = "sequence"
)

// Value is a decoded service record attribute value. The set of
// implementations is closed: Bool, Uint8, Uint16, Uint32, Uint64, UUID,
// Text and Sequence.
type Value interface {
	Kind() Kind
	String() string
	sealed()
}

// Bool boolean attribute value
type Bool bool

// Uint8 8 bit unsigned attribute value
type Uint8 uint8

// Uint16 16 bit unsigned attribute value
type Uint16 uint16

// Uint32 32 bit unsigned attribute value
type Uint32 uint32

// Uint64 64 bit unsigned attribute value
type Uint64 uint64

// UUID attribute value, short forms are already promoted
type UUID uuid.UUID

// Text string attribute value
type Text string

// Sequence ordered list of nested values
type Sequence []Value

func (Bool) Kind() Kind     { return KindBool }
func (Uint8) Kind() Kind    { return KindUint8 }
func (Uint16) Kind() Kind   { return KindUint16 }
func (Uint32) Kind() Kind   { return KindUint32 }
func (Uint64) Kind() Kind   { return KindUint64 }
func (UUID) Kind() Kind     { return KindUUID }
func (Text) Kind() Kind     { return KindText }
func (Sequence) Kind() Kind { return KindSequence }

func (Bool) sealed()     {}
func (Uint8) sealed()    {}
func (Uint16) sealed()   {}
func (Uint32) sealed()   {}
func (Uint64) sealed()   {}
func (UUID) sealed()     {}
func (Text) sealed()     {}
func (Sequence) sealed() {}

func (v Bool) String() string   { return fmt.Sprintf("%t", bool(v)) }
func (v Uint8) String() string  { return fmt.Sprintf("0x%02x", uint8(v)) }
func (v Uint16) String() string { return fmt.Sprintf("0x%04x", uint16(v)) }
func (v Uint32) String() string { return fmt.Sprintf("0x%08x", uint32(v)) }
func (v Uint64) String() string { return fmt.Sprintf("0x%016x", uint64(v)) }
func (v UUID) String() string   { return uuid.UUID(v).String() }
func (v Text) String() string   { return string(v) }

func (v Sequence) String() string {
	parts := make([]string, 0, len(v))

	for _, child := range v {
		parts = append(parts, child.String())
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// UUIDs returns every direct UUID child of seq in order
func (v Sequence) UUIDs() []uuid.UUID {
	out := []uuid.UUID{}

	for _, child := range v {
		if u, ok := child.(UUID); ok {
			out = append(out, uuid.UUID(u))
		}
	}

	return out
}

// Uint returns the numeric content of any unsigned integer variant
func Uint(v Value) (uint64, bool) {
	switch n := v.(type) {
	case Uint8:
		return uint64(n), true
	case Uint16:
		return uint64(n), true
	case Uint32:
		return uint64(n), true
	case Uint64:
		return uint64(n), true
	default:
		return 0, false
	}
}
