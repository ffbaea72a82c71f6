package sdp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/bt"
)

// ElementType data element type descriptor (upper five header bits)
type ElementType uint8

const (
	ElementNil         ElementType = 0
	ElementUint        ElementType = 1
	ElementInt         ElementType = 2
	ElementUUID        ElementType = 3
	ElementText        ElementType = 4
	ElementBool        ElementType = 5
	ElementSequence    ElementType = 6
	ElementAlternative ElementType = 7
	ElementURL         ElementType = 8
)

// ErrTruncated a data element is shorter than its header claims
var ErrTruncated = errors.New("truncated data element")

// Element one decoded binary data element. Fixed size elements keep
// their payload in Data, sequences and alternatives in Children.
type Element struct {
	Type     ElementType
	Data     []byte
	Children []Element
	// Raw is the full encoding including the header
	Raw []byte
}

// DecodeElement decodes the data element at the start of b and returns
// it together with the number of bytes consumed
func DecodeElement(b []byte) (Element, int, error) {
	if len(b) == 0 {
		return Element{}, 0, ErrTruncated
	}

	typ := ElementType(b[0] >> 3)
	sizeIndex := b[0] & 0x07

	offset := 1
	var size int

	switch sizeIndex {
	case 0:
		size = 1

		if typ == ElementNil {
			size = 0
		}
	case 1:
		size = 2
	case 2:
		size = 4
	case 3:
		size = 8
	case 4:
		size = 16
	case 5:
		if len(b) < 2 {
			return Element{}, 0, ErrTruncated
		}

		size = int(b[1])
		offset = 2
	case 6:
		if len(b) < 3 {
			return Element{}, 0, ErrTruncated
		}

		size = int(binary.BigEndian.Uint16(b[1:3]))
		offset = 3
	case 7:
		if len(b) < 5 {
			return Element{}, 0, ErrTruncated
		}

		size = int(binary.BigEndian.Uint32(b[1:5]))
		offset = 5
	}

	end := offset + size

	if end > len(b) || end < offset {
		return Element{}, 0, ErrTruncated
	}

	elem := Element{
		Type: typ,
		Data: b[offset:end],
		Raw:  b[:end],
	}

	if typ == ElementSequence || typ == ElementAlternative {
		children, err := DecodeElements(elem.Data)

		if err != nil {
			return Element{}, 0, err
		}

		elem.Children = children
	}

	return elem, end, nil
}

// DecodeElements decodes consecutive data elements filling b
func DecodeElements(b []byte) ([]Element, error) {
	out := []Element{}

	for len(b) > 0 {
		elem, n, err := DecodeElement(b)

		if err != nil {
			return nil, err
		}

		out = append(out, elem)
		b = b[n:]
	}

	return out, nil
}

// Uint returns the value of an unsigned element of up to 64 bits
func (e Element) Uint() (uint64, error) {
	if e.Type != ElementUint {
		return 0, fmt.Errorf("element type %d is not unsigned", e.Type)
	}

	switch len(e.Data) {
	case 1:
		return uint64(e.Data[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(e.Data)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(e.Data)), nil
	case 8:
		return binary.BigEndian.Uint64(e.Data), nil
	default:
		return 0, fmt.Errorf("unsupported unsigned width %d", len(e.Data))
	}
}

// UUID returns the value of a uuid element promoted to 128 bits
func (e Element) UUID() (uuid.UUID, error) {
	if e.Type != ElementUUID {
		return uuid.Nil, fmt.Errorf("element type %d is not a uuid", e.Type)
	}

	switch len(e.Data) {
	case 2:
		return bt.FromUint16(binary.BigEndian.Uint16(e.Data)), nil
	case 4:
		return bt.FromUint32(binary.BigEndian.Uint32(e.Data)), nil
	case 16:
		return uuid.FromBytes(e.Data)
	default:
		return uuid.Nil, fmt.Errorf("unsupported uuid width %d", len(e.Data))
	}
}

// appendHeader writes a data element header for typ using the smallest
// variable length size index able to carry n bytes
func appendHeader(b []byte, typ ElementType, n int) []byte {
	switch {
	case n <= 0xff:
		return append(b, byte(typ)<<3|5, byte(n))
	case n <= 0xffff:
		b = append(b, byte(typ)<<3|6)
		return binary.BigEndian.AppendUint16(b, uint16(n))
	default:
		b = append(b, byte(typ)<<3|7)
		return binary.BigEndian.AppendUint32(b, uint32(n))
	}
}

// EncodeSequence wraps already encoded children in a sequence element
func EncodeSequence(children ...[]byte) []byte {
	size := 0

	for _, c := range children {
		size += len(c)
	}

	out := appendHeader(make([]byte, 0, size+5), ElementSequence, size)

	for _, c := range children {
		out = append(out, c...)
	}

	return out
}

// EncodeUUID encodes u in its shortest form
func EncodeUUID(u uuid.UUID) []byte {
	if short, ok := bt.Short(u); ok {
		if short <= 0xffff {
			return binary.BigEndian.AppendUint16([]byte{byte(ElementUUID)<<3 | 1}, uint16(short))
		}

		return binary.BigEndian.AppendUint32([]byte{byte(ElementUUID)<<3 | 2}, short)
	}

	return append([]byte{byte(ElementUUID)<<3 | 4}, u[:]...)
}

// EncodeUint16 encodes a 16 bit unsigned element
func EncodeUint16(v uint16) []byte {
	return binary.BigEndian.AppendUint16([]byte{byte(ElementUint)<<3 | 1}, v)
}

// EncodeUint32 encodes a 32 bit unsigned element
func EncodeUint32(v uint32) []byte {
	return binary.BigEndian.AppendUint32([]byte{byte(ElementUint)<<3 | 2}, v)
}

// EncodeText encodes a text element
func EncodeText(s string) []byte {
	return append(appendHeader(nil, ElementText, len(s)), s...)
}
