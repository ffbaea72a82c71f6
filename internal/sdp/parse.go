package sdp

import (
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robgonnella/btscan/internal/bt"
	"github.com/robgonnella/btscan/internal/logger"
)

// node generic element captured while walking a record document
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// Parse decodes a service record document into its attribute map.
// Attributes whose value cannot be decoded are logged and left out. An
// error is only returned for a document that is not well-formed, along
// with every attribute decoded before the failure.
func Parse(doc string) (map[uint16]Value, error) {
	log := logger.New()
	attrs := map[uint16]Value{}

	decoder := xml.NewDecoder(strings.NewReader(doc))

	for {
		tok, err := decoder.Token()

		if errors.Is(err, io.EOF) {
			return attrs, nil
		}

		if err != nil {
			return attrs, fmt.Errorf("malformed service record: %w", err)
		}

		start, ok := tok.(xml.StartElement)

		if !ok || start.Name.Local != "attribute" {
			continue
		}

		var attr node

		if err := decoder.DecodeElement(&attr, &start); err != nil {
			return attrs, fmt.Errorf("malformed service record: %w", err)
		}

		rawID, _ := attr.attr("id")

		id, err := strconv.ParseUint(strings.TrimSpace(rawID), 0, 16)

		if err != nil {
			log.Warn().Str("id", rawID).Msg("skipping attribute with invalid id")
			continue
		}

		if len(attr.Children) == 0 {
			log.Warn().Uint64("id", id).Msg("skipping attribute without value")
			continue
		}

		value, ok := decodeNode(attr.Children[0])

		if !ok {
			continue
		}

		attrs[uint16(id)] = value
	}
}

// decodeNode turns one value element into a Value, reporting false when
// the element kind is unknown or its literal is invalid
func decodeNode(n node) (Value, bool) {
	log := logger.New()
	kind := Kind(n.XMLName.Local)

	if kind == KindSequence {
		seq := Sequence{}

		for _, child := range n.Children {
			if v, ok := decodeNode(child); ok {
				seq = append(seq, v)
			}
		}

		return seq, true
	}

	literal, _ := n.attr("value")
	literal = strings.TrimSpace(literal)

	value, err := decodeScalar(kind, literal, n)

	if err != nil {
		log.Warn().
			Err(err).
			Str("element", n.XMLName.Local).
			Str("value", literal).
			Msg("dropping attribute value")
		return nil, false
	}

	return value, true
}

func decodeScalar(kind Kind, literal string, n node) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(literal)
		return Bool(b), err
	case KindUint8:
		v, err := strconv.ParseUint(literal, 0, 8)
		return Uint8(v), err
	case KindUint16:
		v, err := strconv.ParseUint(literal, 0, 16)
		return Uint16(v), err
	case KindUint32:
		v, err := strconv.ParseUint(literal, 0, 32)
		return Uint32(v), err
	case KindUint64:
		v, err := strconv.ParseUint(literal, 0, 64)
		return Uint64(v), err
	case KindUUID:
		u, err := bt.ParseUUID(literal)
		return UUID(u), err
	case KindText:
		if enc, _ := n.attr("encoding"); enc != "hex" {
			return Text(literal), nil
		}

		raw, err := hex.DecodeString(literal)

		if err != nil {
			return nil, err
		}

		return Text(strings.TrimRight(string(raw), "\x00")), nil
	default:
		return nil, fmt.Errorf("unsupported element kind %q", kind)
	}
}
