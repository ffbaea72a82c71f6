package sdp

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n\n"

// RenderRecord renders one binary service record, a sequence of
// attribute id / value pairs, as a record document understood by Parse
func RenderRecord(raw []byte) (string, error) {
	record, _, err := DecodeElement(raw)

	if err != nil {
		return "", err
	}

	if record.Type != ElementSequence {
		return "", fmt.Errorf("service record is not a sequence (type %d)", record.Type)
	}

	if len(record.Children)%2 != 0 {
		return "", fmt.Errorf("service record has unpaired attribute id")
	}

	var sb strings.Builder

	sb.WriteString(xmlHeader)
	sb.WriteString("<record>\n")

	for i := 0; i < len(record.Children); i += 2 {
		id, err := record.Children[i].Uint()

		if err != nil || id > 0xffff {
			return "", fmt.Errorf("invalid attribute id at position %d", i/2)
		}

		fmt.Fprintf(&sb, "  <attribute id=\"0x%04x\">\n", id)

		if err := renderElement(&sb, record.Children[i+1], 2); err != nil {
			return "", err
		}

		sb.WriteString("  </attribute>\n")
	}

	sb.WriteString("</record>\n")

	return sb.String(), nil
}

func renderElement(sb *strings.Builder, e Element, depth int) error {
	indent := strings.Repeat("  ", depth)

	switch e.Type {
	case ElementNil:
		fmt.Fprintf(sb, "%s<nil/>\n", indent)
	case ElementBool:
		if len(e.Data) != 1 {
			return fmt.Errorf("invalid boolean width %d", len(e.Data))
		}

		fmt.Fprintf(sb, "%s<boolean value=\"%t\" />\n", indent, e.Data[0] != 0)
	case ElementUint:
		fmt.Fprintf(
			sb,
			"%s<uint%d value=\"0x%s\" />\n",
			indent, len(e.Data)*8, hex.EncodeToString(e.Data),
		)
	case ElementInt:
		v, err := signed(e.Data)

		if err != nil {
			return err
		}

		fmt.Fprintf(sb, "%s<int%d value=\"%s\" />\n", indent, len(e.Data)*8, v)
	case ElementUUID:
		u, err := e.UUID()

		if err != nil {
			return err
		}

		literal := u.String()

		switch len(e.Data) {
		case 2:
			literal = fmt.Sprintf("0x%04x", binary.BigEndian.Uint16(e.Data))
		case 4:
			literal = fmt.Sprintf("0x%08x", binary.BigEndian.Uint32(e.Data))
		}

		fmt.Fprintf(sb, "%s<uuid value=\"%s\" />\n", indent, literal)
	case ElementText, ElementURL:
		tag := "text"

		if e.Type == ElementURL {
			tag = "url"
		}

		data := bytes.TrimRight(e.Data, "\x00")

		if e.Type == ElementText && !printable(data) {
			fmt.Fprintf(
				sb,
				"%s<%s encoding=\"hex\" value=\"%s\" />\n",
				indent, tag, hex.EncodeToString(e.Data),
			)
			return nil
		}

		fmt.Fprintf(sb, "%s<%s value=\"%s\" />\n", indent, tag, escape(data))
	case ElementSequence, ElementAlternative:
		tag := "sequence"

		if e.Type == ElementAlternative {
			tag = "alternate"
		}

		fmt.Fprintf(sb, "%s<%s>\n", indent, tag)

		for _, child := range e.Children {
			if err := renderElement(sb, child, depth+1); err != nil {
				return err
			}
		}

		fmt.Fprintf(sb, "%s</%s>\n", indent, tag)
	default:
		return fmt.Errorf("unknown data element type %d", e.Type)
	}

	return nil
}

func signed(data []byte) (string, error) {
	switch len(data) {
	case 1, 2, 4, 8, 16:
	default:
		return "", fmt.Errorf("unsupported signed width %d", len(data))
	}

	v := new(big.Int).SetBytes(data)

	if data[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8)))
	}

	return v.String(), nil
}

func printable(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}

	for _, r := range string(data) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}

	return true
}

func escape(data []byte) string {
	var buf bytes.Buffer
	// EscapeText only fails when the writer does
	_ = xml.EscapeText(&buf, data)
	return buf.String()
}
