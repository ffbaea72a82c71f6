package sdp

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

type jsonValue struct {
	Type  Kind            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalAttributes encodes an attribute map as JSON keyed by the hex
// attribute id, each value tagged with its kind
func MarshalAttributes(attrs map[uint16]Value) ([]byte, error) {
	out := make(map[string]jsonValue, len(attrs))

	for id, v := range attrs {
		jv, err := toJSON(v)

		if err != nil {
			return nil, err
		}

		out[fmt.Sprintf("0x%04x", id)] = jv
	}

	return json.Marshal(out)
}

// UnmarshalAttributes decodes data produced by MarshalAttributes
func UnmarshalAttributes(data []byte) (map[uint16]Value, error) {
	raw := map[string]jsonValue{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	attrs := make(map[uint16]Value, len(raw))

	for key, jv := range raw {
		id, err := strconv.ParseUint(key, 0, 16)

		if err != nil {
			return nil, fmt.Errorf("invalid attribute id %q: %w", key, err)
		}

		v, err := fromJSON(jv)

		if err != nil {
			return nil, err
		}

		attrs[uint16(id)] = v
	}

	return attrs, nil
}

func toJSON(v Value) (jsonValue, error) {
	var payload interface{}

	switch t := v.(type) {
	case Bool:
		payload = bool(t)
	case Uint8:
		payload = uint8(t)
	case Uint16:
		payload = uint16(t)
	case Uint32:
		payload = uint32(t)
	case Uint64:
		// strings keep 64 bit values exact across JSON number handling
		payload = strconv.FormatUint(uint64(t), 10)
	case UUID:
		payload = uuid.UUID(t).String()
	case Text:
		payload = string(t)
	case Sequence:
		children := make([]jsonValue, 0, len(t))

		for _, child := range t {
			jv, err := toJSON(child)

			if err != nil {
				return jsonValue{}, err
			}

			children = append(children, jv)
		}

		payload = children
	default:
		return jsonValue{}, fmt.Errorf("unsupported value type %T", v)
	}

	data, err := json.Marshal(payload)

	if err != nil {
		return jsonValue{}, err
	}

	return jsonValue{Type: v.Kind(), Value: data}, nil
}

func fromJSON(jv jsonValue) (Value, error) {
	switch jv.Type {
	case KindBool:
		var b bool
		err := json.Unmarshal(jv.Value, &b)
		return Bool(b), err
	case KindUint8:
		var n uint8
		err := json.Unmarshal(jv.Value, &n)
		return Uint8(n), err
	case KindUint16:
		var n uint16
		err := json.Unmarshal(jv.Value, &n)
		return Uint16(n), err
	case KindUint32:
		var n uint32
		err := json.Unmarshal(jv.Value, &n)
		return Uint32(n), err
	case KindUint64:
		var s string

		if err := json.Unmarshal(jv.Value, &s); err != nil {
			return nil, err
		}

		n, err := strconv.ParseUint(s, 10, 64)
		return Uint64(n), err
	case KindUUID:
		var s string

		if err := json.Unmarshal(jv.Value, &s); err != nil {
			return nil, err
		}

		u, err := uuid.Parse(s)
		return UUID(u), err
	case KindText:
		var s string
		err := json.Unmarshal(jv.Value, &s)
		return Text(s), err
	case KindSequence:
		var children []jsonValue

		if err := json.Unmarshal(jv.Value, &children); err != nil {
			return nil, err
		}

		seq := make(Sequence, 0, len(children))

		for _, c := range children {
			v, err := fromJSON(c)

			if err != nil {
				return nil, err
			}

			seq = append(seq, v)
		}

		return seq, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", jv.Type)
	}
}
