package sdp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PDU identifiers used by the client
const (
	pduErrorResponse                 uint8 = 0x01
	pduServiceSearchAttributeRequest uint8 = 0x06
	pduServiceSearchAttributeReply   uint8 = 0x07
)

const (
	pduHeaderSize       = 5
	maxContinuationSize = 16
	// largest attribute byte count we ask the server for per response
	maxAttributeBytes uint16 = 0xffff
)

// ErrorResponse error PDU returned by a remote SDP server
type ErrorResponse struct {
	Code uint16
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("sdp error response 0x%04x", e.Code)
}

// AttributeRange inclusive range of attribute identifiers
type AttributeRange struct {
	Start uint16
	End   uint16
}

// AllAttributes covers every attribute identifier
var AllAttributes = AttributeRange{Start: 0x0000, End: 0xffff}

func (r AttributeRange) encode() []byte {
	if r.Start == r.End {
		return EncodeUint16(r.Start)
	}

	return EncodeUint32(uint32(r.Start)<<16 | uint32(r.End))
}

// searchAttributeRequest builds a ServiceSearchAttributeRequest PDU
func searchAttributeRequest(
	tid uint16,
	patterns []uuid.UUID,
	ranges []AttributeRange,
	continuation []byte,
) []byte {
	encodedPatterns := make([][]byte, 0, len(patterns))

	for _, p := range patterns {
		encodedPatterns = append(encodedPatterns, EncodeUUID(p))
	}

	encodedRanges := make([][]byte, 0, len(ranges))

	for _, r := range ranges {
		encodedRanges = append(encodedRanges, r.encode())
	}

	params := EncodeSequence(encodedPatterns...)
	params = binary.BigEndian.AppendUint16(params, maxAttributeBytes)
	params = append(params, EncodeSequence(encodedRanges...)...)
	params = append(params, byte(len(continuation)))
	params = append(params, continuation...)

	pdu := make([]byte, 0, pduHeaderSize+len(params))
	pdu = append(pdu, pduServiceSearchAttributeRequest)
	pdu = binary.BigEndian.AppendUint16(pdu, tid)
	pdu = binary.BigEndian.AppendUint16(pdu, uint16(len(params)))

	return append(pdu, params...)
}

// searchAttributeResponse holds one partial attribute list response
type searchAttributeResponse struct {
	lists        []byte
	continuation []byte
}

// parseSearchAttributeResponse validates a response PDU against the
// expected transaction id and extracts its payload
func parseSearchAttributeResponse(tid uint16, pdu []byte) (searchAttributeResponse, error) {
	var resp searchAttributeResponse

	if len(pdu) < pduHeaderSize {
		return resp, errors.New("short sdp response")
	}

	id := pdu[0]
	gotTID := binary.BigEndian.Uint16(pdu[1:3])
	length := int(binary.BigEndian.Uint16(pdu[3:5]))
	params := pdu[pduHeaderSize:]

	if gotTID != tid {
		return resp, fmt.Errorf("unexpected transaction id %d (want %d)", gotTID, tid)
	}

	if length > len(params) {
		return resp, errors.New("sdp response shorter than its parameter length")
	}

	params = params[:length]

	switch id {
	case pduErrorResponse:
		if len(params) < 2 {
			return resp, ErrorResponse{}
		}

		return resp, ErrorResponse{Code: binary.BigEndian.Uint16(params[:2])}
	case pduServiceSearchAttributeReply:
	default:
		return resp, fmt.Errorf("unexpected sdp pdu 0x%02x", id)
	}

	if len(params) < 2 {
		return resp, errors.New("sdp response missing byte count")
	}

	count := int(binary.BigEndian.Uint16(params[:2]))
	params = params[2:]

	if count+1 > len(params) {
		return resp, errors.New("sdp response truncated")
	}

	resp.lists = params[:count]
	params = params[count:]

	contLen := int(params[0])

	if contLen > maxContinuationSize || contLen+1 > len(params) {
		return resp, errors.New("invalid sdp continuation state")
	}

	resp.continuation = params[1 : 1+contLen]

	return resp, nil
}
