package sdp

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// largest SDP PDU we expect to receive on a single read
const readBufferSize = 0xffff

// session SDP client session over a packet oriented transport
type session struct {
	conn io.ReadWriteCloser
	mux  sync.Mutex
	tid  uint16
}

// NewSession returns a Session speaking SDP over conn. Every Write must
// carry exactly one PDU and every Read must return exactly one PDU.
func NewSession(conn io.ReadWriteCloser) Session {
	return &session{conn: conn}
}

// SearchAttributes implements Session by issuing a
// ServiceSearchAttributeRequest, following continuation state until the
// server has returned every record
func (s *session) SearchAttributes(
	patterns []uuid.UUID,
	ranges []AttributeRange,
) ([][]byte, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	var (
		lists        []byte
		continuation []byte
		buf          = make([]byte, readBufferSize)
	)

	for {
		s.tid++

		tid := s.tid
		req := searchAttributeRequest(tid, patterns, ranges, continuation)

		if _, err := s.conn.Write(req); err != nil {
			return nil, fmt.Errorf("failed to send sdp request: %w", err)
		}

		n, err := s.conn.Read(buf)

		if err != nil {
			return nil, fmt.Errorf("failed to read sdp response: %w", err)
		}

		resp, err := parseSearchAttributeResponse(tid, buf[:n])

		if err != nil {
			return nil, err
		}

		lists = append(lists, resp.lists...)

		if len(resp.continuation) == 0 {
			break
		}

		continuation = append([]byte(nil), resp.continuation...)
	}

	return splitRecords(lists)
}

// Close implements Session
func (s *session) Close() error {
	return s.conn.Close()
}

// splitRecords splits the outer attribute lists sequence into the raw
// encoding of each record
func splitRecords(lists []byte) ([][]byte, error) {
	if len(lists) == 0 {
		return [][]byte{}, nil
	}

	outer, _, err := DecodeElement(lists)

	if err != nil {
		return nil, fmt.Errorf("invalid attribute lists: %w", err)
	}

	if outer.Type != ElementSequence {
		return nil, errors.New("attribute lists is not a sequence")
	}

	records := make([][]byte, 0, len(outer.Children))

	for _, child := range outer.Children {
		records = append(records, child.Raw)
	}

	return records, nil
}
