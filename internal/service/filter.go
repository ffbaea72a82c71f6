package service

import (
	"github.com/google/uuid"

	"github.com/robgonnella/btscan/internal/util"
)

// Filter restricts results to services matching any of a set of uuids.
// The zero Filter matches everything.
type Filter struct {
	uuids []uuid.UUID
}

// NewFilter returns a filter for uuids
func NewFilter(uuids []uuid.UUID) Filter {
	return Filter{uuids: util.Unique(uuids)}
}

// Empty reports whether the filter lets everything through
func (f Filter) Empty() bool {
	return len(f.uuids) == 0
}

// UUIDs returns the filter set
func (f Filter) UUIDs() []uuid.UUID {
	return append([]uuid.UUID{}, f.uuids...)
}

// Contains reports whether u is in the filter set
func (f Filter) Contains(u uuid.UUID) bool {
	return util.SliceIncludes(f.uuids, u)
}

// Match reports whether the primary uuid or any service class uuid of
// desc is in the filter set
func (f Filter) Match(desc Descriptor) bool {
	if f.Empty() {
		return true
	}

	if desc.ServiceUUID != nil && f.Contains(*desc.ServiceUUID) {
		return true
	}

	for _, u := range desc.ClassUUIDs {
		if f.Contains(u) {
			return true
		}
	}

	return false
}
