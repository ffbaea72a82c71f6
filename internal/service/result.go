package service

// ResultSet descriptors already emitted during one discovery run
type ResultSet struct {
	descriptors []Descriptor
}

// NewResultSet returns an empty result set
func NewResultSet() *ResultSet {
	return &ResultSet{descriptors: []Descriptor{}}
}

// Add records desc and returns true, or returns false without recording
// when an equivalent descriptor for the same device is already present
func (r *ResultSet) Add(desc Descriptor) bool {
	for _, existing := range r.descriptors {
		if sameService(existing, desc) {
			return false
		}
	}

	r.descriptors = append(r.descriptors, desc)

	return true
}

// Len returns the number of recorded descriptors
func (r *ResultSet) Len() int {
	return len(r.descriptors)
}

// Descriptors returns the recorded descriptors in insertion order
func (r *ResultSet) Descriptors() []Descriptor {
	return append([]Descriptor{}, r.descriptors...)
}
