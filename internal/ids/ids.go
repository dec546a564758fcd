package ids

import "github.com/segmentio/ksuid"

// New returns a sortable unique identifier for entity rows.
func New() string {
	return ksuid.New().String()
}
