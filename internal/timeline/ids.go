package timeline

import (
	"strings"

	"github.com/google/uuid"
)

// NewSetID returns a globally unique set id of the form "<prefix>-<uuid>".
// An empty prefix yields the bare uuid.
func NewSetID(prefix string) string {
	id := uuid.NewString()
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
