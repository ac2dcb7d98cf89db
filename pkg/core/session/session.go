// Package session generates the opaque identifier that correlates every
// gateway call for one client lifetime.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh session identifier. The value has no meaning to
// this client; it is forwarded unchanged so the remote agent can keep
// conversational continuity. The random suffix avoids collisions when
// two clients start in the same millisecond.
func New() string {
	return fmt.Sprintf("fin-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
