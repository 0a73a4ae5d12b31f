// Package chat implements the grounded conversation protocol: a session is
// seeded once with the snapshot text and then appends strictly ordered
// (user, model) turn pairs against an abstract completion service.
package chat

import "context"

// Role identifies who produced a turn.
type Role string

const (
	// RolePrimer marks the seeded grounding turn. It is carried to the
	// completion service as a user turn.
	RolePrimer Role = "primer"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// Turn is one entry in a session's turn log.
type Turn struct {
	Role    Role
	Content string
}

// DisplayTurn is the rendering projection of a turn. It is derived from the
// turn log and never authoritative.
type DisplayTurn struct {
	Role    string // "user" or "assistant"
	Content string
}

// sessionIDKey keys the owning session's ID in a call context.
type sessionIDKey struct{}

// WithSessionID stamps a completion call context with the session it
// belongs to.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the session ID a completion call was made
// for, or "" for calls made outside a session. Implementations can use it
// to attribute their exchange records.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// Completion is the external text-generation collaborator. Implementations
// must return an error for empty or malformed model output rather than a
// silent empty answer.
type Completion interface {
	// Complete answers a single standalone prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithHistory answers message in the context of the given
	// ordered history.
	CompleteWithHistory(ctx context.Context, history []Turn, message string) (string, error)
}
