package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sdkwatch/sdkwatch/internal/render"
)

// primerLen is the number of turns the seeding pair occupies.
const primerLen = 2

var (
	// ErrEmptyResponse is returned when the completion service produced no
	// usable text. Callers treat it like any other service failure.
	ErrEmptyResponse = errors.New("completion service returned an empty response")

	// ErrInFlight is returned when Converse is called while a previous call
	// on the same session has not finished.
	ErrInFlight = errors.New("a conversation turn is already in flight")
)

// Session owns one ordered turn log seeded with a snapshot. A session has
// exactly one writer: it is not safe for concurrent use, and the in-flight
// guard rejects overlapping Converse calls rather than serializing them.
type Session struct {
	id       string
	svc      Completion
	snapshot string
	turns    []Turn
	inFlight bool
}

// NewSession creates a session primed with the snapshot text. The two-turn
// primer pair is written verbatim with no model call, so session creation
// cannot fail.
func NewSession(svc Completion, snapshotText string) *Session {
	return &Session{
		id:       uuid.New().String(),
		svc:      svc,
		snapshot: snapshotText,
		turns: []Turn{
			{Role: RolePrimer, Content: primerContent(snapshotText)},
			{Role: RoleModel, Content: primerAcknowledgement},
		},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Ask runs the one-shot impact report: a standalone prompt built from the
// fixed instruction template and the full snapshot text. It neither reads
// nor writes the turn log. question may be empty for the default report.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	answer, err := s.svc.Complete(WithSessionID(ctx, s.id), buildReportPrompt(s.snapshot, question))
	if err != nil {
		return "", fmt.Errorf("report completion failed: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

// Converse asks question in the context of the entire current turn log.
// On success the (user, model) pair is appended, in that order, only after
// the service call returns. On any failure the turn log is left exactly as
// it was before the call, so the history never desynchronizes from what the
// model actually saw and the caller is free to retry.
func (s *Session) Converse(ctx context.Context, question string) (string, error) {
	if s.inFlight {
		return "", ErrInFlight
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	answer, err := s.svc.CompleteWithHistory(WithSessionID(ctx, s.id), s.Turns(), question)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyResponse
	}

	s.turns = append(s.turns,
		Turn{Role: RoleUser, Content: question},
		Turn{Role: RoleModel, Content: answer},
	)
	return answer, nil
}

// Turns returns a copy of the turn log.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Display projects the turn log for rendering: the primer pair is excluded,
// model turns become assistant turns, and the link presentation transform
// is applied to assistant content. The turn log itself is never mutated.
func (s *Session) Display() []DisplayTurn {
	if len(s.turns) <= primerLen {
		return nil
	}

	out := make([]DisplayTurn, 0, len(s.turns)-primerLen)
	for _, turn := range s.turns[primerLen:] {
		if turn.Role == RoleModel {
			out = append(out, DisplayTurn{Role: "assistant", Content: render.RewriteLinks(turn.Content)})
		} else {
			out = append(out, DisplayTurn{Role: "user", Content: turn.Content})
		}
	}
	return out
}
