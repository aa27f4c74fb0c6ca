// Package chat holds a single conversation with one model: the ordered
// transcript and the send-and-append operation that grows it.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"orlab/pkg/ai"

	"github.com/google/uuid"
)

// ErrSendInFlight is returned when Send is called while another Send on the
// same session has not yet returned.
var ErrSendInFlight = errors.New("chat: a send is already in flight")

// Summary is a point-in-time count of the transcript.
type Summary struct {
	TotalMessages     int
	UserMessages      int
	AssistantMessages int
	Model             string
}

// Session is a conversation bound to one model. The transcript is
// append-only; a persona, when given, is its only system message and sits
// at index 0.
type Session struct {
	id       string
	model    string
	persona  string
	provider ai.Provider

	mu         sync.RWMutex
	transcript []Message
	sending    atomic.Bool
}

// New creates a session. An empty persona leaves the transcript empty.
func New(provider ai.Provider, model, persona string) *Session {
	s := &Session{
		id:       uuid.Must(uuid.NewV7()).String(),
		model:    model,
		persona:  persona,
		provider: provider,
	}
	if persona != "" {
		s.transcript = append(s.transcript, Message{Role: RoleSystem, Content: persona})
	}

	slog.Debug("chat_session_created",
		"session_id", s.id,
		"model", model,
		"has_persona", persona != "",
	)
	return s
}

// Send appends userText to the transcript, posts the whole transcript to the
// provider once and, on a usable reply, appends and returns it. On failure
// the user message stays in place and no assistant message is added.
func (s *Session) Send(ctx context.Context, userText string) (string, error) {
	if !s.sending.CompareAndSwap(false, true) {
		slog.Debug("chat_send_rejected", "session_id", s.id)
		return "", ErrSendInFlight
	}
	defer s.sending.Store(false)

	s.mu.Lock()
	s.transcript = append(s.transcript, Message{Role: RoleUser, Content: userText})
	req := ai.ChatRequest{
		Model:    s.model,
		Messages: toProviderMessages(s.transcript),
	}
	s.mu.Unlock()

	slog.Debug("chat_send_start",
		"session_id", s.id,
		"model", s.model,
		"message_count", len(req.Messages),
	)
	start := time.Now()

	resp, err := s.provider.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Debug("chat_send_error",
			"session_id", s.id,
			"status_code", ai.StatusCode(err),
			"parse_error", ai.IsParseError(err),
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, Message{Role: RoleAssistant, Content: resp.Content})
	s.mu.Unlock()

	slog.Debug("chat_send_done",
		"session_id", s.id,
		"reply_len", len(resp.Content),
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Content, nil
}

// Summary counts the transcript by role.
func (s *Session) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{
		TotalMessages: len(s.transcript),
		Model:         s.model,
	}
	for _, m := range s.transcript {
		switch m.Role {
		case RoleUser:
			sum.UserMessages++
		case RoleAssistant:
			sum.AssistantMessages++
		}
	}
	return sum
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]Message, len(s.transcript))
	copy(copied, s.transcript)
	return copied
}

// LastReply returns the most recent assistant message, if any.
func (s *Session) LastReply() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Role == RoleAssistant {
			return s.transcript[i].Content, true
		}
	}
	return "", false
}

func (s *Session) ID() string      { return s.id }
func (s *Session) Model() string   { return s.model }
func (s *Session) Persona() string { return s.persona }

// Sending reports whether a Send is currently in flight.
func (s *Session) Sending() bool { return s.sending.Load() }

