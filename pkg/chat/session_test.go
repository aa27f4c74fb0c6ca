package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"orlab/pkg/ai"
)

type stubProvider struct {
	mu       sync.Mutex
	requests []ai.ChatRequest
	replies  []stubReply
}

type stubReply struct {
	content string
	err     error
}

func (p *stubProvider) CreateChatCompletion(_ context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := req
	copied.Messages = append([]ai.Message(nil), req.Messages...)
	p.requests = append(p.requests, copied)

	if len(p.replies) == 0 {
		return ai.ChatResponse{Content: "ok", Model: req.Model}, nil
	}
	next := p.replies[0]
	p.replies = p.replies[1:]
	if next.err != nil {
		return ai.ChatResponse{}, next.err
	}
	return ai.ChatResponse{Content: next.content, Model: req.Model, Usage: ai.Usage{TotalTokens: 7}}, nil
}

func TestNew(t *testing.T) {
	s := New(&stubProvider{}, "m1", "")

	if s.ID() == "" {
		t.Error("session ID should not be empty")
	}
	if s.Model() != "m1" {
		t.Errorf("got model %q, want %q", s.Model(), "m1")
	}
	if len(s.Messages()) != 0 {
		t.Errorf("new session without persona should have 0 messages, got %d", len(s.Messages()))
	}
	if s.Sending() {
		t.Error("new session should be idle")
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	s1 := New(&stubProvider{}, "m1", "")
	s2 := New(&stubProvider{}, "m1", "")

	if s1.ID() == s2.ID() {
		t.Errorf("two sessions should have different IDs, both got %q", s1.ID())
	}
}

func TestSend_Success(t *testing.T) {
	provider := &stubProvider{replies: []stubReply{{content: "hello"}}}
	s := New(provider, "m1", "")

	reply, err := s.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if reply != "hello" {
		t.Fatalf("got reply %q, want %q", reply, "hello")
	}

	want := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}
	got := s.Messages()
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	sum := s.Summary()
	wantSum := Summary{TotalMessages: 2, UserMessages: 1, AssistantMessages: 1, Model: "m1"}
	if sum != wantSum {
		t.Fatalf("got summary %+v, want %+v", sum, wantSum)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected exactly one transport call, got %d", len(provider.requests))
	}
	if provider.requests[0].Model != "m1" {
		t.Errorf("got request model %q, want %q", provider.requests[0].Model, "m1")
	}
}

func TestSend_TransportFailureKeepsUserMessage(t *testing.T) {
	failure := &ai.TransportError{StatusCode: 500, Body: "boom"}
	provider := &stubProvider{replies: []stubReply{{err: failure}}}
	s := New(provider, "m1", "")

	_, err := s.Send(context.Background(), "hi")
	var te *ai.TransportError
	if !errors.As(err, &te) || te.StatusCode != 500 {
		t.Fatalf("expected TransportError(500), got %v", err)
	}

	got := s.Messages()
	if len(got) != 1 || got[0] != (Message{Role: RoleUser, Content: "hi"}) {
		t.Fatalf("expected transcript [user:hi], got %+v", got)
	}
	if s.Summary().AssistantMessages != 0 {
		t.Fatalf("expected no assistant messages, got %d", s.Summary().AssistantMessages)
	}
	if s.Sending() {
		t.Fatal("session should return to idle after a failure")
	}
}

func TestSend_ParseFailureKeepsUserMessage(t *testing.T) {
	provider := &stubProvider{replies: []stubReply{{err: &ai.ParseError{Reason: "missing content"}}}}
	s := New(provider, "m1", "Be terse.")

	if _, err := s.Send(context.Background(), "hi"); !ai.IsParseError(err) {
		t.Fatalf("expected ParseError, got %v", err)
	}

	sum := s.Summary()
	if sum.TotalMessages != 2 || sum.UserMessages != 1 || sum.AssistantMessages != 0 {
		t.Fatalf("unexpected summary after parse failure: %+v", sum)
	}
}

func TestSend_PersonaStaysFirst(t *testing.T) {
	provider := &stubProvider{}
	s := New(provider, "m1", "Be terse.")

	for i := 0; i < 3; i++ {
		if _, err := s.Send(context.Background(), fmt.Sprintf("q%d", i)); err != nil {
			t.Fatalf("Send() error: %v", err)
		}
	}

	msgs := s.Messages()
	if msgs[0] != (Message{Role: RoleSystem, Content: "Be terse."}) {
		t.Fatalf("expected persona at index 0, got %+v", msgs[0])
	}
	for i, m := range msgs[1:] {
		if m.Role == RoleSystem {
			t.Fatalf("unexpected system message at index %d", i+1)
		}
	}

	// every request carries the full transcript, persona first
	last := provider.requests[len(provider.requests)-1]
	if len(last.Messages) != 6 {
		t.Fatalf("expected 6 messages in last request, got %d", len(last.Messages))
	}
	if last.Messages[0].Role != "system" || last.Messages[0].Content != "Be terse." {
		t.Fatalf("expected persona first in request, got %+v", last.Messages[0])
	}
	if s.Persona() != "Be terse." {
		t.Fatalf("got persona %q", s.Persona())
	}
}

func TestTranscriptLength(t *testing.T) {
	tests := []struct {
		name    string
		persona string
		sends   int
		want    int
	}{
		{name: "no persona, none", sends: 0, want: 0},
		{name: "no persona, several", sends: 4, want: 8},
		{name: "persona, none", persona: "p", sends: 0, want: 1},
		{name: "persona, several", persona: "p", sends: 4, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&stubProvider{}, "m1", tt.persona)
			for i := 0; i < tt.sends; i++ {
				if _, err := s.Send(context.Background(), "x"); err != nil {
					t.Fatalf("Send() error: %v", err)
				}
			}

			sum := s.Summary()
			if sum.TotalMessages != tt.want || len(s.Messages()) != tt.want {
				t.Fatalf("got %d messages, want %d", sum.TotalMessages, tt.want)
			}
			extra := 0
			if tt.persona != "" {
				extra = 1
			}
			if sum.UserMessages+sum.AssistantMessages+extra != sum.TotalMessages {
				t.Fatalf("summary counts do not add up: %+v", sum)
			}
		})
	}
}

func TestTranscript_MixedOutcomes(t *testing.T) {
	provider := &stubProvider{replies: []stubReply{
		{content: "a"},
		{err: &ai.TransportError{Err: errors.New("connection reset")}},
		{content: "c"},
	}}
	s := New(provider, "m1", "")

	for _, text := range []string{"1", "2", "3"} {
		_, _ = s.Send(context.Background(), text)
	}

	want := []Role{RoleUser, RoleAssistant, RoleUser, RoleUser, RoleAssistant}
	got := s.Messages()
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i, role := range want {
		if got[i].Role != role {
			t.Errorf("message %d: got role %q, want %q", i, got[i].Role, role)
		}
	}
}

func TestSummary_Idempotent(t *testing.T) {
	s := New(&stubProvider{}, "m1", "p")
	if _, err := s.Send(context.Background(), "x"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	first := s.Summary()
	second := s.Summary()
	if first != second {
		t.Fatalf("summary changed between calls: %+v vs %+v", first, second)
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := New(&stubProvider{}, "m1", "p")

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	if s.Messages()[0].Content != "p" {
		t.Fatal("mutating the returned slice should not affect the transcript")
	}
}

func TestLastReply(t *testing.T) {
	s := New(&stubProvider{replies: []stubReply{{content: "first"}, {content: "second"}}}, "m1", "")

	if _, ok := s.LastReply(); ok {
		t.Fatal("expected no reply before any send")
	}
	_, _ = s.Send(context.Background(), "a")
	_, _ = s.Send(context.Background(), "b")

	reply, ok := s.LastReply()
	if !ok || reply != "second" {
		t.Fatalf("got %q, %v; want %q", reply, ok, "second")
	}
}

type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
}

func (p *blockingProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	close(p.entered)
	<-p.release
	return ai.ChatResponse{Content: "done", Model: req.Model}, nil
}

func TestSend_RejectsConcurrentSend(t *testing.T) {
	provider := &blockingProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(provider, "m1", "")

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		errCh <- err
	}()

	<-provider.entered
	if !s.Sending() {
		t.Fatal("expected session to report an in-flight send")
	}

	_, err := s.Send(context.Background(), "second")
	if !errors.Is(err, ErrSendInFlight) {
		t.Fatalf("expected ErrSendInFlight, got %v", err)
	}

	close(provider.release)
	if err := <-errCh; err != nil {
		t.Fatalf("first Send() error: %v", err)
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("rejected send must not touch the transcript, got %+v", msgs)
	}
	if s.Sending() {
		t.Fatal("session should be idle after send completes")
	}
}
