package ai

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTransportError_Status(t *testing.T) {
	err := &TransportError{StatusCode: 500, Body: "upstream exploded"}

	if got := err.Error(); got != "HTTP 500: upstream exploded" {
		t.Fatalf("unexpected message %q", got)
	}
	if StatusCode(err) != 500 {
		t.Fatalf("expected status 500, got %d", StatusCode(err))
	}
}

func TestTransportError_Network(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("send: %w", &TransportError{Err: cause})

	if !IsTransportError(err) {
		t.Fatal("expected wrapped TransportError to be detected")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if StatusCode(err) != 0 {
		t.Fatalf("expected status 0 for network error, got %d", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "network error") {
		t.Fatalf("expected network error message, got %q", err.Error())
	}
}

func TestParseError(t *testing.T) {
	err := fmt.Errorf("send: %w", &ParseError{Reason: "missing choices[0].message.content"})

	if !IsParseError(err) {
		t.Fatal("expected ParseError to be detected")
	}
	if IsTransportError(err) {
		t.Fatal("ParseError must not be reported as TransportError")
	}
	if !strings.Contains(err.Error(), "choices[0].message.content") {
		t.Fatalf("expected reason in message, got %q", err.Error())
	}
}
