package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"santaos/internal/domain"
)

func TestReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server message", &domain.ServerError{Status: 500, Method: "GET", Path: "/tasks", Message: "db down"}, "db down"},
		{"server no message", &domain.ServerError{Status: 502}, "Bad Gateway"},
		{"wrapped server", fmt.Errorf("fetch: %w", &domain.ServerError{Status: 400, Message: "bad status"}), "bad status"},
		{"timeout", &domain.NetworkError{Method: "GET", Path: "/tasks", Err: context.DeadlineExceeded}, "request timed out"},
		{"network", &domain.NetworkError{Err: errors.New("connection refused")}, "connection refused"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.Reason(tc.err); got != tc.want {
				t.Fatalf("Reason = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDuplicateInFlight_Is(t *testing.T) {
	err := fmt.Errorf("submit: %w", &domain.DuplicateInFlightError{Kind: domain.KindTasks, ResourceID: "a", Op: domain.OpAssign})
	if !errors.Is(err, domain.ErrDuplicateInFlight) {
		t.Fatalf("expected errors.Is to match ErrDuplicateInFlight: %v", err)
	}
	if got, want := (&domain.DuplicateInFlightError{Kind: domain.KindWishlists, Op: domain.OpCreate}).Error(), "wishlists (new): create already in flight"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := &domain.NetworkError{Method: "PATCH", Path: "/tasks/a", Err: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Fatal("expected wrapped context.Canceled")
	}
	if err.Timeout() {
		t.Fatal("cancellation is not a timeout")
	}
}
