package model

import "testing"

func TestCanTransition_LinearChain(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusNew, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusCompleted, true},
		{OrderStatusNew, OrderStatusPreparing, false},
		{OrderStatusNew, OrderStatusReady, false},
		{OrderStatusConfirmed, OrderStatusNew, false},
		{OrderStatusReady, OrderStatusConfirmed, false},
		{OrderStatusNew, OrderStatusNew, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransition_CancelledFromAnyNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusNew, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if !CanTransition(from, OrderStatusCancelled) {
			t.Errorf("CanTransition(%s, CANCELLED) = false, want true", from)
		}
	}
}

func TestCanTransition_TerminalStatesRejectEverything(t *testing.T) {
	all := []OrderStatus{
		OrderStatusNew, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled,
	}

	for _, from := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("CanTransition(%s, %s) = true, want false", from, to)
			}
		}
	}
}

func TestCanTransition_UnknownTarget(t *testing.T) {
	if CanTransition(OrderStatusNew, OrderStatus("SHIPPED")) {
		t.Errorf("transition to unknown status must be rejected")
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	if !OrderStatusPreparing.IsValid() {
		t.Errorf("PREPARING must be valid")
	}
	if OrderStatus("").IsValid() {
		t.Errorf("empty status must be invalid")
	}
	if OrderStatus("shipped").IsValid() {
		t.Errorf("unknown status must be invalid")
	}
}
