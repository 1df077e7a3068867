package auth

import (
	"context"
	"testing"
)

func TestAuthContextRoundTrip(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{UserID: 7, SessionID: 42})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context to be present")
	}
	if ac.UserID != 7 || ac.SessionID != 42 {
		t.Errorf("got %+v", ac)
	}
	if UserID(ctx) != 7 {
		t.Errorf("UserID = %d, want 7", UserID(ctx))
	}
}

func TestAuthContextMissing(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no auth context")
	}
	if UserID(ctx) != 0 {
		t.Error("UserID should be zero without auth context")
	}
}
