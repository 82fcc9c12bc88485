package chatbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLocalResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		wantIn  string
	}{
		{"hello there", "How can I help"},
		{"do you sell laptops?", "Laptops"},
		{"where is my order", "track your order"},
		{"do you offer free shipping?", "over $50"},
		{"how long is the warranty", "1-year warranty"},
		{"tell me a joke", "virus"},
		{"HOW MUCH does it cost", "Prices vary"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := localResponse(tt.message)
			if !ok {
				t.Fatalf("no local match for %q", tt.message)
			}
			if !strings.Contains(got, tt.wantIn) {
				t.Fatalf("reply %q does not contain %q", got, tt.wantIn)
			}
		})
	}
}

func TestLocalResponse_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// "free shipping" sits above the generic "shipping" rule
	got, ok := localResponse("is there free shipping on this?")
	if !ok || !strings.Contains(got, "over $50") {
		t.Fatalf("got %q, want the free-shipping rule", got)
	}
}

func TestLocalResponse_NoMatch(t *testing.T) {
	t.Parallel()

	if got, ok := localResponse("qwertyuiop zxcvbnm"); ok {
		t.Fatalf("unexpected match: %q", got)
	}
}

func TestReply_FallbackWithoutAPI(t *testing.T) {
	t.Parallel()

	r := New("")
	if got := r.Reply(context.Background(), "qwertyuiop zxcvbnm"); got != fallbackReply {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestReply_RemoteAPI(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"from the api"}`))
	}))
	defer srv.Close()

	r := New(srv.URL)
	if got := r.Reply(context.Background(), "qwertyuiop zxcvbnm"); got != "from the api" {
		t.Fatalf("got %q, want remote reply", got)
	}
}

func TestReply_RemoteFailureDegrades(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close() // refuse connections

	r := New(srv.URL)
	if got := r.Reply(context.Background(), "qwertyuiop zxcvbnm"); got != fallbackReply {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestReply_LocalBeatsRemote(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	r := New(srv.URL)
	if got := r.Reply(context.Background(), "hello"); !strings.Contains(got, "How can I help") {
		t.Fatalf("got %q", got)
	}
	if called {
		t.Fatal("remote API called despite local match")
	}
}
