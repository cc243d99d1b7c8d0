package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSend(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "", nil)
	n.APIBase = srv.URL
	if err := n.SendWithRetry(context.Background(), "hi", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["chat_id"] != "42" || got["text"] != "hi" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestSendWithRetry_GivesUp(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("T", "1", "", nil)
	n.APIBase = srv.URL
	if err := n.SendWithRetry(context.Background(), "x", 0); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
}

func TestEnabled(t *testing.T) {
	if NewTelegramNotifier("", "", "", nil).Enabled() {
		t.Error("empty notifier should be disabled")
	}
	var n *TelegramNotifier
	if n.Enabled() {
		t.Error("nil notifier should be disabled")
	}
}

func TestFormatters(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	down := FormatProviderDown("yahoo", "SPX", "provider_failure", at)
	if !strings.Contains(down, "yahoo") || !strings.Contains(down, "provider_failure") || !strings.Contains(down, "2024-05-01 09:30") {
		t.Errorf("unexpected down message %q", down)
	}
	up := FormatProviderRecovered("yahoo", "SPX", at, 90*time.Second)
	if !strings.Contains(up, "recovered") || !strings.Contains(up, "1m30s") {
		t.Errorf("unexpected recovery message %q", up)
	}
}

func TestSend_APIErrorDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("T", "1", "", nil)
	n.APIBase = srv.URL
	err := n.Send(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("expected API description in error, got %v", err)
	}
}
