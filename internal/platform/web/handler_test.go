package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/dogdash/internal/core"
)

type frame struct {
	Type    string   `json:"type"`
	Tick    uint64   `json:"tick"`
	State   string   `json:"state"`
	Attempt int      `json:"attempt"`
	Course  string   `json:"course"`
	Events  []string `json:"events"`
	Actor   struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"actor"`
}

func dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()

	handler := NewHandler(HandlerConfig{TickRate: 120, Seed: 42})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	t.Cleanup(srv.Close)

	parsed, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}
	parsed.Scheme = "ws"
	parsed.Path = "/ws"
	parsed.RawQuery = query

	conn, resp, err := websocket.DefaultDialer.Dial(parsed.String(), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	return f
}

// waitFor reads frames until match returns true, giving up after limit.
func waitFor(t *testing.T, conn *websocket.Conn, limit int, match func(frame) bool) frame {
	t.Helper()
	for i := 0; i < limit; i++ {
		if f := readFrame(t, conn); match(f) {
			return f
		}
	}
	t.Fatalf("no matching frame within %d frames", limit)
	return frame{}
}

func send(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("failed to send %s: %v", payload, err)
	}
}

func TestHandleInitialFrame(t *testing.T) {
	conn := dial(t, "")

	f := readFrame(t, conn)
	if f.Type != TypeState {
		t.Errorf("Type = %q, want %q", f.Type, TypeState)
	}
	if f.Tick != 0 {
		t.Errorf("Tick = %d, want 0", f.Tick)
	}
	if f.State != "start" {
		t.Errorf("State = %q, want start", f.State)
	}
	if f.Attempt != 0 {
		t.Errorf("Attempt = %d, want 0", f.Attempt)
	}
}

func TestHandleJumpStartsRun(t *testing.T) {
	conn := dial(t, "")
	readFrame(t, conn)

	send(t, conn, `{"type":"jump"}`)

	started := waitFor(t, conn, 600, func(f frame) bool { return f.State == "playing" })
	if started.Attempt != 1 {
		t.Errorf("Attempt = %d, want 1", started.Attempt)
	}

	found := false
	for _, e := range started.Events {
		if e == string(core.EventStart) {
			found = true
		}
	}
	if !found {
		t.Errorf("first playing frame events = %v, want %q", started.Events, core.EventStart)
	}

	moved := waitFor(t, conn, 600, func(f frame) bool { return f.Actor.X > started.Actor.X })
	if moved.Tick <= started.Tick {
		t.Errorf("tick did not advance: %d -> %d", started.Tick, moved.Tick)
	}
}

func TestHandleIgnoresBadMessages(t *testing.T) {
	conn := dial(t, "")
	readFrame(t, conn)

	send(t, conn, `not json`)
	send(t, conn, `{"type":"dance"}`)
	send(t, conn, `{"type":"jump"}`)

	f := waitFor(t, conn, 600, func(f frame) bool { return f.State == "playing" })
	if f.Attempt != 1 {
		t.Errorf("Attempt = %d, want 1", f.Attempt)
	}
}

func TestHandleLevelQuery(t *testing.T) {
	conn := dial(t, "level=02-park")

	f := readFrame(t, conn)
	if f.Course != "02-park" {
		t.Errorf("Course = %q, want 02-park", f.Course)
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		typ    string
		want   core.Action
		wantOK bool
	}{
		{TypeJump, core.ActionJump, true},
		{TypeRestart, core.ActionRestart, true},
		{TypePause, core.ActionPause, true},
		{"", core.ActionNone, false},
		{"JUMP", core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, ok := actionFor(tt.typ)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("actionFor(%q) = %v, %v; want %v, %v", tt.typ, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMuxServesClient(t *testing.T) {
	srv := httptest.NewServer(NewMux(DefaultServerConfig()))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "<title>Dog Dash</title>") {
		t.Error("index page missing title")
	}
}
