package ctrlsrv

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SyntropyNet/udp-probe/agent/udpclient"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

type fakeController struct {
	sync.Mutex
	snap   udpclient.Snapshot
	starts int
}

func (f *fakeController) Snapshot() udpclient.Snapshot {
	f.Lock()
	defer f.Unlock()
	return f.snap
}

func (f *fakeController) Start() bool {
	f.Lock()
	defer f.Unlock()
	f.starts++
	f.snap.Started = true
	return true
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %s", url, err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func request(t *testing.T, ws *websocket.Conn, req string) map[string]interface{} {
	t.Helper()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
		t.Fatalf("write: %s", err)
	}
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %s", err)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal %s: %s", raw, err)
	}
	return resp
}

func TestStartCommand(t *testing.T) {
	ctrl := &fakeController{}
	srv := httptest.NewServer(New(0, ctrl).Handler())
	defer srv.Close()

	resp := request(t, dial(t, srv), `{"id":"1","type":"START"}`)
	if resp["id"] != "1" || resp["type"] != "START" {
		t.Errorf("unexpected header %v", resp)
	}
	data := resp["data"].(map[string]interface{})
	if data["started"] != true {
		t.Errorf("expected started, got %v", data)
	}
	ctrl.Lock()
	defer ctrl.Unlock()
	if ctrl.starts != 1 {
		t.Errorf("Start called %d times", ctrl.starts)
	}
}

func TestGetStatsCommand(t *testing.T) {
	ctrl := &fakeController{snap: udpclient.Snapshot{
		TotalSent:     10,
		TotalReceived: 8,
		TotalLost:     2,
		LastSequence:  9,
		MinRoundTrip:  120,
		MaxRoundTrip:  900,
	}}
	srv := httptest.NewServer(New(0, ctrl).Handler())
	defer srv.Close()

	resp := request(t, dial(t, srv), `{"id":"abc","type":"GET_STATS"}`)
	raw, _ := json.Marshal(resp["data"])
	var got udpclient.Snapshot
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ctrl.snap, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownCommand(t *testing.T) {
	srv := httptest.NewServer(New(0, &fakeController{}).Handler())
	defer srv.Close()
	ws := dial(t, srv)

	resp := request(t, ws, `{"id":"7","type":"REBOOT"}`)
	if resp["type"] != "ERROR" || resp["id"] != "7" {
		t.Errorf("expected ERROR response, got %v", resp)
	}
	data := resp["data"].(map[string]interface{})
	if data["type"] != "REBOOT" || data["error"] != ErrUnknownCommand.Error() {
		t.Errorf("unexpected error data %v", data)
	}

	resp = request(t, ws, `not json`)
	if resp["type"] != "ERROR" {
		t.Errorf("expected ERROR on malformed request, got %v", resp)
	}
}

func TestPushOnlyOnChange(t *testing.T) {
	ctrl := &fakeController{snap: udpclient.Snapshot{TotalSent: 1}}
	s := New(0, ctrl)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	ws := dial(t, srv)

	// let the server register the client
	deadline := time.Now().Add(2 * time.Second)
	for {
		s.Lock()
		n := len(s.clients)
		s.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client was not registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	s.pushStats()
	s.pushStats()
	ctrl.Lock()
	ctrl.snap.TotalSent = 2
	ctrl.Unlock()
	s.pushStats()

	var sent []float64
	for i := 0; i < 2; i++ {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %s", err)
		}
		var msg statsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.MsgType != msgStats {
			t.Errorf("expected %s, got %s", msgStats, msg.MsgType)
		}
		sent = append(sent, float64(msg.Data.TotalSent))
	}
	if diff := cmp.Diff([]float64{1, 2}, sent); diff != "" {
		t.Errorf("pushed stats mismatch (-want +got):\n%s", diff)
	}

	ws.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Error("unexpected push of unchanged statistics")
	}
}
