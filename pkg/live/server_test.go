package live

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/retain/examples/counter"
	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/vdom"
)

func newTestServer(t *testing.T, metrics bool) *httptest.Server {
	t.Helper()
	s, err := New(Config{
		Root:    func() *vdom.Node { return vdom.C(counter.Counter) },
		Metrics: metrics,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, codec string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?codec=" + codec
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn, codec Codec) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	typ, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if typ != codec.MessageType() {
		t.Errorf("message type = %d, want %d", typ, codec.MessageType())
	}
	f, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return f
}

func writeFrame(t *testing.T, conn *websocket.Conn, codec Codec, f Frame) {
	t.Helper()
	data, err := codec.Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(codec.MessageType(), data); err != nil {
		t.Fatal(err)
	}
}

func findTag(patches []canvas.Patch, tag string) canvas.Handle {
	for _, p := range patches {
		if p.Op == canvas.PatchCreateElement && p.Tag == tag {
			return p.Handle
		}
	}
	return canvas.NoHandle
}

func TestSessionClickRoundTrip(t *testing.T) {
	for _, codec := range []Codec{JSONCodec{}, MsgpackCodec{}} {
		t.Run(codec.Name(), func(t *testing.T) {
			srv := newTestServer(t, false)
			conn := dial(t, srv, codec.Name())

			init := readFrame(t, conn, codec)
			if init.Type != FrameInit || init.Root == canvas.NoHandle {
				t.Fatalf("first frame = %+v, want init", init)
			}
			btn := findTag(init.Patches, "button")
			if btn == canvas.NoHandle {
				t.Fatalf("no button in init patches: %v", init.Patches)
			}

			writeFrame(t, conn, codec, Frame{Type: FrameClick, Handle: btn})

			f := readFrame(t, conn, codec)
			if f.Type != FramePatch {
				t.Fatalf("frame = %+v, want patch", f)
			}
			var replaced, created bool
			for _, p := range f.Patches {
				switch {
				case p.Op == canvas.PatchReplace:
					replaced = true
				case p.Op == canvas.PatchCreateText && p.Value == "1":
					created = true
				}
			}
			if !replaced || !created {
				t.Errorf("patches = %v, want the count text replaced with 1", f.Patches)
			}
			if f.Seq <= init.Seq {
				t.Errorf("seq = %d, want > %d", f.Seq, init.Seq)
			}
		})
	}
}

func TestSessionRejectsBadFrames(t *testing.T) {
	srv := newTestServer(t, false)
	conn := dial(t, srv, "json")
	codec := JSONCodec{}
	readFrame(t, conn, codec)

	tests := []struct {
		name string
		send []byte
		code string
	}{
		{"garbage", []byte("{not json"), "E301"},
		{"unknown type", []byte(`{"type":"hover","handle":1}`), "E302"},
		{"unknown handle", []byte(`{"type":"click","handle":99999}`), "E104"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, tt.send); err != nil {
				t.Fatal(err)
			}
			f := readFrame(t, conn, codec)
			if f.Type != FrameError || f.Code != tt.code {
				t.Errorf("frame = %+v, want error %s", f, tt.code)
			}
		})
	}

	writeFrame(t, conn, codec, Frame{Type: FramePing})
	if f := readFrame(t, conn, codec); f.Type != FramePong {
		t.Errorf("frame = %+v, want pong", f)
	}
}

func TestIndexAndMetrics(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `new WebSocket(`) || !strings.Contains(string(body), "<title>retain</title>") {
		t.Errorf("index page missing client:\n%s", body)
	}

	conn := dial(t, srv, "json")
	readFrame(t, conn, JSONCodec{})

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{"retain_render_ops_total", "retain_live_sessions_active 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without Root should fail")
	}
	root := func() *vdom.Node { return vdom.Div() }
	if _, err := New(Config{Root: root, Codec: "xml"}); err == nil {
		t.Error("New() with an unknown codec should fail")
	}
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestClosedSessionReturnsRegistryEntries(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := New(Config{
		Root:     func() *vdom.Node { return vdom.C(counter.App) },
		Metrics:  true,
		Registry: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	codec := JSONCodec{}
	conn := dial(t, srv, codec.Name())
	init := readFrame(t, conn, codec)
	writeFrame(t, conn, codec, Frame{Type: FrameClick, Handle: findTag(init.Patches, "button")})
	readFrame(t, conn, codec)

	if n := gaugeValue(t, reg, "retain_render_registry_entries"); n <= 0 {
		t.Fatalf("registry entries while connected = %v, want > 0", n)
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for s.SessionCount() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("session still tracked after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if n := gaugeValue(t, reg, "retain_render_registry_entries"); n != 0 {
		t.Errorf("registry entries after disconnect = %v, want 0", n)
	}
	if n := gaugeValue(t, reg, "retain_live_sessions_active"); n != 0 {
		t.Errorf("active sessions after disconnect = %v, want 0", n)
	}
}

func TestMountPanicClosesConnection(t *testing.T) {
	broken := func(vdom.Scope, vdom.Props) *vdom.Node { panic("broken component") }
	s, err := New(Config{
		Root:   func() *vdom.Node { return vdom.C(broken) },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "json")
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	if err == nil {
		t.Fatal("ReadMessage() succeeded, want the connection closed")
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		t.Error("connection left open after the mount panicked")
	}
}
