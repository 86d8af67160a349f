package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.matchers/pkg/assertion"
	"digital.vasic.matchers/pkg/matcher"
)

func dialEvents(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestNewServer(t *testing.T) {
	collector := NewEventCollector()
	s := NewServer(":8080", collector, nil)

	assert.Equal(t, ":8080", s.addr)
	assert.Same(t, collector, s.collector)
	assert.NotNil(t, s.logger)
	assert.Equal(t, 0, s.ClientCount())
}

func TestServer_Health(t *testing.T) {
	s := NewServer("", NewEventCollector(), nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Stats(t *testing.T) {
	collector := NewEventCollector()
	collector.Emit(OutcomeEvent{Type: EventPassed})
	collector.Emit(OutcomeEvent{Type: EventErrored})
	s := NewServer("", collector, nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var stats CollectorStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Passed)
	assert.Equal(t, 1, stats.Errored)
}

func TestServer_EventsRequiresUpgrade(t *testing.T) {
	s := NewServer("", NewEventCollector(), nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, s.ClientCount())
}

func TestServer_StreamsEvents(t *testing.T) {
	collector := NewEventCollector()
	collector.Emit(OutcomeEvent{Type: EventFailed})
	s := NewServer("", collector, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialEvents(t, ts)

	first := readMessage(t, conn)
	assert.Equal(t, KindStats, first.Kind)
	require.NotNil(t, first.Stats)
	assert.Equal(t, 1, first.Stats.Failed)
	assert.Equal(t, 1, s.ClientCount())

	engine := assertion.NewEngine(assertion.WithObserver(collector.Observe))
	_, err := engine.Evaluate("jose@tutsplus.com", assertion.Affirm,
		matcher.Must(matcher.MatchRegexp(`^\w+@\w+\.[a-z]{2,4}$`)))
	require.NoError(t, err)
	_, err = engine.Evaluate(3, assertion.Affirm, matcher.Equal(4))
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, KindEvent, msg.Kind)
	require.NotNil(t, msg.Event)
	assert.Equal(t, EventPassed, msg.Event.Type)
	assert.Equal(t, "match", msg.Event.Matcher)

	msg = readMessage(t, conn)
	require.NotNil(t, msg.Event)
	assert.Equal(t, EventFailed, msg.Event.Type)
	assert.Equal(t, "expected 3 to equal 4", msg.Event.Message)
}

func TestServer_ConcurrentEmitsArriveInOrder(t *testing.T) {
	collector := NewEventCollector()
	s := NewServer("", collector, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	const emitters = 40
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < emitters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			collector.Emit(OutcomeEvent{Type: EventPassed, Matcher: fmt.Sprintf("m%d", i)})
		}(i)
	}

	close(start)
	conn := dialEvents(t, ts)
	first := readMessage(t, conn)
	require.Equal(t, KindStats, first.Kind)
	require.NotNil(t, first.Stats)
	wg.Wait()

	already := first.Stats.Total
	received := make([]string, 0, emitters-already)
	for len(received) < emitters-already {
		msg := readMessage(t, conn)
		require.NotNil(t, msg.Event)
		received = append(received, msg.Event.Matcher)
	}

	recorded := make([]string, 0, emitters)
	for _, e := range collector.Events() {
		recorded = append(recorded, e.Matcher)
	}
	assert.Equal(t, recorded[already:], received)
}

func TestServer_ClientDisconnect(t *testing.T) {
	s := NewServer("", NewEventCollector(), nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialEvents(t, ts)
	readMessage(t, conn)
	require.Equal(t, 1, s.ClientCount())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return s.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_StartAndCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	s := NewServer(addr, NewEventCollector(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body) == "ok"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_Start_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	s := NewServer(listener.Addr().String(), NewEventCollector(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = s.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monitor server")
}

func TestServer_Stop_BeforeStart(t *testing.T) {
	s := NewServer("", NewEventCollector(), nil)
	assert.NoError(t, s.Stop(context.Background()))
}
