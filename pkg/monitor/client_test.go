package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.matchers/pkg/assertion"
	"digital.vasic.matchers/pkg/matcher"
)

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:8090/", WithTimeout(time.Second))

	assert.Equal(t, "http://localhost:8090", c.baseURL)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Equal(t, "ws://localhost:8090/events", c.eventsURL())
	assert.Equal(t, "wss://x/events", NewClient("https://x").eventsURL())

	hc := &http.Client{}
	assert.Same(t, hc, NewClient("http://x", WithHTTPClient(hc)).httpClient)
	assert.NotNil(t, NewClient("http://x", WithHTTPClient(nil)).httpClient)
}

func TestClient_HealthAndStats(t *testing.T) {
	collector := NewEventCollector()
	collector.Emit(OutcomeEvent{Type: EventPassed})
	ts := httptest.NewServer(NewServer("", collector, nil).Handler())
	defer ts.Close()

	c := NewClient(ts.URL)
	require.NoError(t, c.Health(context.Background()))

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Passed)
}

func TestClient_StatusErrors(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	c := NewClient(ts.URL)
	err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	_, err = c.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewClient(url)
	assert.Error(t, c.Health(context.Background()))

	err := c.Subscribe(context.Background(), func(Message) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial events")
}

func TestClient_Subscribe(t *testing.T) {
	collector := NewEventCollector()
	server := NewServer("", collector, nil)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	var (
		mu       sync.Mutex
		messages []Message
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- NewClient(ts.URL).Subscribe(ctx, func(m Message) {
			mu.Lock()
			messages = append(messages, m)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(messages) == 1
	}, 2*time.Second, 10*time.Millisecond)

	engine := assertion.NewEngine(assertion.WithObserver(collector.Observe))
	for i := 1; i <= 3; i++ {
		_, err := engine.Evaluate(i, assertion.Affirm, matcher.BeGreaterThan(1))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(messages) == 4
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe did not return")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, KindStats, messages[0].Kind)
	_, err := EventOf(messages[0])
	assert.Error(t, err)

	types := make([]EventType, 0, 3)
	for _, m := range messages[1:] {
		event, err := EventOf(m)
		require.NoError(t, err)
		types = append(types, event.Type)
	}
	assert.Equal(t, []EventType{EventFailed, EventPassed, EventPassed}, types)
}

func TestClient_SubscribeEndsOnServerStop(t *testing.T) {
	server := NewServer("", NewEventCollector(), nil)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	done := make(chan error, 1)
	go func() {
		done <- NewClient(ts.URL).Subscribe(context.Background(), func(Message) {})
	}()

	require.Eventually(t, func() bool {
		return server.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, server.Stop(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe did not return")
	}
}
