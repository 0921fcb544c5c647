package status

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/connect/controller"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.Observe(controller.Event{Type: controller.EventMerge, Count: 2})
	m.Observe(controller.Event{Type: controller.EventDoor, Count: 3})
	m.Observe(controller.Event{Type: controller.EventBlocked})
	m.Observe(controller.Event{Type: controller.EventTurn, Turn: 1})
	m.Observe(controller.Event{Type: controller.EventTurn, Turn: 2, Complete: true})
	m.Observe(controller.Event{Type: controller.EventSolved, Turn: 2})
	m.Observe(controller.Event{Type: controller.EventTurn, Turn: 1}) // undo

	assert.Equal(t, 2.0, testutil.ToFloat64(m.merges))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.doorsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blockedMoves))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.turns))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.currentTurn))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.solved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.solves))

	m.Observe(controller.Event{Type: controller.EventRestart, Reason: "error"})
	m.Observe(controller.Event{Type: controller.EventRestart, Reason: "restart"})
	m.Observe(controller.Event{Type: controller.EventQuickShutdown, Count: 2})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.restarts.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.quickShutdowns))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.currentTurn))

	expected := `
# HELP connect_game_merges_total Shapes absorbed by merges
# TYPE connect_game_merges_total counter
connect_game_merges_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "connect_game_merges_total"))
}

func TestServer_ServesMetrics(t *testing.T) {
	m := NewMetrics()
	m.Observe(controller.Event{Type: controller.EventBlocked})

	srv := NewServer("127.0.0.1:0", m, nil)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "connect_game_blocked_moves_total 1")

	require.NoError(t, srv.Stop())
	assert.NoError(t, srv.Stop(), "stop is idempotent")
}

func TestServer_DisabledWithoutAddress(t *testing.T) {
	srv := NewServer("", NewMetrics(), nil)
	require.NoError(t, srv.Start())
	assert.Empty(t, srv.Addr())
	assert.NoError(t, srv.Stop())
}
