package input

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/connect/core"
	"github.com/lixenwraith/connect/geometry"
	"github.com/lixenwraith/connect/mailbox"
)

func key(k tcell.Key, r rune, mod tcell.ModMask) Event {
	ev, ok := Classify(tcell.NewEventKey(k, r, mod))
	if !ok {
		panic("key event not classified")
	}
	return ev
}

func TestClassify(t *testing.T) {
	ev, ok := Classify(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, 'u', ev.Rune)

	ev, ok = Classify(tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, Event{Type: EventMouse, Pos: geometry.Point{X: 4, Y: 7}}, ev)

	_, ok = Classify(tcell.NewEventMouse(4, 7, tcell.ButtonNone, tcell.ModNone))
	assert.False(t, ok, "release and plain motion are ignored")
	_, ok = Classify(tcell.NewEventMouse(4, 7, tcell.Button2, tcell.ModNone))
	assert.False(t, ok)

	ev, ok = Classify(tcell.NewEventResize(80, 24))
	require.True(t, ok)
	assert.Equal(t, geometry.Size{Width: 80, Height: 24}, ev.Size)

	_, ok = Classify(tcell.NewEventInterrupt(nil))
	assert.False(t, ok)
}

func TestDefaultKeyTable(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   Event
		want Intent
	}{
		{"quit", key(tcell.KeyRune, 'q', tcell.ModNone), Intent{Type: IntentQuit}},
		{"restart", key(tcell.KeyRune, 'n', tcell.ModNone), Intent{Type: IntentRestart}},
		{"mute", key(tcell.KeyRune, 'm', tcell.ModNone), Intent{Type: IntentToggleMute}},
		{"numpad up", key(tcell.KeyRune, '8', tcell.ModNone), move(geometry.Up)},
		{"numpad up right", key(tcell.KeyRune, '9', tcell.ModNone), move(geometry.UpRight)},
		{"numpad down right", key(tcell.KeyRune, '3', tcell.ModNone), move(geometry.DownRight)},
		{"numpad down left", key(tcell.KeyRune, '1', tcell.ModNone), move(geometry.DownLeft)},
		{"numpad up left", key(tcell.KeyRune, '7', tcell.ModNone), move(geometry.UpLeft)},
		{"arrow left", key(tcell.KeyLeft, 0, tcell.ModNone), move(geometry.Left)},
		{"arrow down", key(tcell.KeyDown, 0, tcell.ModNone), move(geometry.Down)},
		{"select 5", key(tcell.KeyRune, '5', tcell.ModNone), Intent{Type: IntentSelect}},
		{"select space", key(tcell.KeyRune, ' ', tcell.ModNone), Intent{Type: IntentSelect}},
		{"select enter", key(tcell.KeyEnter, 0, tcell.ModNone), Intent{Type: IntentSelect}},
		{"undo", key(tcell.KeyRune, 'u', tcell.ModNone), Intent{Type: IntentUndo}},
		{"redo", key(tcell.KeyRune, 'r', tcell.ModNone), Intent{Type: IntentRedo}},
		{"save", key(tcell.KeyRune, 's', tcell.ModNone), Intent{Type: IntentSave}},
		{"load", key(tcell.KeyRune, 'l', tcell.ModNone), Intent{Type: IntentLoad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := kt.Resolve(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_IgnoresModifiedAndUnbound(t *testing.T) {
	kt := DefaultKeyTable()

	_, ok := kt.Resolve(key(tcell.KeyRune, 'q', tcell.ModAlt))
	assert.False(t, ok)
	_, ok = kt.Resolve(key(tcell.KeyUp, 0, tcell.ModShift))
	assert.False(t, ok)
	_, ok = kt.Resolve(key(tcell.KeyRune, 'z', tcell.ModNone))
	assert.False(t, ok)

	in, ok := kt.Resolve(Event{Type: EventMouse, Pos: geometry.Point{X: 2, Y: 3}})
	require.True(t, ok)
	assert.Equal(t, Intent{Type: IntentCursor, Pos: geometry.Point{X: 2, Y: 3}}, in)

	in, ok = kt.Resolve(Event{Type: EventResize, Size: geometry.Size{Width: 10, Height: 5}})
	require.True(t, ok)
	assert.Equal(t, IntentResize, in.Type)
}

func TestBindings_Merge(t *testing.T) {
	override, err := ParseBindings(map[string]string{
		"w":     "move_up",
		"space": "none",
		"PgUp":  "move_up_right",
	})
	require.NoError(t, err)

	kt := MergeKeyTable(DefaultKeyTable(), override)

	in, ok := kt.Resolve(key(tcell.KeyRune, 'w', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, move(geometry.Up), in)

	_, ok = kt.Resolve(key(tcell.KeyRune, ' ', tcell.ModNone))
	assert.False(t, ok, "unbound by none")

	in, ok = kt.Resolve(key(tcell.KeyPgUp, 0, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, move(geometry.UpRight), in)

	// Defaults survive and the base table is untouched
	_, ok = kt.Resolve(key(tcell.KeyRune, '5', tcell.ModNone))
	assert.True(t, ok)
	_, ok = DefaultKeyTable().Resolve(key(tcell.KeyRune, 'w', tcell.ModNone))
	assert.False(t, ok)
}

func TestBindings_Errors(t *testing.T) {
	_, err := ParseBindings(map[string]string{"w": "jump"})
	assert.ErrorContains(t, err, "unknown action")

	_, err = ParseBindings(map[string]string{"Hyper": "quit"})
	assert.ErrorContains(t, err, "unknown key name")
}

type inputHarness struct {
	src    ChanSource
	ctrl   *mailbox.Sync[Control]
	out    *mailbox.Sync[Event]
	handle *core.Handle
}

func startInput(t *testing.T) *inputHarness {
	t.Helper()
	h := &inputHarness{
		src:  make(ChanSource, 8),
		ctrl: mailbox.NewSync[Control]("ctrl->input"),
		out:  mailbox.NewSync[Event]("input->ctrl"),
	}
	w := NewWorker(WorkerConfig{
		Source: h.src,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, h.ctrl, h.out)
	h.handle = core.Spawn(w.Name(), w.Run)
	return h
}

func TestWorker_ForwardsClassifiedEvents(t *testing.T) {
	h := startInput(t)

	h.src <- tcell.NewEventInterrupt(nil)
	h.src <- tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone)

	ev, ok, err := h.out.RecvTimeout(2 * time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 'u', ev.Rune, "unclassified events are skipped")

	require.NoError(t, h.ctrl.Send(ControlShutdown))
	require.NoError(t, h.handle.Join())
	assert.True(t, h.out.Closed())
}

func TestWorker_ShutdownWhileEventPending(t *testing.T) {
	h := startInput(t)

	// Nobody reads the event, so the worker blocks handing it off
	h.src <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, h.ctrl.Send(ControlShutdown))
	select {
	case <-h.handle.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.NoError(t, h.handle.Join())
}

func TestWorker_SourceClosed(t *testing.T) {
	h := startInput(t)
	close(h.src)
	assert.ErrorIs(t, h.handle.Join(), ErrSourceClosed)
	assert.True(t, h.ctrl.Closed())
}

func TestScreenSource(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	src := NewScreenSource(screen, 4)
	screen.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-src.Events():
			if k, ok := ev.(*tcell.EventKey); ok {
				assert.Equal(t, 'l', k.Rune())
				screen.Fini()
				return
			}
		case <-deadline:
			t.Fatal("no key event")
		}
	}
}
