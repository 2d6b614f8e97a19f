package main

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/ayhanyalcinsoy/qterminal/internal/app"
	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
)

func TestForwardDesktopKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan hotkey.Sequence, 1)
	sent := make(chan tea.Msg, 1)
	done := make(chan struct{})
	go func() {
		forwardDesktopKeys(ctx, keys, func(msg tea.Msg) { sent <- msg })
		close(done)
	}()

	keys <- hotkey.MustParse("F12")
	select {
	case msg := <-sent:
		if got, ok := msg.(app.HotkeyMsg); !ok || got.Sequence != "f12" {
			t.Errorf("sent %#v, want HotkeyMsg for f12", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("key press was not forwarded")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("forwarding did not stop with the context")
	}
}
