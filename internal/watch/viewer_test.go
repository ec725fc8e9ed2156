package watch

import (
	"strings"
	"testing"
	"time"

	"github.com/lawnchairsociety/wiremaze/internal/config"
)

func TestViewerCollectsFrames(t *testing.T) {
	hub, server := newTestServer(t, config.WatchConfig{})
	hub.Broadcast([]byte("┌┐\n└┘\n"))

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	v, err := DialViewer(url, "")
	if err != nil {
		t.Fatalf("DialViewer failed: %v", err)
	}
	defer v.Close()

	if !v.WaitForFrame("┌┐", 2*time.Second) {
		t.Fatal("viewer never received the latest frame")
	}

	waitForViewers(t, hub, 1)
	hub.Broadcast([]byte("══\n══\n"))
	hub.Broadcast([]byte("║║\n║║\n"))

	if !v.WaitForFrame("║║", 2*time.Second) {
		t.Fatalf("newest frame never arrived, got %q", v.Frames())
	}
	if !v.WaitForFrames(2, time.Second) {
		t.Fatalf("got %d frames, want at least 2", len(v.Frames()))
	}
	if got := v.LastFrame(); got != "║║\n║║\n" {
		t.Errorf("LastFrame() = %q", got)
	}

	select {
	case <-v.Updated():
	default:
		t.Error("Updated() should have a pending signal")
	}
}

func TestViewerSeesServerClose(t *testing.T) {
	hub, server := newTestServer(t, config.WatchConfig{})

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	v, err := DialViewer(url, "")
	if err != nil {
		t.Fatalf("DialViewer failed: %v", err)
	}
	defer v.Close()
	waitForViewers(t, hub, 1)

	hub.CloseAll()

	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not notice the close")
	}
	if v.Err() == nil {
		t.Error("Err() should report why the connection ended")
	}
}

func TestDialViewerRejectedOrigin(t *testing.T) {
	_, server := newTestServer(t, config.WatchConfig{})

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	if _, err := DialViewer(url, "http://evil.com"); err == nil {
		t.Error("DialViewer should fail for a rejected origin")
	}
}
