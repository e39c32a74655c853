package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcology/config"
	"arcology/controller"
	"arcology/lights"
)

func noEnv(string) string { return "" }

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     int
		contains []string
	}{
		{"no args", nil, 2, nil},
		{"help", []string{"help"}, 0, []string{"usage: arcology"}},
		{"unknown", []string{"frobnicate"}, 2, nil},
		{"tables a", []string{"tables", "-rev", "a"}, 0, []string{"# revision-a", "IR_ON", "0xF7C03F", "IR_FADE "}},
		{"tables b", []string{"tables", "-rev=B"}, 0, []string{"# revision-b", "IR_FADE7", "0xFFE01F"}},
		{"tables all", []string{"tables"}, 0, []string{"# revision-a", "# revision-b"}},
		{"tables bad rev", []string{"tables", "-rev", "z"}, 1, nil},
		{"validate", []string{"validate"}, 0, []string{"revision-a: 46 codes ok", "revision-b: 46 codes ok"}},
		{"encode", []string{"encode", "0xF7C03F"}, 0, []string{"(9ms, 4.5ms)", "(562.5µs, 1.6875ms)"}},
		{"encode missing", []string{"encode"}, 2, nil},
		{"encode bad", []string{"encode", "0x1000000"}, 1, nil},
		{"lookup", []string{"lookup", "00F7C03F"}, 0, []string{"IR_ON power"}},
		{"lookup retired code", []string{"lookup", "0xFF1AE5"}, 1, nil},
		{"lookup repeat", []string{"lookup", "FFFFFFFF"}, 0, []string{"repeat"}},
		{"lookup other rev", []string{"lookup", "-rev", "b", "0xF7C03F"}, 1, nil},
		{"serve bad flag", []string{"serve", "-nope"}, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr, noEnv)
			require.Equal(t, tt.code, code, "stdout=%s stderr=%s", stdout.String(), stderr.String())
			for _, want := range tt.contains {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestEncodeLineCount(t *testing.T) {
	var stdout bytes.Buffer
	require.Equal(t, 0, run([]string{"encode", "F720DF"}, &stdout, &bytes.Buffer{}, noEnv))
	assert.Len(t, strings.Split(strings.TrimSpace(stdout.String()), "\n"), 34)
}

func TestSummary(t *testing.T) {
	s := controller.State{Power: true, Mode: controller.ModeStrobe, Color: lights.Color{R: 255}, Brightness: 7}
	stats := controller.Stats{Handled: 12, Unknown: map[string]uint64{"0x123456": 3}}
	assert.Equal(t, "den power=on mode=strobe color=#ff0000 brightness=7 handled=12 unknown=1", summary("den", s, stats))
}

func TestServeAnnouncesAndStops(t *testing.T) {
	var notified, checked, beats atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notify":
			notified.Add(1)
		case "/check":
			checked.Add(1)
		case "/beat":
			beats.Add(1)
		}
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.NodeName = "test-node"
	cfg.Receiver.Port = config.MemoryPort
	cfg.APIAddr = "127.0.0.1:0"
	cfg.NotifyURL = srv.URL + "/notify"
	cfg.ConnectivityURL = srv.URL + "/check"
	cfg.Heartbeat.URL = srv.URL + "/beat"
	cfg.Heartbeat.Interval = time.Hour
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop()) }()

	require.Eventually(t, func() bool { return beats.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Equal(t, int32(1), notified.Load())
	assert.Equal(t, int32(1), checked.Load())
}
