package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"arcology/controller"
	"arcology/ircode"
	"arcology/ircode/reva"
	"arcology/lights"
)

func newTestServer(t *testing.T) (*Server, *lights.MemoryLight) {
	t.Helper()
	light := lights.NewMemoryLight(64)
	var slots [controller.SlotCount]lights.Color
	for i := range slots {
		slots[i] = lights.White
	}
	c := controller.New(zerolog.Nop(), light, slots)
	t.Cleanup(c.Close)

	var wg sync.WaitGroup
	d := controller.NewDispatcher(zerolog.Nop(), reva.Table(), c, &wg)
	return New(zerolog.Nop(), "127.0.0.1:0", d, c, &wg), light
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTables(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/tables", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []tableSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, reva.Name, summaries[0].Name)
	assert.True(t, summaries[0].Active)
	assert.False(t, summaries[1].Active)
	assert.Equal(t, 46, summaries[1].Codes)

	rec = do(t, h, http.MethodGet, "/tables/B", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var table tableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, "revision-b", table.Name)
	assert.Len(t, table.Bindings, 46)

	rec = do(t, h, http.MethodGet, "/tables/c", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidate(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s.Routes(), http.MethodGet, "/tables/a/validate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Problems)
}

func TestKeyAndCodeLookup(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	tests := []struct {
		path   string
		status int
		key    ircode.Key
		code   ircode.Code
	}{
		{"/tables/a/keys/IR_ON", http.StatusOK, ircode.KeyOn, reva.On},
		{"/tables/a/keys/bplus", http.StatusOK, ircode.KeyBPlus, reva.BPlus},
		{"/tables/b/keys/IR_FADE7", http.StatusOK, ircode.KeyFade7, 0xFFE01F},
		{"/tables/b/keys/IR_FADE", http.StatusNotFound, "", 0},
		{"/tables/a/codes/0xF7C03F", http.StatusOK, ircode.KeyOn, reva.On},
		{"/tables/a/codes/00f7a05f", http.StatusOK, ircode.KeyG, reva.G},
		{"/tables/a/codes/0xFF9A65", http.StatusNotFound, "", 0},
		{"/tables/a/codes/123456", http.StatusNotFound, "", 0},
		{"/tables/a/codes/zz", http.StatusBadRequest, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "")
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var b ircode.Binding
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
			assert.Equal(t, tt.key, b.Key)
			assert.Equal(t, tt.code, b.Code)
		})
	}
}

func TestPress(t *testing.T) {
	s, light := newTestServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodPost, "/press", `{"key":"IR_R"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/press", `{"code":"0xF7C03F"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp pressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ircode.KeyOn, resp.Key)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.State.Power)

	rec = do(t, h, http.MethodPost, "/press", `{"key":"IR_R"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, reva.R, resp.Code)
	assert.Equal(t, lights.Color{R: 255}, resp.State.Color)
	current, on := light.Current()
	assert.True(t, on)
	assert.Equal(t, lights.Color{R: 255}, current)

	rec = do(t, h, http.MethodPost, "/press", `{"repeat":true}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/press", `{"code":"0x123456"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/press", `{"key":"IR_NOPE"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, body := range []string{``, `{`, `{}`, `{"colour":"red"}`, `{"code":"xyz"}`} {
		rec = do(t, h, http.MethodPost, "/press", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}

	rec = do(t, h, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, reva.Name, state.Table)
	assert.Equal(t, uint64(2), state.Stats.Handled)
	assert.Equal(t, uint64(2), state.Stats.Ignored)
	assert.Equal(t, uint64(1), state.Stats.Unknown["0x123456"])
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Routes(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		s.waitGroup.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
