package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saylorsolutions/avscipher/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Host:           "127.0.0.1",
		Port:           0,
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:   1024,
		ReadTimeout:    time.Second,
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(testConfig(), log.New(io.Discard, "", 0))
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "Body: %s", rec.Body.String())
	}
	return rec, decoded
}

func TestHealthAndInfo(t *testing.T) {
	s := testServer(t)
	rec, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	rec, body = do(t, s, http.MethodGet, "/info", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, serviceVersion, body["version"])
	defaults, ok := body["defaults"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), defaults["rounds"])
	assert.Equal(t, true, defaults["use_pbr"])
	assert.Equal(t, float64(8), defaults["block_size"])
}

func TestEncryptDecryptEndpoints(t *testing.T) {
	s := testServer(t)
	rec, body := do(t, s, http.MethodPost, "/encrypt", `{"plaintext":"Hello","password":"test"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "4YmZ0s93gKs=", body["ciphertext"], "Defaults should apply to missing fields")

	rec, body = do(t, s, http.MethodPost, "/encrypt", `{"plaintext":"Hello","password":"test","rounds":3,"use_pbr":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "N/0iW14=", body["ciphertext"])

	rec, body = do(t, s, http.MethodPost, "/decrypt", `{"ciphertext":"N/0iW14=","password":"test","use_pbr":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Hello", body["plaintext"])
	_, hasLossy := body["lossy"]
	assert.False(t, hasLossy)
}

func TestDecryptEndpoint_MalformedToken(t *testing.T) {
	s := testServer(t)
	rec, body := do(t, s, http.MethodPost, "/decrypt", `{"ciphertext":"not-valid-base64!!","password":"test"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "base64 decode error")
}

func TestCipherEndpoint(t *testing.T) {
	s := testServer(t)
	rec, body := do(t, s, http.MethodPost, "/cipher", `{"text":"Hello","password":"test","operation":"encrypt","block_size":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["success"])
	token, ok := body["result"].(string)
	require.True(t, ok)

	rec, body = do(t, s, http.MethodPost, "/cipher", `{"text":"`+token+`","password":"test","operation":"DECRYPT","block_size":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Hello", body["result"])
}

func TestValidation(t *testing.T) {
	tests := map[string]struct {
		path     string
		body     string
		expected int
	}{
		"Blank plaintext": {
			path:     "/encrypt",
			body:     `{"plaintext":"   ","password":"test"}`,
			expected: http.StatusBadRequest,
		},
		"Blank password": {
			path:     "/decrypt",
			body:     `{"ciphertext":"SGVsbG8=","password":" "}`,
			expected: http.StatusBadRequest,
		},
		"Zero rounds": {
			path:     "/encrypt",
			body:     `{"plaintext":"Hello","password":"test","rounds":0}`,
			expected: http.StatusBadRequest,
		},
		"Zero block size": {
			path:     "/decrypt",
			body:     `{"ciphertext":"SGVsbG8=","password":"test","block_size":0}`,
			expected: http.StatusBadRequest,
		},
		"Missing cipher fields": {
			path:     "/cipher",
			body:     `{"text":"Hello","password":"test"}`,
			expected: http.StatusBadRequest,
		},
		"Unknown operation": {
			path:     "/cipher",
			body:     `{"text":"Hello","password":"test","operation":"rot13"}`,
			expected: http.StatusBadRequest,
		},
		"Malformed JSON": {
			path:     "/encrypt",
			body:     `{"plaintext":`,
			expected: http.StatusBadRequest,
		},
		"Body too large": {
			path:     "/encrypt",
			body:     `{"plaintext":"` + strings.Repeat("a", 2048) + `","password":"test"}`,
			expected: http.StatusRequestEntityTooLarge,
		},
	}

	s := testServer(t)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec, body := do(t, s, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.expected, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
			t.Log(body["error"])
		})
	}
}

func TestRouting(t *testing.T) {
	s := testServer(t)
	rec, _ := do(t, s, http.MethodGet, "/encrypt", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	rec, _ = do(t, s, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/encrypt", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_Shutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.Port = port
	s := New(cfg, log.New(io.Discard, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Addr() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Server didn't shut down")
	}
}
