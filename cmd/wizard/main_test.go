package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"services": map[string]interface{}{
				"deep_cleaning": map[string]interface{}{"name": "Deep Cleaning", "base_price": 45.0},
			},
		})
	})
	mux.HandleFunc("/api/cleaners", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
	})
	mux.HandleFunc("/api/service-areas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"areas": []string{"Tempe"}})
	})
	mux.HandleFunc("/api/checkout/status/abc", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "complete", "payment_status": "paid"})
	})
	mux.HandleFunc("/api/bookings/123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id": "123", "service_type": "deep_cleaning", "cleaner_name": "Ana Garcia", "total_amount": 135.0,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, backendURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[logs]
level = "info"

[wizard]
backend_url = %q
origin_url = "http://app.example"
request_timeout = 2
poll_interval_ms = 10
poll_attempts = 3
session_file = %q
`, backendURL, filepath.Join(dir, "session"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ResumeConfirmsPaidBooking(t *testing.T) {
	srv := fakeBackend(t)
	cfgPath := writeConfig(t, srv.URL)

	var out bytes.Buffer
	code := run([]string{
		"-config", cfgPath,
		"resume", "-return-url", "http://app.example/?session_id=abc&booking_id=123",
	}, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Payment successful")
	assert.Contains(t, out.String(), "Booking 123 confirmed")
}

func TestRun_ResumeWithoutParams(t *testing.T) {
	srv := fakeBackend(t)
	cfgPath := writeConfig(t, srv.URL)

	var out bytes.Buffer
	code := run([]string{"-config", cfgPath, "resume", "-return-url", "http://app.example/"}, &out)
	assert.Equal(t, 1, code)

	out.Reset()
	code = run([]string{"-config", cfgPath, "resume", "-return-url", "http://app.example/?cancelled=true"}, &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Payment was cancelled")
}

func TestRun_CatalogSurvivesCleanersFailure(t *testing.T) {
	srv := fakeBackend(t)
	cfgPath := writeConfig(t, srv.URL)

	var out bytes.Buffer
	code := run([]string{"-config", cfgPath, "catalog"}, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Could not load cleaners: Internal server error")
	assert.Contains(t, out.String(), "deep_cleaning")
	assert.Contains(t, out.String(), "Service areas: Tempe")
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run(nil, &out))
	assert.Equal(t, 2, run([]string{"-config", writeConfig(t, "http://127.0.0.1:1"), "fly"}, &out))
}

func TestRun_BookingsRequiresLogin(t *testing.T) {
	srv := fakeBackend(t)
	cfgPath := writeConfig(t, srv.URL)

	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"-config", cfgPath, "bookings"}, &out))
	assert.Equal(t, 0, run([]string{"-config", cfgPath, "logout"}, &out))
	assert.Contains(t, out.String(), "Signed out.")
}

