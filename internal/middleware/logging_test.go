// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"navhub/internal/models"
)

// captureLog swaps the default logger for one writing into a buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggerRecordsAnonymousCaller(t *testing.T) {
	buf := captureLog(t)

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/home", nil))

	line := buf.String()
	if !strings.Contains(line, "user=anonymous") {
		t.Errorf("log line %q should mark the caller anonymous", line)
	}
	if !strings.Contains(line, "status=204") {
		t.Errorf("log line %q should carry the status", line)
	}
}

func TestLoggerRecordsResolvedCaller(t *testing.T) {
	buf := captureLog(t)

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/navs/search", nil)
	ident := &Identity{User: &models.User{ID: 7, Username: "admin"}}
	req = req.WithContext(WithIdentity(req.Context(), ident))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if line := buf.String(); !strings.Contains(line, "user=admin") {
		t.Errorf("log line %q should carry the resolved username", line)
	}
}
