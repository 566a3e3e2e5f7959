package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lifelog/lifelog/internal/resource"
	"github.com/lifelog/lifelog/internal/store"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestWriteData(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeData(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("expected success=true")
	}
	if env.Error != "" {
		t.Errorf("success response must not carry an error, got %q", env.Error)
	}
}

func TestWritePage_MetaShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writePage(rec, []string{"a", "b"}, Meta{Page: 2, Limit: 10, Total: 25, TotalPages: 3})

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	var meta map[string]any
	if err := json.Unmarshal(raw["meta"], &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	for _, key := range []string{"page", "limit", "total", "totalPages"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("meta missing key %q: %v", key, meta)
		}
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, http.StatusConflict, "record already exists")

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("expected success=false")
	}
	if env.Error != "record already exists" {
		t.Errorf("unexpected error message: %q", env.Error)
	}
	if env.Data != nil {
		t.Error("error response must not carry data")
	}
}

func TestWriteEngineError_Mapping(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", resource.ErrNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"conflict", resource.ErrConflict, http.StatusConflict},
		{"validation", resource.ErrValidation, http.StatusUnprocessableEntity},
		{"wrapped validation", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
			writeEngineError(rec, req, logger, tc.err)

			if rec.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, rec.Code)
			}

			env := decodeEnvelope(t, rec)
			if env.Success {
				t.Error("expected success=false")
			}
		})
	}
}

func TestWriteEngineError_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)

	writeEngineError(rec, req, logger, errors.New("pq: connection refused on 10.0.0.5"))

	env := decodeEnvelope(t, rec)
	if env.Error != "internal server error" {
		t.Errorf("internal detail leaked to the caller: %q", env.Error)
	}
}
