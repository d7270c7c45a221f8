package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthLive(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthLive("dev").ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Cartview-Env") != "dev" {
		t.Fatalf("expected env header")
	}
}

func TestHealthReadyAllUp(t *testing.T) {
	handler := HealthReady("dev", nil, map[string]Pinger{
		"store": stubPinger{},
		"redis": nil,
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "ready" || envelope.Data.Checks["store"] != "up" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
	if _, ok := envelope.Data.Checks["redis"]; ok {
		t.Fatalf("nil dependency must be skipped")
	}
}

func TestHealthReadyDependencyDown(t *testing.T) {
	handler := HealthReady("dev", nil, map[string]Pinger{
		"store": stubPinger{err: errors.New("connection refused")},
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
