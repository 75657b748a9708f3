package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/subtrack/backend/internal/domain/entity"
)

func TestHTTPProviderFetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing accept header, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "7d8a2c9e-1f3b-4a5d-9c6e-0b1a2d3e4f50",
				"name": "Netflix",
				"description": "Family plan",
				"category": "streaming",
				"price": "15.99",
				"currency": "USD",
				"billingCycle": "monthly",
				"nextBillingDate": "2026-09-15T00:00:00Z",
				"isActive": true,
				"createdAt": "2026-01-01T00:00:00Z",
				"updatedAt": "2026-08-01T00:00:00Z"
			},
			{
				"id": "3f4e5d6c-7b8a-49c0-b1d2-e3f4a5b6c7d8",
				"name": "Fastmail",
				"description": "",
				"category": "productivity",
				"price": "50.00",
				"currency": "USD",
				"billingCycle": "yearly",
				"nextBillingDate": "2027-02-01T00:00:00Z",
				"isActive": false,
				"createdAt": "2026-02-01T00:00:00Z",
				"updatedAt": "2026-02-01T00:00:00Z"
			}
		]`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 5*time.Second)
	subscriptions, err := provider.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(subscriptions) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subscriptions))
	}

	first := subscriptions[0]
	if first.Name != "Netflix" || first.Category != entity.CategoryStreaming {
		t.Errorf("unexpected first subscription: %+v", first)
	}
	if first.Price.String() != "15.99" {
		t.Errorf("unexpected price %s", first.Price)
	}
	if first.BillingCycle != entity.BillingCycleMonthly || !first.IsActive {
		t.Errorf("unexpected cycle/state: %s %v", first.BillingCycle, first.IsActive)
	}

	second := subscriptions[1]
	if second.BillingCycle != entity.BillingCycleYearly || second.IsActive {
		t.Errorf("unexpected second subscription: %+v", second)
	}
}

func TestHTTPProviderFetchAllEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	subscriptions, err := NewHTTPProvider(server.URL, 5*time.Second).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(subscriptions) != 0 {
		t.Errorf("expected empty collection, got %d", len(subscriptions))
	}
}

func TestHTTPProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := NewHTTPProvider(server.URL, 5*time.Second).FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestHTTPProviderMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	if _, err := NewHTTPProvider(server.URL, 5*time.Second).FetchAll(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHTTPProviderContextCancelled(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := NewHTTPProvider(server.URL, 5*time.Second).FetchAll(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
