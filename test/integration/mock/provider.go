package mock

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// SyncProvider fakes the external subscription feed the sync operation pulls
// from. Scenarios load it with a JSON body and a status code.
type SyncProvider struct {
	mu       sync.Mutex
	server   *httptest.Server
	status   int
	body     string
	requests int
}

// NewSyncProvider starts the fake provider serving an empty collection.
func NewSyncProvider() *SyncProvider {
	p := &SyncProvider{
		status: http.StatusOK,
		body:   "[]",
	}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.status)
		_, _ = w.Write([]byte(p.body))
	}))
	return p
}

// URL returns the endpoint to point SYNC_PROVIDER_URL at.
func (p *SyncProvider) URL() string {
	return p.server.URL
}

// Respond sets the status and JSON body served to the next requests.
func (p *SyncProvider) Respond(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.body = body
}

// Requests reports how many fetches the provider has served.
func (p *SyncProvider) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

// Reset restores the empty default response and clears the request count.
func (p *SyncProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = http.StatusOK
	p.body = "[]"
	p.requests = 0
}

// Close shuts the fake provider down.
func (p *SyncProvider) Close() {
	p.server.Close()
}
