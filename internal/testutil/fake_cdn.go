package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/authly/authly-rhythm/internal/cdn"
)

// FakeCDN emulates the CDN's pull-upload API. On each push it fetches
// the advertised source URL, records the bytes it pulled and responds
// with a deterministic deployed URL.
type FakeCDN struct {
	Server *httptest.Server

	mu     sync.Mutex
	pulled [][]byte
	fail   bool
}

func NewFakeCDN(t *testing.T) *FakeCDN {
	t.Helper()

	f := &FakeCDN{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns a real cdn.Client pointed at the fake.
func (f *FakeCDN) Client() *cdn.Client {
	return cdn.NewClient(f.Server.URL, "test-cdn-token")
}

// SetFail makes subsequent pushes fail with a 500.
func (f *FakeCDN) SetFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

// Pulled returns the payloads fetched back from source URLs so far.
func (f *FakeCDN) Pulled() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.pulled...)
}

func (f *FakeCDN) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()

	if fail {
		http.Error(w, "cdn unavailable", http.StatusInternalServerError)
		return
	}

	var urls []string
	if err := json.NewDecoder(r.Body).Decode(&urls); err != nil || len(urls) == 0 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	resp, err := http.Get(urls[0])
	if err != nil {
		http.Error(w, "pull failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		http.Error(w, "pull failed", http.StatusBadGateway)
		return
	}

	f.mu.Lock()
	f.pulled = append(f.pulled, payload)
	n := len(f.pulled)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"files": []map[string]interface{}{
			{
				"deployedUrl": fmt.Sprintf("https://cdn.test/s/v3/file-%d", n),
				"file":        fmt.Sprintf("file-%d", n),
				"sha":         fmt.Sprintf("%040d", n),
				"size":        len(payload),
			},
		},
		"cdnBase": "https://cdn.test",
	})
}
