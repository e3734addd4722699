package cdn_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/authly/authly-rhythm/internal/cdn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	var gotAuth string
	var gotBody []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"files": []map[string]interface{}{
				{"deployedUrl": "https://cdn.test/s/v3/abc_song.mp3", "file": "song.mp3", "sha": "abc", "size": 1234},
			},
			"cdnBase": "https://cdn.test",
		})
	}))
	defer server.Close()

	client := cdn.NewClient(server.URL, "secret-token")

	url, err := client.Upload(context.Background(), "http://example.test/auth/upload/some-id")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/s/v3/abc_song.mp3", url)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, []string{"http://example.test/auth/upload/some-id"}, gotBody)
}

func TestClient_UploadMissingToken(t *testing.T) {
	client := cdn.NewClient("http://cdn.invalid", "")

	_, err := client.Upload(context.Background(), "http://example.test/x")
	assert.ErrorIs(t, err, cdn.ErrMissingToken)
}

func TestClient_UploadNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := cdn.NewClient(server.URL, "secret-token")

	_, err := client.Upload(context.Background(), "http://example.test/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_UploadEmptyFileList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"files":[],"cdnBase":"https://cdn.test"}`))
	}))
	defer server.Close()

	client := cdn.NewClient(server.URL, "secret-token")

	_, err := client.Upload(context.Background(), "http://example.test/x")
	assert.Error(t, err)
}
