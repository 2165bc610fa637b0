package whisper

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func writeChunk(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunk_001.flac")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write chunk: %v", err)
	}
	return path
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{Endpoint: server.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestTranscribeSendsBase64PayloadWithAuth(t *testing.T) {
	audio := []byte("not really flac")
	chunk := writeChunk(t, audio)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		var req struct {
			Inputs     string         `json:"inputs"`
			Parameters map[string]any `json:"parameters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Inputs)
		if err != nil {
			t.Errorf("inputs not base64: %v", err)
		}
		if string(decoded) != string(audio) {
			t.Errorf("payload mismatch: %q", decoded)
		}
		if req.Parameters == nil {
			t.Error("expected parameters object")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  hello world "})
	})

	text, err := client.Transcribe(context.Background(), chunk)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("unexpected transcript %q", text)
	}
}

func TestTranscribeAcceptsEmptyTranscript(t *testing.T) {
	chunk := writeChunk(t, []byte("silence"))
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": ""})
	})

	text, err := client.Transcribe(context.Background(), chunk)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty transcript, got %q", text)
	}
}

func TestTranscribeClassifiesFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"auth", http.StatusUnauthorized, `{"error":"bad token"}`, ErrAuthFailed},
		{"forbidden", http.StatusForbidden, `{"error":"no access"}`, ErrAuthFailed},
		{"rate limit", http.StatusTooManyRequests, `{"error":"slow down"}`, ErrRateLimited},
		{"malformed body", http.StatusOK, `<html>oops</html>`, ErrMalformedResponse},
		{"missing text", http.StatusOK, `{"segments":[]}`, ErrMalformedResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunk := writeChunk(t, []byte("audio"))
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Transcribe(context.Background(), chunk)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTranscribeSurfacesEndpointErrorPayload(t *testing.T) {
	chunk := writeChunk(t, []byte("audio"))
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model is loading"})
	})

	_, err := client.Transcribe(context.Background(), chunk)
	if err == nil || err.Error() != "whisper: endpoint error: model is loading" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTranscribeTruncatesErrorBodyOnRuneBoundary(t *testing.T) {
	chunk := writeChunk(t, []byte("audio"))
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		// 100 three-byte runes; a byte-200 cut would land mid-rune.
		_, _ = w.Write([]byte(strings.Repeat("€", 100)))
	})

	_, err := client.Transcribe(context.Background(), chunk)
	if err == nil {
		t.Fatal("expected error for status 500")
	}
	if !utf8.ValidString(err.Error()) {
		t.Fatalf("error detail is not valid UTF-8: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "...") {
		t.Fatalf("expected truncated body marker: %q", err.Error())
	}
}

func TestTranscribeFailsForMissingChunk(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for unreadable chunk")
	})

	if _, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "ghost.flac")); err == nil {
		t.Fatal("expected error for missing chunk file")
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{Token: "x"}); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
	if _, err := New(Config{Endpoint: "https://example.com"}); err == nil {
		t.Fatal("expected error for missing token")
	}
}
