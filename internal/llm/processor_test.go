package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rakk301/speech-to-text-app/internal/logger"
)

const rawText = "this is uh the raw transcription"

func boolPtr(b bool) *bool { return &b }

// newOllamaStub returns a test server that answers the liveness probe
// and delegates /api/generate to the given handler.
func newOllamaStub(t *testing.T, generate http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/generate", generate)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessDisabledReturnsInput(t *testing.T) {
	p := New(Config{Enabled: boolPtr(false)}, logger.NewNop())
	if got := p.Process(context.Background(), rawText); got != rawText {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestProcessBackendUnreachableReturnsInput(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // unreachable

	p := New(Config{BaseURL: srv.URL, ProbeTimeout: 200 * time.Millisecond}, logger.NewNop())
	if got := p.Process(context.Background(), rawText); got != rawText {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestProcessBackendErrorReturnsInput(t *testing.T) {
	srv := newOllamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	p := New(Config{BaseURL: srv.URL}, logger.NewNop())
	if got := p.Process(context.Background(), rawText); got != rawText {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestProcessEmptyResponseReturnsInput(t *testing.T) {
	srv := newOllamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "   \n", Done: true})
	})

	p := New(Config{BaseURL: srv.URL}, logger.NewNop())
	if got := p.Process(context.Background(), rawText); got != rawText {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestProcessTimeoutReturnsInput(t *testing.T) {
	srv := newOllamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(generateResponse{Response: "too late", Done: true})
	})

	p := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, logger.NewNop())
	if got := p.Process(context.Background(), rawText); got != rawText {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestProcessSuccessReturnsRefinedText(t *testing.T) {
	var gotReq generateRequest
	srv := newOllamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "This is the raw transcription.", Done: true})
	})

	p := New(Config{BaseURL: srv.URL, Model: "llama3.1", MaxTokens: 128}, logger.NewNop())
	got := p.Process(context.Background(), rawText)
	if got != "This is the raw transcription." {
		t.Errorf("expected refined text, got %q", got)
	}
	if gotReq.Model != "llama3.1" {
		t.Errorf("expected model llama3.1, got %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("expected streaming disabled")
	}
	if gotReq.Options.NumPredict != 128 {
		t.Errorf("expected num_predict 128, got %d", gotReq.Options.NumPredict)
	}
}

func TestRenderPromptDefaultTemplate(t *testing.T) {
	p := New(Config{}, logger.NewNop())
	prompt := p.renderPrompt("hello world")
	if prompt == "hello world" {
		t.Error("default template should wrap the text, not pass it through")
	}
	if !strings.Contains(prompt, "hello world") {
		t.Errorf("prompt must contain the input text, got %q", prompt)
	}
}

func TestRenderPromptCustomTemplate(t *testing.T) {
	p := New(Config{Prompt: "Fix this: {text}"}, logger.NewNop())
	if got := p.renderPrompt("abc"); got != "Fix this: abc" {
		t.Errorf("expected substituted template, got %q", got)
	}
}

func TestConfigIsEnabledDefaultsTrue(t *testing.T) {
	if !(Config{}).IsEnabled() {
		t.Error("absent enabled flag must default to true")
	}
	if (Config{Enabled: boolPtr(false)}).IsEnabled() {
		t.Error("explicit false must disable")
	}
}
