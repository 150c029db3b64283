package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const minimalReply = `{"candidates":[{"content":{"parts":[{"text":"hello"}],"role":"model"}}]}`

// fakeServer records the decoded request body into capture and answers
// with a fixed reply.
func fakeServer(t *testing.T, capture *Request, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decoding request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateStructuredRequestShape(t *testing.T) {
	var captured Request
	srv := fakeServer(t, &captured, minimalReply)

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, ThinkingBudget: 1024}, nil)
	schema := map[string]interface{}{"type": "ARRAY"}
	got, err := c.GenerateStructured(context.Background(), "system", "user prompt", schema)
	if err != nil {
		t.Fatalf("GenerateStructured: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("Text = %q, want %q", got.Text, "hello")
	}

	if captured.SystemInstruction == nil || len(captured.SystemInstruction.Parts) == 0 ||
		captured.SystemInstruction.Parts[0].Text != "system" {
		t.Errorf("systemInstruction not carried: %+v", captured.SystemInstruction)
	}
	gc := captured.GenerationConfig
	if gc == nil {
		t.Fatal("generationConfig missing")
	}
	if gc.ResponseMimeType != "application/json" {
		t.Errorf("responseMimeType = %q", gc.ResponseMimeType)
	}
	if gc.ResponseSchema == nil {
		t.Error("responseSchema missing")
	}
	if gc.ThinkingConfig == nil || gc.ThinkingConfig.ThinkingBudget != 1024 {
		t.Errorf("thinkingConfig = %+v", gc.ThinkingConfig)
	}
	if len(captured.Tools) != 1 || captured.Tools[0].GoogleSearch == nil {
		t.Errorf("googleSearch tool not declared: %+v", captured.Tools)
	}
}

func TestGenerateTextRequestShape(t *testing.T) {
	var captured Request
	srv := fakeServer(t, &captured, minimalReply)

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	got, err := c.GenerateText(context.Background(), "write a plan")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("Text = %q, want %q", got.Text, "hello")
	}

	if captured.SystemInstruction != nil {
		t.Error("plan request must not carry a system instruction")
	}
	if captured.GenerationConfig != nil {
		t.Error("plan request must not carry a generation config")
	}
	if len(captured.Tools) != 0 {
		t.Error("plan request must not declare tools")
	}
}

func TestGenerateMultiPartAndGrounding(t *testing.T) {
	reply := `{"candidates":[{"content":{"parts":[{"text":"part one "},{"text":"part two"}],"role":"model"},` +
		`"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://a.example","title":"A"}}],` +
		`"webSearchQueries":["q"]}}]}`
	srv := fakeServer(t, nil, reply)

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	got, err := c.GenerateText(context.Background(), "p")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got.Text != "part one part two" {
		t.Errorf("Text = %q", got.Text)
	}
	if len(got.GroundingChunks) != 1 {
		t.Fatalf("grounding chunks = %d, want 1", len(got.GroundingChunks))
	}
	web := got.GroundingChunks[0].Web
	if web == nil || web.URI != "https://a.example" || web.Title != "A" {
		t.Errorf("web chunk = %+v", web)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
	}{
		{"http error", http.StatusBadRequest, `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`},
		{"api error body", http.StatusOK, `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`},
		{"empty candidates", http.StatusOK, `{"candidates":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.reply))
			}))
			defer srv.Close()

			c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
			if _, err := c.GenerateText(context.Background(), "p"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMissingAPIKeyStillCalls(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"missing key","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.GenerateText(context.Background(), "p")
	if !called {
		t.Fatal("request was never sent")
	}
	if err == nil {
		t.Error("expected transport error for missing key")
	}
}
