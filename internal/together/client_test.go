package together

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubClient(fn roundTripperFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var captured *http.Request
	var capturedBody chatRequest

	client := NewClient("secret-key", "", stubClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		if err := json.NewDecoder(req.Body).Decode(&capturedBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"hello"}}]}`), nil
	}))

	content, err := client.Complete(context.Background(), "be terse", "say hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "hello" {
		t.Errorf("content = %q, want %q", content, "hello")
	}

	if captured.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", captured.Method)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer secret-key" {
		t.Errorf("authorization header = %q", got)
	}
	if got := captured.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}

	if capturedBody.Model != defaultModel {
		t.Errorf("model = %q, want default %q", capturedBody.Model, defaultModel)
	}
	if capturedBody.Temperature != temperature || capturedBody.MaxTokens != maxTokens {
		t.Errorf("sampling params = (%v, %d)", capturedBody.Temperature, capturedBody.MaxTokens)
	}
	want := []Message{
		{Role: roleSystem, Content: "be terse"},
		{Role: roleUser, Content: "say hello"},
	}
	if len(capturedBody.Messages) != 2 || capturedBody.Messages[0] != want[0] || capturedBody.Messages[1] != want[1] {
		t.Errorf("messages = %+v, want %+v", capturedBody.Messages, want)
	}
}

func TestCompleteNonOKStatus(t *testing.T) {
	client := NewClient("key", "some-model", stubClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":"rate limited"}`), nil
	}))

	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := NewClient("key", "some-model", stubClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[]}`), nil
	}))

	if _, err := client.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewClientKeepsExplicitModel(t *testing.T) {
	client := NewClient("key", "mistralai/Mixtral-8x7B-Instruct-v0.1", stubClient(func(req *http.Request) (*http.Response, error) {
		var body chatRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body.Model != "mistralai/Mixtral-8x7B-Instruct-v0.1" {
			t.Errorf("model = %q", body.Model)
		}
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`), nil
	}))

	if _, err := client.Complete(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}
