package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testItems = []string{"Oxytocin Injection", "Magnesium Sulfate", "IV Cannula"}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plano", `{"item": "IV Cannula"}`, `{"item": "IV Cannula"}`},
		{"bloque markdown", "```json\n{\"item\": null}\n```", `{"item": null}`},
		{"texto alrededor", `Claro: {"item": "Magnesium Sulfate"} espero ayude`, `{"item": "Magnesium Sulfate"}`},
		{"sin json", "no sé", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestParseItemPayload(t *testing.T) {
	item, err := parseItemPayload("```json\n{\"item\": \"Oxytocin Injection\"}\n```")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Oxytocin Injection", *item)

	item, err = parseItemPayload(`{"item": null}`)
	require.NoError(t, err)
	assert.Nil(t, item)

	_, err = parseItemPayload("sin respuesta")
	assert.Error(t, err)
}

func TestAnthropicService_ExtractItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Oxytocin Injection")
		assert.Contains(t, req.Messages[0].Content, "need oxy")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"item\": \"Oxytocin Injection\"}"}]}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("test-key", "claude-test", time.Second).WithEndpoint(srv.URL)
	item, err := svc.ExtractItem(context.Background(), "need oxy", testItems)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Oxytocin Injection", *item)
}

func TestAnthropicService_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("test-key", "claude-test", time.Second).WithEndpoint(srv.URL)
	_, err := svc.ExtractItem(context.Background(), "need oxy", testItems)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestAnthropicService_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "claude-test", 0).ExtractItem(context.Background(), "x", testItems)
	assert.Error(t, err)
}

func TestGeminiService_ExtractItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"item\": null}"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", "gemini-test", time.Second).WithBaseURL(srv.URL)
	item, err := svc.ExtractItem(context.Background(), "tengo hambre", testItems)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGeminiService_TiempoAgotado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	svc := NewGeminiService("test-key", "gemini-test", 5*time.Second).WithBaseURL(srv.URL)
	_, err := svc.ExtractItem(ctx, "oxy", testItems)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
