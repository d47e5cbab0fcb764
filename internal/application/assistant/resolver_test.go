package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swiftstock-api/internal/application/assistant"
)

var catalog = []string{
	"Insulin",
	"Insulin Glargine",
	"Oxytocin Injection",
	"IV Cannula",
	"TB-Kit Adult",
	"Paracetamol 500mg",
}

func TestSubstringResolver(t *testing.T) {
	r := assistant.NewSubstringResolver()
	tests := []struct {
		name   string
		text   string
		known  []string
		want   string
		wantOK bool
	}{
		{"nombre más largo primero", "need insulin glargine asap", catalog, "Insulin Glargine", true},
		{"nombre corto", "any insulin left?", catalog, "Insulin", true},
		{"alias primera palabra", "do we have oxytocin?", catalog, "Oxytocin Injection", true},
		{"sin distinguir mayúsculas", "OXYTOCIN INJECTION NOW", catalog, "Oxytocin Injection", true},
		{"alias como palabra completa", "give me something", []string{"IV Cannula"}, "", false},
		{"alias corto exacto", "need iv lines", catalog, "IV Cannula", true},
		{"alias con guion", "tb-kit for ward 3", catalog, "TB-Kit Adult", true},
		{"sin coincidencia", "hello there", catalog, "", false},
		{"texto vacío", "   ", catalog, "", false},
		{"catálogo vacío", "oxytocin", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := r.ResolveItemName(context.Background(), tt.text, tt.known)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeLLM struct {
	answer *string
	err    error
	calls  int
}

func (f *fakeLLM) ExtractItem(ctx context.Context, query string, validItems []string) (*string, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("sin deadline")
	}
	return f.answer, f.err
}

func strPtr(s string) *string { return &s }

func TestLLMResolver(t *testing.T) {
	ctx := context.Background()

	got, ok, err := assistant.NewLLMResolver(&fakeLLM{answer: strPtr("oxytocin injection")}, 0).
		ResolveItemName(ctx, "the labour drug", catalog)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Oxytocin Injection", got, "devuelve el nombre canónico")

	_, ok, err = assistant.NewLLMResolver(&fakeLLM{answer: nil}, 0).ResolveItemName(ctx, "hola", catalog)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = assistant.NewLLMResolver(&fakeLLM{answer: strPtr("Aspirin")}, 0).ResolveItemName(ctx, "aspirin", catalog)
	require.NoError(t, err)
	assert.False(t, ok, "respuestas fuera de la lista se descartan")

	_, _, err = assistant.NewLLMResolver(&fakeLLM{err: errors.New("503")}, 0).ResolveItemName(ctx, "oxy", catalog)
	assert.Error(t, err)
}

func TestFallbackResolver(t *testing.T) {
	ctx := context.Background()
	local := assistant.NewSubstringResolver()

	failing := assistant.NewLLMResolver(&fakeLLM{err: errors.New("timeout")}, 0)
	got, ok, err := assistant.NewFallbackResolver(failing, local, zerolog.Nop()).ResolveItemName(ctx, "oxytocin please", catalog)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Oxytocin Injection", got)

	llm := &fakeLLM{answer: strPtr("IV Cannula")}
	got, ok, err = assistant.NewFallbackResolver(assistant.NewLLMResolver(llm, 0), local, zerolog.Nop()).
		ResolveItemName(ctx, "the thing for drips", catalog)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "IV Cannula", got)
	assert.Equal(t, 1, llm.calls)
}
