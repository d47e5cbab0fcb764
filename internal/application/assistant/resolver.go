package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/jhoicas/swiftstock-api/internal/application/ports"
)

var (
	_ ports.ItemResolver = (*SubstringResolver)(nil)
	_ ports.ItemResolver = (*LLMResolver)(nil)
	_ ports.ItemResolver = (*FallbackResolver)(nil)
)

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// byLengthDesc copia de items ordenada por longitud de nombre descendente
// (empates en el orden recibido).
func byLengthDesc(items []string) []string {
	out := append([]string(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// SubstringResolver estrategia local: coincidencia por subcadena sin distinguir
// mayúsculas, nombre más largo primero.
//  1. nombre completo contenido en el texto;
//  2. primera palabra del nombre como alias ("Oxytocin" → "Oxytocin Injection"),
//     solo como palabra completa.
type SubstringResolver struct{}

// NewSubstringResolver construye la estrategia local.
func NewSubstringResolver() *SubstringResolver { return &SubstringResolver{} }

func (r *SubstringResolver) ResolveItemName(_ context.Context, freeText string, knownItems []string) (string, bool, error) {
	text := fold(freeText)
	if text == "" || len(knownItems) == 0 {
		return "", false, nil
	}
	ordered := byLengthDesc(knownItems)

	for _, item := range ordered {
		name := fold(item)
		if name != "" && strings.Contains(text, name) {
			return item, true, nil
		}
	}
	for _, item := range ordered {
		fields := strings.Fields(fold(item))
		if len(fields) == 0 {
			continue
		}
		if containsWord(text, fields[0]) {
			return item, true, nil
		}
	}
	return "", false, nil
}

// containsWord indica si word aparece en text delimitada por caracteres que no son
// letra ni dígito (o por los extremos).
func containsWord(text, word string) bool {
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)
		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (i == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// LLMResolver consulta al modelo con vocabulario cerrado y valida la respuesta
// contra la lista conocida.
type LLMResolver struct {
	llm     ports.LLMService
	timeout time.Duration
}

// NewLLMResolver construye la estrategia LLM. timeout <= 0 usa 10 s.
func NewLLMResolver(llm ports.LLMService, timeout time.Duration) *LLMResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LLMResolver{llm: llm, timeout: timeout}
}

func (r *LLMResolver) ResolveItemName(ctx context.Context, freeText string, knownItems []string) (string, bool, error) {
	if strings.TrimSpace(freeText) == "" || len(knownItems) == 0 {
		return "", false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	answer, err := r.llm.ExtractItem(ctx, freeText, knownItems)
	if err != nil {
		return "", false, fmt.Errorf("resolver insumo: %w", err)
	}
	if answer == nil {
		return "", false, nil
	}
	want := fold(*answer)
	for _, item := range knownItems {
		if fold(item) == want {
			return item, true, nil
		}
	}
	// el modelo inventó un nombre fuera de la lista
	return "", false, nil
}

// FallbackResolver intenta primary y, si falla la llamada, usa fallback.
type FallbackResolver struct {
	primary  ports.ItemResolver
	fallback ports.ItemResolver
	log      zerolog.Logger
}

// NewFallbackResolver construye la cadena de estrategias.
func NewFallbackResolver(primary, fallback ports.ItemResolver, log zerolog.Logger) *FallbackResolver {
	return &FallbackResolver{primary: primary, fallback: fallback, log: log}
}

func (r *FallbackResolver) ResolveItemName(ctx context.Context, freeText string, knownItems []string) (string, bool, error) {
	item, ok, err := r.primary.ResolveItemName(ctx, freeText, knownItems)
	if err == nil {
		return item, ok, nil
	}
	r.log.Warn().Err(err).Msg("resolver LLM falló, usando estrategia local")
	return r.fallback.ResolveItemName(ctx, freeText, knownItems)
}
