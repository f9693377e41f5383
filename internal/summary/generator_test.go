package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	text  string
	err   error
	calls int
}

func (f *fakeBackend) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeBackend) Close() error { return nil }

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"hi":      LangHindi,
		"hindi":   LangHindi,
		"":        LangHindi,
		"klingon": LangHindi,
		"en":      LangEnglish,
		"English": LangEnglish,
		"EN-IN":   LangEnglish,
		" en-us ": LangEnglish,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeLanguage(in), "input %q", in)
	}
}

func TestGenerateWithBackend(t *testing.T) {
	backend := &fakeBackend{text: "a real summary"}
	g := New(backend, nil)

	text, mock := g.Generate(context.Background(), "some transcript", "en")

	assert.Equal(t, "a real summary", text)
	assert.False(t, mock)
	assert.Equal(t, 1, backend.calls)
}

func TestGenerateBackendFailureFallsBack(t *testing.T) {
	backend := &fakeBackend{err: errors.New("quota exceeded")}
	g := New(backend, nil)

	text, mock := g.Generate(context.Background(), "some transcript", "en")

	require.NotEmpty(t, text)
	assert.True(t, mock)
	assert.Contains(t, text, "**Session Summary**")
}

func TestGenerateBackendEmptyOutputFallsBack(t *testing.T) {
	backend := &fakeBackend{text: "   \n"}
	g := New(backend, nil)

	text, mock := g.Generate(context.Background(), "some transcript", "hi")

	require.NotEmpty(t, text)
	assert.True(t, mock)
}

func TestGenerateWithoutBackend(t *testing.T) {
	g := New(nil, nil)

	text, mock := g.Generate(context.Background(), "one two three four five", "en")

	assert.True(t, mock)
	assert.Contains(t, text, "Covered 5 words")

	// deterministic for the same transcript
	again, _ := g.Generate(context.Background(), "one two three four five", "en")
	assert.Equal(t, text, again)
}

func TestGenerateTemplatedHindiDefault(t *testing.T) {
	g := New(nil, nil)

	text, mock := g.Generate(context.Background(), "kuch shabd", "")

	assert.True(t, mock)
	assert.Contains(t, text, "सत्र का सारांश")
}

func TestPromptLanguages(t *testing.T) {
	assert.True(t, strings.Contains(Prompt("t", "hi"), "ट्रांसक्रिप्ट"))
	assert.True(t, strings.Contains(Prompt("t", "en"), "Transcript:"))
	assert.Contains(t, Prompt("the transcript body", "en"), "the transcript body")
}
