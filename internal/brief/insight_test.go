package brief

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sumitagarwal-i/intellibrief/internal/llm"
)

type stubProvider struct {
	content string
	err     error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Response{Content: p.content, Model: "stub-model"}, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"summary":"x"}`,
			want:  `{"summary":"x"}`,
			ok:    true,
		},
		{
			name:  "surrounded by prose",
			input: "Here is your brief:\n{\"summary\":\"x\"}\nHope this helps!",
			want:  `{"summary":"x"}`,
			ok:    true,
		},
		{
			name:  "code fence",
			input: "```json\n{\"summary\":\"x\"}\n```",
			want:  `{"summary":"x"}`,
			ok:    true,
		},
		{
			name:  "braces inside string values",
			input: `{"summary":"uses {braces} and \"quotes\""}`,
			want:  `{"summary":"uses {braces} and \"quotes\""}`,
			ok:    true,
		},
		{
			name:  "nested object",
			input: `{"a":{"b":1},"c":2} trailing`,
			want:  `{"a":{"b":1},"c":2}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "sorry, I cannot help with that",
			ok:    false,
		},
		{
			name:  "unterminated object",
			input: `{"summary":"x"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInsightMergesOverPlaceholders(t *testing.T) {
	got, ok := parseInsight(`{"summary":"Momentum is strong.","signalTag":"Scaling AI Team"}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Summary != "Momentum is strong." {
		t.Errorf("summary not taken from model output: %q", got.Summary)
	}
	if got.SignalTag != "Scaling AI Team" {
		t.Errorf("signalTag not taken from model output: %q", got.SignalTag)
	}
	// Fields the model omitted keep placeholder copy.
	if got.PitchAngle != placeholderInsight.PitchAngle {
		t.Errorf("pitchAngle should fall back to placeholder, got %q", got.PitchAngle)
	}
	if got.SubjectLine != placeholderInsight.SubjectLine {
		t.Errorf("subjectLine should fall back to placeholder, got %q", got.SubjectLine)
	}
	if got.WhatNotToPitch != placeholderInsight.WhatNotToPitch {
		t.Errorf("whatNotToPitch should fall back to placeholder, got %q", got.WhatNotToPitch)
	}
}

func TestParseInsightMalformedJSON(t *testing.T) {
	if _, ok := parseInsight(`{"summary": broken}`); ok {
		t.Error("expected malformed JSON to fail")
	}
}

func TestGenerateProviderError(t *testing.T) {
	g := NewInsightGenerator(&stubProvider{err: errors.New("upstream down")}, llm.ChatOptions{}, time.Second, quietLogger())

	got := g.Generate(context.Background(), "Acme", "sell devtools", "dossier")
	if got != placeholderInsight {
		t.Errorf("expected placeholder insight on provider error, got %+v", got)
	}
}

func TestGenerateNoProvider(t *testing.T) {
	g := NewInsightGenerator(nil, llm.ChatOptions{}, time.Second, quietLogger())

	got := g.Generate(context.Background(), "Acme", "sell devtools", "dossier")
	if got != placeholderInsight {
		t.Errorf("expected placeholder insight without a provider, got %+v", got)
	}
}

func TestGenerateNoJSONInOutput(t *testing.T) {
	g := NewInsightGenerator(&stubProvider{content: "I refuse to answer in JSON."}, llm.ChatOptions{}, time.Second, quietLogger())

	got := g.Generate(context.Background(), "Acme", "sell devtools", "dossier")
	if got != placeholderInsight {
		t.Errorf("expected placeholder insight on unparseable output, got %+v", got)
	}
}

func TestGenerateFullOutput(t *testing.T) {
	content := "```json\n" + `{
		"summary": "Acme is scaling fast.",
		"pitchAngle": "Lead with their Kubernetes migration.",
		"subjectLine": "Your platform team is growing",
		"whatNotToPitch": "Avoid mentioning the layoffs.",
		"signalTag": "Platform Migration"
	}` + "\n```"
	g := NewInsightGenerator(&stubProvider{content: content}, llm.ChatOptions{}, time.Second, quietLogger())

	got := g.Generate(context.Background(), "Acme", "sell devtools", "dossier")
	if got.Summary != "Acme is scaling fast." {
		t.Errorf("unexpected summary %q", got.Summary)
	}
	if got.SignalTag != "Platform Migration" {
		t.Errorf("unexpected signalTag %q", got.SignalTag)
	}
	if got == placeholderInsight {
		t.Error("expected model output, got placeholders")
	}
}
