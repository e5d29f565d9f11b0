package brief

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sumitagarwal-i/intellibrief/internal/llm"
	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// Placeholder copy used when the model degrades. Each field falls back
// independently so partial model output still contributes.
var placeholderInsight = models.Insight{
	Summary:        "Strategic analysis in progress...",
	PitchAngle:     "Personalized strategy being crafted...",
	SubjectLine:    "Subject line optimization pending...",
	WhatNotToPitch: "Risk assessment in progress...",
	SignalTag:      "Signal analysis pending...",
}

const insightSystemPrompt = `You are an elite B2B sales strategist. Respond ONLY with valid JSON in the exact format requested. No additional text, explanations, or formatting.`

// InsightGenerator produces the model-written sections of a brief. A
// failed or malformed model turn is absorbed into placeholder copy so
// the pipeline never fails on model degradation.
type InsightGenerator struct {
	provider llm.Provider
	opts     llm.ChatOptions
	timeout  time.Duration
	log      *logrus.Logger
}

func NewInsightGenerator(provider llm.Provider, opts llm.ChatOptions, timeout time.Duration, log *logrus.Logger) *InsightGenerator {
	return &InsightGenerator{provider: provider, opts: opts, timeout: timeout, log: log}
}

// Generate runs one model turn over the dossier and returns the merged
// insight. It never returns an error: degradation downgrades to
// placeholders.
func (g *InsightGenerator) Generate(ctx context.Context, companyName, userIntent, dossier string) models.Insight {
	if g.provider == nil {
		return placeholderInsight
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.provider.Chat(ctx, []llm.Message{
		llm.SystemMessage(insightSystemPrompt),
		llm.UserMessage(buildInsightPrompt(companyName, userIntent, dossier)),
	}, &g.opts)
	if err != nil {
		g.log.WithError(err).WithField("company", companyName).Warn("insight generation degraded, using placeholders")
		return placeholderInsight
	}

	insight, ok := parseInsight(resp.Content)
	if !ok {
		g.log.WithFields(logrus.Fields{
			"company": companyName,
			"model":   resp.Model,
		}).Warn("model output carried no parseable JSON, using placeholders")
		return placeholderInsight
	}
	return insight
}

func buildInsightPrompt(companyName, userIntent, dossier string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this real-time company intelligence and create a strategic outreach brief:\n\n%s\n\n", dossier)
	b.WriteString(`=== STRATEGIC BRIEF REQUIREMENTS ===
Create a comprehensive strategic brief with these EXACT JSON fields:

{
  "summary": "2-3 sentence executive summary of the company's current state, momentum, and strategic position based on the intelligence data",
  "pitchAngle": "Specific, personalized pitch strategy for the stated user intent, referencing actual signals from the data (news, hiring, tech stack). 3-4 sentences with concrete talking points",
  "subjectLine": "Compelling, personalized email subject line that references specific company intelligence (hiring, news, or tech signals)",
  "whatNotToPitch": "2-3 specific things to avoid mentioning based on current company situation, recent news, or market position",
  "signalTag": "One concise tag summarizing the strongest signal (e.g. 'Scaling AI Team', 'Recent Funding', 'Platform Migration')"
}

CRITICAL REQUIREMENTS:
- Reference SPECIFIC data points from the intelligence (actual news titles, job counts, technologies)
`)
	fmt.Fprintf(&b, "- Tailor everything to the user's stated intent: %q\n", userIntent)
	fmt.Fprintf(&b, "- Company in question: %s\n", companyName)
	b.WriteString(`- Be concrete and actionable, not generic
- Respond with ONLY the JSON object, no other text`)
	return b.String()
}

// parseInsight extracts the first balanced JSON object from the model
// output and merges its non-empty fields over the placeholder copy.
// Models wrap JSON in prose or code fences often enough that a strict
// whole-message parse is not viable.
func parseInsight(content string) (models.Insight, bool) {
	raw, ok := extractJSONObject(content)
	if !ok {
		return models.Insight{}, false
	}

	var parsed models.Insight
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Insight{}, false
	}

	out := placeholderInsight
	if parsed.Summary != "" {
		out.Summary = parsed.Summary
	}
	if parsed.PitchAngle != "" {
		out.PitchAngle = parsed.PitchAngle
	}
	if parsed.SubjectLine != "" {
		out.SubjectLine = parsed.SubjectLine
	}
	if parsed.WhatNotToPitch != "" {
		out.WhatNotToPitch = parsed.WhatNotToPitch
	}
	if parsed.SignalTag != "" {
		out.SignalTag = parsed.SignalTag
	}
	return out, true
}

// extractJSONObject scans for the first brace-balanced object in s,
// tracking string and escape state so braces inside field values do not
// end the scan early.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
