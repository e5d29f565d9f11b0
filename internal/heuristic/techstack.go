// Package heuristic infers a company's technology stack from signal
// text when the verified profiler returns nothing. Detection is a
// deterministic keyword scan over a fixed, ordered pattern table, so
// identical input always yields the identical ordered result.
package heuristic

import (
	"strings"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// maxDetections caps the inferred stack size.
const maxDetections = 12

// pattern is one row of the detection table.
type pattern struct {
	name       string
	keywords   []string
	category   string
	confidence models.Confidence
}

// techPatterns is scanned in order; output order follows table order.
// A slice rather than a map keeps iteration deterministic.
var techPatterns = []pattern{
	// Frontend frameworks
	{"React", []string{"react", "react.js", "reactjs"}, "Frontend", models.ConfidenceHigh},
	{"Vue.js", []string{"vue", "vue.js", "vuejs"}, "Frontend", models.ConfidenceHigh},
	{"Angular", []string{"angular", "angularjs"}, "Frontend", models.ConfidenceHigh},
	{"Next.js", []string{"next.js", "nextjs"}, "Frontend", models.ConfidenceMedium},
	{"Svelte", []string{"svelte", "sveltekit"}, "Frontend", models.ConfidenceMedium},

	// Backend technologies
	{"Node.js", []string{"node", "nodejs", "node.js"}, "Backend", models.ConfidenceHigh},
	{"Python", []string{"python", "django", "flask", "fastapi"}, "Backend", models.ConfidenceHigh},
	{"Java", []string{"java", "spring", "spring boot"}, "Backend", models.ConfidenceHigh},
	{"Go", []string{"golang", "go developer"}, "Backend", models.ConfidenceMedium},
	{"Ruby", []string{"ruby", "rails", "ruby on rails"}, "Backend", models.ConfidenceMedium},
	{"PHP", []string{"php", "laravel", "symfony"}, "Backend", models.ConfidenceMedium},

	// Cloud platforms
	{"AWS", []string{"aws", "amazon web services", "ec2", "s3", "lambda"}, "Cloud", models.ConfidenceHigh},
	{"Google Cloud", []string{"gcp", "google cloud", "firebase"}, "Cloud", models.ConfidenceHigh},
	{"Microsoft Azure", []string{"azure", "microsoft azure"}, "Cloud", models.ConfidenceHigh},
	{"Vercel", []string{"vercel"}, "Cloud", models.ConfidenceMedium},
	{"Netlify", []string{"netlify"}, "Cloud", models.ConfidenceMedium},

	// DevOps & infrastructure
	{"Docker", []string{"docker", "container"}, "DevOps", models.ConfidenceHigh},
	{"Kubernetes", []string{"kubernetes", "k8s"}, "DevOps", models.ConfidenceHigh},
	{"Jenkins", []string{"jenkins"}, "DevOps", models.ConfidenceMedium},
	{"GitHub Actions", []string{"github actions"}, "DevOps", models.ConfidenceMedium},

	// Databases
	{"PostgreSQL", []string{"postgres", "postgresql"}, "Database", models.ConfidenceHigh},
	{"MongoDB", []string{"mongo", "mongodb"}, "Database", models.ConfidenceHigh},
	{"Redis", []string{"redis"}, "Database", models.ConfidenceMedium},
	{"MySQL", []string{"mysql"}, "Database", models.ConfidenceMedium},
	{"Elasticsearch", []string{"elasticsearch", "elastic"}, "Database", models.ConfidenceMedium},

	// AI / ML
	{"TensorFlow", []string{"tensorflow", "tf"}, "AI/ML", models.ConfidenceHigh},
	{"PyTorch", []string{"pytorch"}, "AI/ML", models.ConfidenceHigh},
	{"OpenAI", []string{"openai", "gpt", "chatgpt"}, "AI/ML", models.ConfidenceMedium},
	{"Hugging Face", []string{"hugging face", "transformers"}, "AI/ML", models.ConfidenceMedium},

	// Languages
	{"TypeScript", []string{"typescript", "ts developer"}, "Language", models.ConfidenceHigh},
	{"JavaScript", []string{"javascript", "js developer"}, "Language", models.ConfidenceHigh},
	{"Rust", []string{"rust", "rust developer"}, "Language", models.ConfidenceMedium},

	// Other tools
	{"GraphQL", []string{"graphql"}, "API", models.ConfidenceMedium},
	{"Apache Kafka", []string{"kafka", "apache kafka"}, "Messaging", models.ConfidenceMedium},
	{"Stripe", []string{"stripe"}, "Payments", models.ConfidenceMedium},
}

// Input carries the signal text the engine scans.
type Input struct {
	CompanyName string
	Website     string
	SiteProfile string
	JobSignals  []models.JobSignal
	News        []models.NewsItem
}

// Detect infers the tech stack from the combined signal text. When no
// pattern matches it falls back to an industry-level inference, so the
// result is never empty. Output is capped to 12 items in table order.
func Detect(in Input) []models.TechStackItem {
	jobText := joinJobText(in.JobSignals)
	newsText := joinNewsText(in.News)
	allText := strings.ToLower(strings.Join([]string{
		in.CompanyName, in.Website, in.SiteProfile, jobText, newsText,
	}, " "))

	var detected []models.TechStackItem
	for _, p := range techPatterns {
		if len(detected) >= maxDetections {
			break
		}
		if !matchesAny(allText, p.keywords) {
			continue
		}
		detected = append(detected, models.TechStackItem{
			Name:       p.name,
			Confidence: p.confidence,
			Source:     attributeSource(jobText, newsText, p.keywords),
			Category:   p.category,
		})
	}

	if len(detected) == 0 {
		detected = industryFallback(allText)
	}
	if len(detected) > maxDetections {
		detected = detected[:maxDetections]
	}
	return detected
}

// attributeSource records which signal type produced the match.
// Precedence: job text, then news text, then the company profile.
func attributeSource(jobText, newsText string, keywords []string) string {
	if matchesAny(jobText, keywords) {
		return models.SourceJobSignal
	}
	if matchesAny(newsText, keywords) {
		return models.SourceNewsSignal
	}
	return models.SourceCompanyProfile
}

// industryFallback emits a small industry-standard stack keyed off
// broad domain cues, guaranteeing the tech stack is never empty.
func industryFallback(allText string) []models.TechStackItem {
	low := func(name, category, source string) models.TechStackItem {
		return models.TechStackItem{
			Name:       name,
			Confidence: models.ConfidenceLow,
			Source:     source,
			Category:   category,
		}
	}

	switch {
	case strings.Contains(allText, "ai") ||
		strings.Contains(allText, "machine learning") ||
		strings.Contains(allText, "data"):
		return []models.TechStackItem{
			low("Python", "Backend", models.SourceIndustryInference),
			low("TensorFlow", "AI/ML", models.SourceIndustryInference),
			low("AWS", "Cloud", models.SourceIndustryInference),
		}
	case strings.Contains(allText, "web") ||
		strings.Contains(allText, "frontend") ||
		strings.Contains(allText, "app"):
		return []models.TechStackItem{
			low("JavaScript", "Language", models.SourceIndustryInference),
			low("React", "Frontend", models.SourceIndustryInference),
			low("Node.js", "Backend", models.SourceIndustryInference),
		}
	default:
		return []models.TechStackItem{
			low("Cloud Infrastructure", "Cloud", models.SourceIndustryStandard),
			low("Modern Web Stack", "Frontend", models.SourceIndustryStandard),
		}
	}
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func joinJobText(jobs []models.JobSignal) string {
	var b strings.Builder
	for _, j := range jobs {
		b.WriteString(strings.ToLower(j.Title))
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(j.Description))
		b.WriteByte(' ')
	}
	return b.String()
}

func joinNewsText(news []models.NewsItem) string {
	var b strings.Builder
	for _, n := range news {
		b.WriteString(strings.ToLower(n.Title))
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(n.Description))
		b.WriteByte(' ')
	}
	return b.String()
}
