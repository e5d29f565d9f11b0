// Package models defines the shared data types for IntelliBrief:
// the Brief aggregate, the external signal records that feed it, and
// the request/provenance types used across the pipeline.
package models

import "time"

// Confidence indicates how certain a technology detection is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// BriefRequest is the inbound request to create a brief.
// CompanyName and UserIntent are required; Website is optional.
type BriefRequest struct {
	CompanyName string `json:"companyName"`
	Website     string `json:"website,omitempty"`
	UserIntent  string `json:"userIntent"`
}

// NewsItem is a single news article about the target company.
// Immutable once stored.
type NewsItem struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	PublishedAt   time.Time `json:"publishedAt"`
	Source        string    `json:"source"`
	SourceFavicon string    `json:"sourceFavicon,omitempty"`
}

// JobSignal is a single job posting attributed to the target company.
type JobSignal struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	PostedDate  time.Time `json:"postedDate"`
	Description string    `json:"description"`
	Salary      string    `json:"salary,omitempty"`
}

// TechStackItem is a detected technology with its provenance.
// Verified detections carry ConfidenceHigh and source "verified";
// heuristic detections record which signal type produced the match.
type TechStackItem struct {
	Name          string     `json:"name"`
	Confidence    Confidence `json:"confidence"`
	Source        string     `json:"source"`
	Category      string     `json:"category"`
	FirstDetected string     `json:"firstDetected,omitempty"`
}

// IntelligenceSources summarizes where the brief's data came from.
// Derived from the final arrays; never mutated independently.
type IntelligenceSources struct {
	News               int  `json:"news"`
	Jobs               int  `json:"jobs"`
	Technologies       int  `json:"technologies"`
	VerifiedSourceUsed bool `json:"verifiedSourceUsed"`
}

// Insight holds the five model-authored text fields of a brief.
type Insight struct {
	Summary        string `json:"summary"`
	PitchAngle     string `json:"pitchAngle"`
	SubjectLine    string `json:"subjectLine"`
	WhatNotToPitch string `json:"whatNotToPitch"`
	SignalTag      string `json:"signalTag"`
}

// Brief is the aggregate persisted output of one pipeline run.
// ID and CreatedAt are assigned by the store on insert.
type Brief struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
	Website     string `json:"website,omitempty"`
	UserIntent  string `json:"userIntent"`

	Summary        string `json:"summary"`
	PitchAngle     string `json:"pitchAngle"`
	SubjectLine    string `json:"subjectLine"`
	WhatNotToPitch string `json:"whatNotToPitch"`
	SignalTag      string `json:"signalTag"`

	News          []NewsItem      `json:"news"`
	TechStack     []string        `json:"techStack"`
	TechStackData []TechStackItem `json:"techStackData"`
	JobSignals    []JobSignal     `json:"jobSignals"`

	IntelligenceSources IntelligenceSources `json:"intelligenceSources"`
	HiringTrends        string              `json:"hiringTrends"`
	NewsTrends          string              `json:"newsTrends"`
	CompanyLogo         string              `json:"companyLogo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TechNames returns the ordered name projection of the given tech stack.
func TechNames(items []TechStackItem) []string {
	names := make([]string, len(items))
	for i, t := range items {
		names[i] = t.Name
	}
	return names
}

// UsedVerifiedSource reports whether any item came from the verified profiler.
func UsedVerifiedSource(items []TechStackItem) bool {
	for _, t := range items {
		if t.Source == SourceVerified {
			return true
		}
	}
	return false
}

// Provenance labels recorded on TechStackItem.Source.
const (
	SourceVerified          = "verified"
	SourceJobSignal         = "job signal"
	SourceNewsSignal        = "news signal"
	SourceCompanyProfile    = "company profile"
	SourceIndustryInference = "industry inference"
	SourceIndustryStandard  = "industry standard"
)
