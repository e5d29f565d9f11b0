package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Sumitagarwal-i/intellibrief/internal/heuristic"
	"github.com/Sumitagarwal-i/intellibrief/internal/signals"
	"github.com/Sumitagarwal-i/intellibrief/internal/store"
	"github.com/Sumitagarwal-i/intellibrief/internal/trends"
	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// ValidationError rejects a malformed request before any fetching or
// persistence happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewsSource fetches recent news coverage for a company.
type NewsSource interface {
	Fetch(ctx context.Context, companyName string) ([]models.NewsItem, error)
}

// JobsSource fetches recent job postings for a company.
type JobsSource interface {
	Fetch(ctx context.Context, companyName string) ([]models.JobSignal, error)
}

// TechSource fetches the verified technology profile of a domain.
type TechSource interface {
	Fetch(ctx context.Context, domain string) ([]models.TechStackItem, error)
}

// SiteProfiler extracts a short text profile from a company homepage.
type SiteProfiler interface {
	Profile(ctx context.Context, website string) string
}

// Pipeline runs one brief generation end to end: fetch signals
// concurrently, derive trends, synthesize insight, persist.
type Pipeline struct {
	news    NewsSource
	jobs    JobsSource
	tech    TechSource
	site    SiteProfiler
	insight *InsightGenerator
	store   store.Store
	log     *logrus.Logger
}

func NewPipeline(news NewsSource, jobs JobsSource, tech TechSource, site SiteProfiler, insight *InsightGenerator, st store.Store, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		news:    news,
		jobs:    jobs,
		tech:    tech,
		site:    site,
		insight: insight,
		store:   st,
		log:     log,
	}
}

// Run executes the pipeline for one request. Signal fetch failures
// degrade gracefully; only validation and persistence failures surface
// as errors.
func (p *Pipeline) Run(ctx context.Context, req models.BriefRequest) (*models.Brief, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Website = strings.TrimSpace(req.Website)
	req.UserIntent = strings.TrimSpace(req.UserIntent)
	if req.CompanyName == "" || req.UserIntent == "" {
		return nil, &ValidationError{Message: "Company name and user intent are required"}
	}

	domain := signals.ExtractDomain(req.Website)
	started := time.Now()
	p.log.WithFields(logrus.Fields{
		"company": req.CompanyName,
		"domain":  domain,
	}).Info("starting brief generation")

	var (
		news        []models.NewsItem
		jobs        []models.JobSignal
		tech        []models.TechStackItem
		siteProfile string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := p.news.Fetch(gctx, req.CompanyName)
		if err != nil {
			p.log.WithError(err).Warn("news fetch degraded")
			return nil
		}
		news = items
		return nil
	})
	g.Go(func() error {
		items, err := p.jobs.Fetch(gctx, req.CompanyName)
		if err != nil {
			p.log.WithError(err).Warn("jobs fetch degraded")
			return nil
		}
		jobs = items
		return nil
	})
	g.Go(func() error {
		items, err := p.tech.Fetch(gctx, domain)
		if err != nil {
			p.log.WithError(err).Warn("tech stack fetch degraded")
			return nil
		}
		tech = items
		return nil
	})
	g.Go(func() error {
		siteProfile = p.site.Profile(gctx, req.Website)
		return nil
	})
	g.Wait()

	// Heuristic inference only fills in when the verified profiler
	// produced nothing, so verified data always wins outright.
	if len(tech) == 0 {
		tech = heuristic.Detect(heuristic.Input{
			CompanyName: req.CompanyName,
			Website:     req.Website,
			SiteProfile: siteProfile,
			JobSignals:  jobs,
			News:        news,
		})
		p.log.WithField("detected", len(tech)).Info("tech stack inferred heuristically")
	}

	hiringTrends := trends.ExtractHiring(jobs)
	newsTrends := trends.ExtractNews(news)

	dossier := buildDossier(dossierInput{
		Request:      req,
		Domain:       domain,
		News:         news,
		Jobs:         jobs,
		Tech:         tech,
		HiringTrends: hiringTrends,
		NewsTrends:   newsTrends,
	})
	insight := p.insight.Generate(ctx, req.CompanyName, req.UserIntent, dossier)

	b := &models.Brief{
		CompanyName:    req.CompanyName,
		Website:        req.Website,
		UserIntent:     req.UserIntent,
		Summary:        insight.Summary,
		PitchAngle:     insight.PitchAngle,
		SubjectLine:    insight.SubjectLine,
		WhatNotToPitch: insight.WhatNotToPitch,
		SignalTag:      insight.SignalTag,
		News:           emptyIfNil(news),
		TechStack:      models.TechNames(tech),
		TechStackData:  emptyIfNil(tech),
		JobSignals:     emptyIfNil(jobs),
		IntelligenceSources: models.IntelligenceSources{
			News:               len(news),
			Jobs:               len(jobs),
			Technologies:       len(tech),
			VerifiedSourceUsed: models.UsedVerifiedSource(tech),
		},
		HiringTrends: hiringTrends,
		NewsTrends:   newsTrends,
	}
	if domain != "" {
		b.CompanyLogo = signals.LogoURL(domain)
	}

	if err := p.store.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("persist brief: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"company":  req.CompanyName,
		"briefId":  b.ID,
		"news":     len(news),
		"jobs":     len(jobs),
		"tech":     len(tech),
		"verified": b.IntelligenceSources.VerifiedSourceUsed,
		"elapsed":  time.Since(started).Round(time.Millisecond),
	}).Info("brief generated")

	return b, nil
}

// emptyIfNil keeps the persisted arrays JSON-encoding as [] rather
// than null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
