package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// maxJobSignals caps the number of postings kept per company.
const maxJobSignals = 15

// JobsFetcher queries the JSearch API (RapidAPI) for full-time
// postings attributed to a company within the last month.
type JobsFetcher struct {
	apiKey  string
	baseURL string
	host    string
	client  *http.Client
	limiter *rate.Limiter
}

// JobsOption configures the jobs fetcher.
type JobsOption func(*JobsFetcher)

// WithJobsBaseURL overrides the JSearch endpoint (used in tests).
func WithJobsBaseURL(u string) JobsOption {
	return func(f *JobsFetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithJobsHTTPClient sets a custom HTTP client.
func WithJobsHTTPClient(c *http.Client) JobsOption {
	return func(f *JobsFetcher) { f.client = c }
}

// NewJobsFetcher creates a jobs fetcher.
func NewJobsFetcher(apiKey string, timeout time.Duration, opts ...JobsOption) *JobsFetcher {
	f := &JobsFetcher{
		apiKey:  apiKey,
		baseURL: "https://jsearch.p.rapidapi.com",
		host:    "jsearch.p.rapidapi.com",
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns up to 15 recent job postings for the company. An empty
// slice with a nil error means no hiring activity was found. Without an
// API key the fetcher reports no postings rather than an error.
func (f *JobsFetcher) Fetch(ctx context.Context, companyName string) ([]models.JobSignal, error) {
	if f.apiKey == "" {
		return nil, nil
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("query", companyName+" jobs")
	q.Set("page", "1")
	q.Set("num_pages", "1")
	q.Set("date_posted", "month")
	q.Set("employment_types", "FULLTIME")

	headers := map[string]string{
		"X-RapidAPI-Key":  f.apiKey,
		"X-RapidAPI-Host": f.host,
	}

	body, err := doGet(ctx, f.client, f.baseURL+"/search?"+q.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("jsearch: %w", err)
	}

	var payload jsearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("jsearch: decode: %w", err)
	}

	signals := make([]models.JobSignal, 0, maxJobSignals)
	for _, j := range payload.Data {
		if len(signals) >= maxJobSignals {
			break
		}
		city := j.JobCity
		if city == "" {
			city = "Remote"
		}
		country := j.JobCountry
		if country == "" {
			country = "Global"
		}
		signals = append(signals, models.JobSignal{
			Title:       j.JobTitle,
			Company:     j.EmployerName,
			Location:    city + ", " + country,
			PostedDate:  parseTime(j.JobPostedAt),
			Description: truncate(j.JobDescription, 500),
			Salary:      formatSalary(j),
		})
	}
	return signals, nil
}

// formatSalary normalizes the JSearch salary fields into one display
// string, e.g. "$120000-150000 YEAR". Returns "" unless both a period
// and a minimum are present.
func formatSalary(j jsearchJob) string {
	if j.JobSalaryPeriod == "" || j.JobMinSalary == nil {
		return ""
	}
	currency := j.JobSalaryCurrency
	if currency == "" {
		currency = "$"
	}
	s := currency + formatAmount(*j.JobMinSalary)
	if j.JobMaxSalary != nil {
		s += "-" + formatAmount(*j.JobMaxSalary)
	}
	return s + " " + j.JobSalaryPeriod
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// jsearchResponse is the subset of the JSearch payload we consume.
type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobTitle          string   `json:"job_title"`
	EmployerName      string   `json:"employer_name"`
	JobCity           string   `json:"job_city"`
	JobCountry        string   `json:"job_country"`
	JobPostedAt       string   `json:"job_posted_at_datetime_utc"`
	JobDescription    string   `json:"job_description"`
	JobSalaryPeriod   string   `json:"job_salary_period"`
	JobSalaryCurrency string   `json:"job_salary_currency"`
	JobMinSalary      *float64 `json:"job_min_salary"`
	JobMaxSalary      *float64 `json:"job_max_salary"`
}
