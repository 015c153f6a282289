// Package lookup resolves missing attendee details through searches of
// recent news coverage. Results are advisory: a failed lookup never fails
// the pipeline, the candidate simply stays unresolved.
package lookup

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/meeting-tracker/internal/classifier"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
	"github.com/jonesrussell/meeting-tracker/internal/newsapi"
)

const (
	// defaultTitle is assigned when coverage identifies the company but
	// not the person's exact role.
	defaultTitle = "CEO"

	personSearchPageSize  = 3
	companySearchPageSize = 5

	maxCompanyWords = 3
	minCompanyChars = 2
	maxCompanyChars = 30
)

// searcher is the slice of the news client the lookup needs.
type searcher interface {
	Everything(ctx context.Context, req newsapi.EverythingRequest) ([]newsapi.Article, error)
}

// NewsSearchLookup resolves officers and companies by scanning recent news
// coverage for title patterns. All outbound searches pass through a shared
// rate limiter.
type NewsSearchLookup struct {
	client  searcher
	names   *classifier.NameValidator
	limiter *rate.Limiter
	log     logger.Logger
}

// NewNewsSearchLookup creates a lookup over the given search client.
// requestsPerSecond bounds the outbound search rate; zero or less selects
// one request per second.
func NewNewsSearchLookup(client searcher, names *classifier.NameValidator, requestsPerSecond float64, log logger.Logger) *NewsSearchLookup {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &NewsSearchLookup{
		client:  client,
		names:   names,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		log:     log,
	}
}

var legalSuffixes = regexp.MustCompile(`\s+Inc\.?|\s+Corp\.?|\s+LLC|\s+Ltd\.?`)

// stopWords disqualify a captured phrase from being a company name.
var stopWords = map[string]struct{}{
	"the": {},
	"and": {},
	"for": {},
}

// personCompanyPatterns capture the company from phrasings around a person's
// name, e.g. "Jane Doe, CEO of Acme" or "Acme CEO Jane Doe". %s is the
// quoted person name.
var personCompanyPatterns = []string{
	`(?i)%s[^.]*?(?:CEO|President|Chairman|Chief Executive)[^.]*?(?:of|at)\s+([A-Z][A-Za-z0-9]+(?:\s+[A-Z][A-Za-z0-9]+)?)`,
	`(?i)([A-Z][A-Za-z0-9]+(?:\s+[A-Z][A-Za-z0-9]+)?)\s+(?:CEO|President|Chairman)\s+%s`,
}

// companyOfficerPatterns capture the officer's name from phrasings around a
// company name. %s is the quoted company name.
var companyOfficerPatterns = []string{
	`(?i)%s\s+CEO\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`,
	`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+),\s+(?:CEO|Chief Executive|Chief Executive Officer)\s+(?:of|at)\s+%s`,
	`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)\s+is\s+(?:the\s+)?CEO\s+(?:of|at)\s+%s`,
}

// LookupPersonCompany resolves the company a person leads. It first scans
// the article's own text for title patterns, then searches recent coverage
// of the person. Either way the result carries medium confidence.
func (l *NewsSearchLookup) LookupPersonCompany(ctx context.Context, person, contextText string) domain.CompanyLookupResult {
	patterns := compilePatterns(personCompanyPatterns, person)

	if company := matchCompany(patterns, contextText); company != "" {
		l.log.Debug("company resolved from article context",
			logger.String("person", person),
			logger.String("company", company))
		return domain.CompanyLookupResult{
			Status:     domain.LookupFound,
			Company:    company,
			Title:      defaultTitle,
			Confidence: domain.ConfidenceMedium,
		}
	}

	articles, err := l.search(ctx, fmt.Sprintf("%q CEO", person), personSearchPageSize)
	if err != nil {
		l.log.Warn("person lookup search failed",
			logger.String("person", person),
			logger.Error(err))
		return domain.CompanyLookupResult{Status: domain.LookupFailed, Err: err}
	}

	for _, article := range articles {
		text := article.Title + " " + article.Description + " " + article.Content
		if company := matchCompany(patterns, text); company != "" {
			l.log.Debug("company resolved from news search",
				logger.String("person", person),
				logger.String("company", company))
			return domain.CompanyLookupResult{
				Status:     domain.LookupFound,
				Company:    company,
				Title:      defaultTitle,
				Confidence: domain.ConfidenceMedium,
			}
		}
	}

	return domain.CompanyLookupResult{Status: domain.LookupNotFound}
}

// LookupCompanyOfficer resolves the current chief executive of a company
// from recent coverage. The captured name must pass person-name validation.
func (l *NewsSearchLookup) LookupCompanyOfficer(ctx context.Context, company string) domain.OfficerLookupResult {
	articles, err := l.search(ctx, fmt.Sprintf("%q CEO", company), companySearchPageSize)
	if err != nil {
		l.log.Warn("officer lookup search failed",
			logger.String("company", company),
			logger.Error(err))
		return domain.OfficerLookupResult{Status: domain.LookupFailed, Err: err}
	}

	patterns := compilePatterns(companyOfficerPatterns, company)
	for _, article := range articles {
		text := article.Title + " " + article.Description + " " + article.Content
		for _, pattern := range patterns {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			name := strings.TrimSpace(match[1])
			if !l.names.LooksLikePersonName(name) {
				continue
			}
			l.log.Debug("officer resolved from news search",
				logger.String("company", company),
				logger.String("name", name))
			return domain.OfficerLookupResult{
				Status: domain.LookupFound,
				Name:   name,
				Title:  defaultTitle,
			}
		}
	}

	return domain.OfficerLookupResult{Status: domain.LookupNotFound}
}

func (l *NewsSearchLookup) search(ctx context.Context, query string, pageSize int) ([]newsapi.Article, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.client.Everything(ctx, newsapi.EverythingRequest{
		Query:    query,
		SortBy:   "relevancy",
		PageSize: pageSize,
	})
}

func compilePatterns(templates []string, subject string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(templates))
	for _, tmpl := range templates {
		compiled = append(compiled, regexp.MustCompile(fmt.Sprintf(tmpl, regexp.QuoteMeta(subject))))
	}
	return compiled
}

// matchCompany runs the patterns over text and returns the first capture
// that survives cleanup and validation, or "".
func matchCompany(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if company := cleanCompanyName(match[1]); company != "" {
			return company
		}
	}
	return ""
}

// cleanCompanyName strips legal suffixes and trailing clauses, then rejects
// captures that do not read like a company name.
func cleanCompanyName(raw string) string {
	company := legalSuffixes.ReplaceAllString(strings.TrimSpace(raw), "")
	company = strings.SplitN(company, ",", 2)[0]
	company = strings.SplitN(company, ".", 2)[0]
	company = strings.TrimSpace(company)

	if len(company) < minCompanyChars || len(company) > maxCompanyChars {
		return ""
	}
	words := strings.Fields(company)
	if len(words) == 0 || len(words) > maxCompanyWords {
		return ""
	}
	for _, word := range words {
		if _, bad := stopWords[strings.ToLower(word)]; bad {
			return ""
		}
	}
	if company[0] < 'A' || company[0] > 'Z' {
		return ""
	}
	return company
}
