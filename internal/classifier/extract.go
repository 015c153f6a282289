package classifier

import (
	"context"
	"strings"

	"github.com/jonesrussell/meeting-tracker/internal/data"
	"github.com/jonesrussell/meeting-tracker/internal/domain"
	"github.com/jonesrussell/meeting-tracker/internal/logger"
)

// OfficerLookup is the optional dynamic lookup collaborator. Implementations
// resolve company officers and person/company pairs from live sources; both
// operations report an explicit status so callers can distinguish absence
// from collaborator failure.
type OfficerLookup interface {
	LookupCompanyOfficer(ctx context.Context, company string) domain.OfficerLookupResult
	LookupPersonCompany(ctx context.Context, person, contextText string) domain.CompanyLookupResult
}

// extractRule is one step of the extraction cascade: a named pattern pass
// over (text, candidates found so far). Rules tagged alwaysRun execute even
// when earlier rules produced candidates; rules tagged needsLookup are
// skipped when no lookup collaborator is configured.
type extractRule struct {
	name        string
	alwaysRun   bool
	needsLookup bool
	apply       func(x *Extractor, ctx context.Context, text string, found []domain.AttendeeCandidate) []domain.AttendeeCandidate
}

// Extractor runs the ordered extraction cascade over article text.
type Extractor struct {
	validator     *NameValidator
	lookup        OfficerLookup
	excludedNames []string
	rules         []extractRule
	log           logger.Logger
}

// NewExtractor builds the cascade. The lookup collaborator may be nil, which
// disables the two lookup-backed rules. excludedNames guards against the
// tracked political figures being extracted as attendees; empty means the
// default of Trump and Biden.
func NewExtractor(validator *NameValidator, lookup OfficerLookup, excludedNames []string, log logger.Logger) *Extractor {
	if validator == nil {
		validator = NewNameValidator(0)
	}
	if len(excludedNames) == 0 {
		excludedNames = []string{"Trump", "Biden"}
	}

	x := &Extractor{
		validator:     validator,
		lookup:        lookup,
		excludedNames: excludedNames,
		log:           log,
	}
	x.rules = []extractRule{
		{name: ruleNameTitleOrg, apply: (*Extractor).extractNameTitleOrg},
		{name: ruleOrgTitleName, apply: (*Extractor).extractOrgTitleName},
		{name: ruleOrgOfficerLookup, needsLookup: true, apply: (*Extractor).extractOrgOfficer},
		{name: ruleProminentFigure, alwaysRun: true, apply: (*Extractor).extractProminentFigures},
		{name: ruleUnknownName, needsLookup: true, apply: (*Extractor).extractUnknownNames},
	}
	return x
}

// Extract produces candidate attendees from article text. Rules run in
// order; a rule without the alwaysRun tag is skipped once any candidate has
// been found. Every candidate's organization has already passed the
// government/country filter.
func (x *Extractor) Extract(ctx context.Context, text string) []domain.AttendeeCandidate {
	var found []domain.AttendeeCandidate

	for _, rule := range x.rules {
		if rule.needsLookup && x.lookup == nil {
			continue
		}
		if !rule.alwaysRun && len(found) > 0 {
			continue
		}

		candidates := rule.apply(x, ctx, text, found)
		for _, c := range candidates {
			if hasCandidateNamed(found, c.Name) {
				continue
			}
			found = append(found, c)
		}

		if len(candidates) > 0 && x.log != nil {
			x.log.Debug("extraction rule matched",
				logger.String("rule", rule.name),
				logger.Int("candidates", len(candidates)))
		}
	}

	return found
}

// extractNameTitleOrg handles "Andy Jassy, CEO of Amazon" phrasing.
func (x *Extractor) extractNameTitleOrg(_ context.Context, text string, _ []domain.AttendeeCandidate) []domain.AttendeeCandidate {
	var out []domain.AttendeeCandidate

	for _, m := range nameTitleOrgPattern.FindAllStringSubmatch(text, -1) {
		name, title, org := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3])

		if data.IsGovernmentOrCountry(org) {
			continue
		}

		out = append(out, domain.AttendeeCandidate{
			Name:           name,
			Title:          title,
			Organization:   stripLegalSuffix(org),
			FoundInArticle: true,
		})
	}
	return out
}

// extractOrgTitleName handles "Amazon CEO Andy Jassy" phrasing.
func (x *Extractor) extractOrgTitleName(_ context.Context, text string, _ []domain.AttendeeCandidate) []domain.AttendeeCandidate {
	var out []domain.AttendeeCandidate

	for _, m := range orgTitleNamePattern.FindAllStringSubmatch(text, -1) {
		org, title, name := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3])

		if x.isExcludedName(name) {
			continue
		}
		if hasPoliticalQualifier(org) {
			continue
		}
		if data.IsGovernmentOrCountry(org) {
			continue
		}
		if len(strings.Fields(org)) > maxOrgWords {
			continue
		}

		out = append(out, domain.AttendeeCandidate{
			Name:           name,
			Title:          title,
			Organization:   stripLegalSuffix(org),
			FoundInArticle: true,
		})
	}
	return out
}

// extractOrgOfficer handles "Trump meets Intel CEO" phrasing where the
// officer is unnamed; the lookup collaborator resolves the current officer.
// Only the first organization mention is tried.
func (x *Extractor) extractOrgOfficer(ctx context.Context, text string, _ []domain.AttendeeCandidate) []domain.AttendeeCandidate {
	matches := orgOfficerPattern.FindAllStringSubmatch(text, 1)
	for _, m := range matches {
		org, title := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])

		if data.IsGovernmentOrCountry(org) {
			continue
		}

		result := x.lookup.LookupCompanyOfficer(ctx, org)
		if result.Status != domain.LookupFound {
			if result.Status == domain.LookupFailed && x.log != nil {
				x.log.Warn("company officer lookup failed",
					logger.String("company", org),
					logger.Error(result.Err))
			}
			continue
		}

		return []domain.AttendeeCandidate{{
			Name:           result.Name,
			Title:          title,
			Organization:   org,
			FoundInArticle: false,
		}}
	}
	return nil
}

// extractProminentFigures matches well-known business figures mentioned by
// name alone. Always runs; names already found are skipped by the caller.
func (x *Extractor) extractProminentFigures(_ context.Context, text string, found []domain.AttendeeCandidate) []domain.AttendeeCandidate {
	lower := strings.ToLower(" " + text + " ")
	var out []domain.AttendeeCandidate

	for _, name := range data.ProminentFigureNames() {
		if !strings.Contains(lower, strings.ToLower(name)) {
			continue
		}
		if hasCandidateNamed(found, name) {
			continue
		}
		info, _ := data.ProminentFigure(name)
		out = append(out, domain.AttendeeCandidate{
			Name:           name,
			Title:          info.Title,
			Organization:   info.Organization,
			FoundInArticle: true,
		})
	}
	return out
}

// extractUnknownNames scans capitalized token sequences, gates them through
// the name validator and a business-context window, and asks the lookup
// collaborator to resolve the person's company. Stops at the first success
// to bound external calls per article.
func (x *Extractor) extractUnknownNames(ctx context.Context, text string, found []domain.AttendeeCandidate) []domain.AttendeeCandidate {
	matches := namePattern.FindAllString(text, -1)
	if len(matches) > maxScannedNames {
		matches = matches[:maxScannedNames]
	}

	for _, name := range matches {
		if x.isExcludedName(name) {
			continue
		}
		if hasCandidateNamed(found, name) {
			continue
		}
		if !x.validator.LooksLikePersonName(name) {
			continue
		}
		if !nearBusinessContext(name, text) {
			continue
		}

		result := x.lookup.LookupPersonCompany(ctx, name, text)
		if result.Status != domain.LookupFound {
			if result.Status == domain.LookupFailed && x.log != nil {
				x.log.Warn("person company lookup failed",
					logger.String("name", name),
					logger.Error(result.Err))
			}
			continue
		}
		if data.IsGovernmentOrCountry(result.Company) {
			continue
		}

		return []domain.AttendeeCandidate{{
			Name:             name,
			Title:            result.Title,
			Organization:     result.Company,
			FoundInArticle:   true,
			LookupConfidence: result.Confidence,
		}}
	}
	return nil
}

// isExcludedName guards the extractor against tracked political figures.
func (x *Extractor) isExcludedName(name string) bool {
	for _, excluded := range x.excludedNames {
		if strings.Contains(name, excluded) {
			return true
		}
	}
	return false
}

func hasCandidateNamed(candidates []domain.AttendeeCandidate, name string) bool {
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
