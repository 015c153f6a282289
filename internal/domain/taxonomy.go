package domain

// IndustryCategory is one entry of the configured industry taxonomy.
// The configured order of categories is significant: it is the tie-break
// for equal keyword scores when the known-company tiers find nothing.
type IndustryCategory struct {
	Name             string   `json:"name"              yaml:"name"`
	Keywords         []string `json:"keywords"          yaml:"keywords"`
	RelatedCompanies []string `json:"related_companies" yaml:"related_companies"`
}
