package domain

// LookupStatus distinguishes "genuinely absent" from "collaborator errored"
// on dynamic lookup calls. Callers treat both non-found states as no result,
// but tests and logs can tell them apart.
type LookupStatus int

const (
	// LookupFound means the collaborator resolved a result.
	LookupFound LookupStatus = iota
	// LookupNotFound means the collaborator answered but had nothing.
	LookupNotFound
	// LookupFailed means the collaborator errored; treated as not found.
	LookupFailed
)

// OfficerLookupResult is the outcome of resolving a company's current
// titled officer.
type OfficerLookupResult struct {
	Status LookupStatus
	Name   string
	Title  string
	Err    error
}

// CompanyLookupResult is the outcome of resolving the company and title for
// a person's name.
type CompanyLookupResult struct {
	Status     LookupStatus
	Company    string
	Title      string
	Confidence string
	Err        error
}
