package content

import (
	"time"
)

// Section names a group of landing page fields. The set is closed: the Tree
// type declares one struct per section.
type Section string

const (
	SectionHero       Section = "hero"
	SectionExecutives Section = "executives"
	SectionBenefits   Section = "benefits"
	SectionCTA        Section = "cta"
	SectionTheme      Section = "theme"
	SectionHeader     Section = "header"
	SectionFooter     Section = "footer"
)

// Cache identifiers for the merged landing page content.
const (
	CacheKey = "landing-page-content"
	CacheTag = "landing-page"
)

// Valid reports whether s is one of the declared sections.
func (s Section) Valid() bool {
	_, ok := schema.bySection[s]
	return ok
}

// ContentRow is one stored override for a (section, key) pair.
type ContentRow struct {
	ID        int64     `db:"id" json:"id"`
	Section   Section   `db:"section" json:"section"`
	Key       string    `db:"content_key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedBy *int64    `db:"updated_by" json:"updated_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateStatus tells an admin update apart from a write that found no row.
type UpdateStatus int

const (
	StatusUpdated UpdateStatus = iota + 1
	StatusNotFound
)

func (s UpdateStatus) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// UpdateResult is returned by Store.Update. Row is only set when Status is
// StatusUpdated.
type UpdateResult struct {
	Status UpdateStatus
	Row    ContentRow
}

// Update is a single requested edit.
type Update struct {
	Section Section `json:"section"`
	Key     string  `json:"key"`
	Value   string  `json:"value"`
}

// ItemError describes why one item of a bulk update failed.
type ItemError struct {
	Section Section `json:"section"`
	Key     string  `json:"key"`
	Error   string  `json:"error"`

	err error
}

// Outcome classifies a bulk update.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomePartial
	OutcomeFailure
)

// BulkResult collects the per-item results of a bulk update, in request order.
type BulkResult struct {
	Succeeded []ContentRow
	Failed    []ItemError
}

func (r BulkResult) Outcome() Outcome {
	switch {
	case len(r.Failed) == 0:
		return OutcomeSuccess
	case len(r.Succeeded) == 0:
		return OutcomeFailure
	default:
		return OutcomePartial
	}
}

// LandingPageResponse is the public GET payload.
type LandingPageResponse struct {
	Content Tree         `json:"content"`
	Raw     []ContentRow `json:"raw"`
}

// UpdateRequest is the PATCH payload.
type UpdateRequest struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// BulkUpdateRequest is the PUT payload.
type BulkUpdateRequest struct {
	Updates []UpdateRequest `json:"updates"`
}

// BulkUpdateResponse reports per-item results of a PUT.
type BulkUpdateResponse struct {
	Success bool         `json:"success"`
	Code    string       `json:"code,omitempty"` // set unless every item succeeded
	Results []ContentRow `json:"results"`
	Errors  []ItemError  `json:"errors,omitempty"`
}
