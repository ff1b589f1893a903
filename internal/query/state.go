// Package query implements the ad query pipeline: the filter/sort/pagination
// state model, the pure filter→sort→paginate engine, and the URL codec that
// makes library state shareable and bookmarkable.
package query

import "time"

// Sortable ad fields. Anything else is treated as unknown by the engine and
// leaves the working order untouched.
const (
	FieldDate            = "date"
	FieldCompanyName     = "companyName"
	FieldAdCopy          = "adCopy"
	FieldNewsletterCount = "newsletterCount"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Page size defaults: 12 for the card grid, 20 for table contexts.
const (
	DefaultPageSize = 12
	TablePageSize   = 20
)

// DateRange bounds an ad's observation date. Either side may be nil; both
// bounds are inclusive and compared by calendar day, not instant.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// CountRange bounds how many newsletters an ad ran in. Either side may be
// nil; both bounds are inclusive.
type CountRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Filters holds the user-chosen predicates narrowing the ad set.
type Filters struct {
	Search          string
	DateRange       DateRange
	Tags            []string
	NewsletterIDs   []string
	NewsletterCount CountRange
	CompanyID       string
}

// FilterPatch is a partial filter update. Nil fields leave the current value
// untouched; set fields replace it wholesale, DateRange included. A caller
// that wants to keep one date bound while moving the other must send the
// whole range.
type FilterPatch struct {
	Search          *string
	DateRange       *DateRange
	Tags            *[]string
	NewsletterIDs   *[]string
	NewsletterCount *CountRange
	CompanyID       *string
}

// Sort selects the field and direction the result set is ordered by.
type Sort struct {
	Field     string
	Direction string
}

// Pagination selects one page of the filtered set. Page is 1-based.
type Pagination struct {
	Page     int
	PageSize int
}

// State bundles everything the engine needs to compute a result page.
type State struct {
	Filters    Filters
	Sort       Sort
	Pagination Pagination
}

// DefaultFilters returns the empty filter set: everything matches.
func DefaultFilters() Filters {
	return Filters{}
}

// DefaultSort returns the canonical ordering: newest first.
func DefaultSort() Sort {
	return Sort{Field: FieldDate, Direction: Desc}
}

// DefaultPagination returns the first grid page.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: DefaultPageSize}
}

// DefaultState combines the component defaults.
func DefaultState() State {
	return State{
		Filters:    DefaultFilters(),
		Sort:       DefaultSort(),
		Pagination: DefaultPagination(),
	}
}

// Merge applies a partial update over the current filters and returns the
// result. Slices are copied so the merged state shares nothing with the patch.
func (f Filters) Merge(p FilterPatch) Filters {
	out := f
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.DateRange != nil {
		out.DateRange = *p.DateRange
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.NewsletterIDs != nil {
		out.NewsletterIDs = append([]string(nil), (*p.NewsletterIDs)...)
	}
	if p.NewsletterCount != nil {
		out.NewsletterCount = *p.NewsletterCount
	}
	if p.CompanyID != nil {
		out.CompanyID = *p.CompanyID
	}
	return out
}

// WithFilters merges a filter patch and resets pagination to the first page.
func (s State) WithFilters(p FilterPatch) State {
	s.Filters = s.Filters.Merge(p)
	s.Pagination.Page = 1
	return s
}

// WithSort replaces the sort order and resets pagination to the first page.
func (s State) WithSort(sort Sort) State {
	s.Sort = sort
	s.Pagination.Page = 1
	return s
}

// WithPage moves to another page without touching filters or sort.
func (s State) WithPage(page int) State {
	s.Pagination.Page = page
	return s
}

// WithPageSize changes the page size without touching filters or sort.
func (s State) WithPageSize(size int) State {
	s.Pagination.PageSize = size
	return s
}

// Normalize repairs inconsistent state instead of rejecting it: pages and
// sizes are clamped to sane values, an unset sort falls back to the default,
// and an inverted range (date or newsletter count) is dropped entirely
// rather than silently matching nothing. Unknown sort fields are kept as-is;
// the engine treats them as a no-op comparator.
func (s State) Normalize() State {
	if s.Pagination.Page < 1 {
		s.Pagination.Page = 1
	}
	if s.Pagination.PageSize < 1 {
		s.Pagination.PageSize = DefaultPageSize
	}
	if s.Sort.Field == "" {
		s.Sort.Field = FieldDate
	}
	if s.Sort.Direction != Asc && s.Sort.Direction != Desc {
		s.Sort.Direction = Desc
	}
	from, to := s.Filters.DateRange.From, s.Filters.DateRange.To
	if from != nil && to != nil && from.After(*to) {
		s.Filters.DateRange = DateRange{}
	}
	min, max := s.Filters.NewsletterCount.Min, s.Filters.NewsletterCount.Max
	if min != nil && max != nil && *min > *max {
		s.Filters.NewsletterCount = CountRange{}
	}
	return s
}
