package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/timemedia/adlibrary/internal/model"
)

// Result is one page of a query plus the pre-pagination match count.
// Invariant: len(Data) == min(PageSize, max(0, Total-(Page-1)*PageSize)).
type Result struct {
	Data     []model.Ad `json:"data"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// Run applies filters, sorting and pagination to records. It is pure and
// total: records are never mutated, no input combination fails, and an
// out-of-range page yields an empty slice rather than an error.
func Run(records []model.Ad, st State) Result {
	st = st.Normalize()

	matched := make([]model.Ad, 0, len(records))
	for _, ad := range records {
		if matches(ad, st.Filters) {
			matched = append(matched, ad)
		}
	}

	sortAds(matched, st.Sort)

	total := len(matched)
	start := (st.Pagination.Page - 1) * st.Pagination.PageSize
	end := start + st.Pagination.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Data:     matched[start:end],
		Total:    total,
		Page:     st.Pagination.Page,
		PageSize: st.Pagination.PageSize,
	}
}

// matches applies the filter stages in fixed order: text search, date range,
// tags, newsletters, newsletter count, company. Every stage passes when its
// filter is unset.
func matches(ad model.Ad, f Filters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(ad.CompanyName), needle) &&
			!strings.Contains(strings.ToLower(ad.AdCopy), needle) {
			return false
		}
	}

	day := Day(ad.Date)
	if f.DateRange.From != nil && day.Before(Day(*f.DateRange.From)) {
		return false
	}
	if f.DateRange.To != nil && day.After(Day(*f.DateRange.To)) {
		return false
	}

	if len(f.Tags) > 0 && !intersects(ad.Company.Tags, f.Tags) {
		return false
	}

	if len(f.NewsletterIDs) > 0 {
		ids := make([]string, len(ad.Newsletters))
		for i, n := range ad.Newsletters {
			ids[i] = n.ID
		}
		if !intersects(ids, f.NewsletterIDs) {
			return false
		}
	}

	if f.NewsletterCount.Min != nil && len(ad.Newsletters) < *f.NewsletterCount.Min {
		return false
	}
	if f.NewsletterCount.Max != nil && len(ad.Newsletters) > *f.NewsletterCount.Max {
		return false
	}

	if f.CompanyID != "" && ad.CompanyID != f.CompanyID {
		return false
	}

	return true
}

// Day truncates a timestamp to its calendar day in UTC. Range bounds compare
// at day granularity so a timezone offset never excludes a boundary record.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// intersects reports whether the two sets share at least one element.
func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// fieldCmp pairs a field's base ordering with its missing-value test.
type fieldCmp struct {
	missing func(model.Ad) bool
	cmp     func(a, b model.Ad) int
}

// fieldComparator returns the comparator for a sortable field, or nil for
// unknown fields.
func fieldComparator(field string) *fieldCmp {
	switch field {
	case FieldDate:
		return &fieldCmp{
			missing: func(a model.Ad) bool { return a.Date.IsZero() },
			cmp: func(a, b model.Ad) int {
				switch {
				case a.Date.Before(b.Date):
					return -1
				case a.Date.After(b.Date):
					return 1
				}
				return 0
			},
		}
	case FieldCompanyName:
		coll := collate.New(language.English)
		return &fieldCmp{
			missing: func(a model.Ad) bool { return a.CompanyName == "" },
			cmp: func(a, b model.Ad) int {
				return coll.CompareString(a.CompanyName, b.CompanyName)
			},
		}
	case FieldAdCopy:
		coll := collate.New(language.English)
		return &fieldCmp{
			missing: func(a model.Ad) bool { return a.AdCopy == "" },
			cmp: func(a, b model.Ad) int {
				return coll.CompareString(a.AdCopy, b.AdCopy)
			},
		}
	case FieldNewsletterCount:
		return &fieldCmp{
			// an empty newsletter list is a defined count of zero
			missing: func(model.Ad) bool { return false },
			cmp: func(a, b model.Ad) int {
				return len(a.Newsletters) - len(b.Newsletters)
			},
		}
	}
	return nil
}

// sortAds orders ads in place with a stable sort. Missing values sort after
// all defined values regardless of direction; equal values keep their
// filtered order.
func sortAds(ads []model.Ad, s Sort) {
	fc := fieldComparator(s.Field)
	if fc == nil {
		return
	}
	dir := 1
	if s.Direction == Desc {
		dir = -1
	}
	sort.SliceStable(ads, func(i, j int) bool {
		a, b := ads[i], ads[j]
		am, bm := fc.missing(a), fc.missing(b)
		if am || bm {
			return !am && bm
		}
		return fc.cmp(a, b)*dir < 0
	})
}
