package query

import (
	"net/url"
	"strconv"
	"time"
)

// Query parameter names for the ads read endpoint and shareable library
// URLs. tags and newsletters may repeat.
const (
	paramPage        = "page"
	paramPageSize    = "pageSize"
	paramSortField   = "sortField"
	paramSortDir     = "sortDirection"
	paramSearch      = "search"
	paramDateFrom    = "dateFrom"
	paramDateTo      = "dateTo"
	paramTags        = "tags"
	paramNewsletters = "newsletters"
	paramCountMin    = "countMin"
	paramCountMax    = "countMax"
	paramCompanyID   = "companyId"
)

const dayFormat = "2006-01-02"

// Encode serializes state into URL query parameters. Unset filters are
// omitted; sort and pagination are always written so the decoded state does
// not depend on the caller's defaults.
func Encode(st State) url.Values {
	v := url.Values{}
	if st.Filters.Search != "" {
		v.Set(paramSearch, st.Filters.Search)
	}
	if st.Filters.DateRange.From != nil {
		v.Set(paramDateFrom, st.Filters.DateRange.From.UTC().Format(dayFormat))
	}
	if st.Filters.DateRange.To != nil {
		v.Set(paramDateTo, st.Filters.DateRange.To.UTC().Format(dayFormat))
	}
	for _, tag := range st.Filters.Tags {
		v.Add(paramTags, tag)
	}
	for _, id := range st.Filters.NewsletterIDs {
		v.Add(paramNewsletters, id)
	}
	if st.Filters.NewsletterCount.Min != nil {
		v.Set(paramCountMin, strconv.Itoa(*st.Filters.NewsletterCount.Min))
	}
	if st.Filters.NewsletterCount.Max != nil {
		v.Set(paramCountMax, strconv.Itoa(*st.Filters.NewsletterCount.Max))
	}
	if st.Filters.CompanyID != "" {
		v.Set(paramCompanyID, st.Filters.CompanyID)
	}
	v.Set(paramSortField, st.Sort.Field)
	v.Set(paramSortDir, st.Sort.Direction)
	v.Set(paramPage, strconv.Itoa(st.Pagination.Page))
	v.Set(paramPageSize, strconv.Itoa(st.Pagination.PageSize))
	return v
}

// EncodeQuery returns the encoded query-string form of Encode.
func EncodeQuery(st State) string {
	return Encode(st).Encode()
}

// Decode parses query parameters into state. Missing or malformed
// parameters fall back to defaults; Decode never fails. The result is
// normalized, so an inverted date range arrives already repaired.
func Decode(v url.Values) State {
	st := DefaultState()
	if s := v.Get(paramSearch); s != "" {
		st.Filters.Search = s
	}
	st.Filters.DateRange.From = parseDay(v.Get(paramDateFrom))
	st.Filters.DateRange.To = parseDay(v.Get(paramDateTo))
	if tags := v[paramTags]; len(tags) > 0 {
		st.Filters.Tags = append([]string(nil), tags...)
	}
	if ids := v[paramNewsletters]; len(ids) > 0 {
		st.Filters.NewsletterIDs = append([]string(nil), ids...)
	}
	st.Filters.NewsletterCount.Min = parseCount(v.Get(paramCountMin))
	st.Filters.NewsletterCount.Max = parseCount(v.Get(paramCountMax))
	st.Filters.CompanyID = v.Get(paramCompanyID)
	if f := v.Get(paramSortField); f != "" {
		st.Sort.Field = f
	}
	if d := v.Get(paramSortDir); d != "" {
		st.Sort.Direction = d
	}
	if p, err := strconv.Atoi(v.Get(paramPage)); err == nil {
		st.Pagination.Page = p
	}
	if ps, err := strconv.Atoi(v.Get(paramPageSize)); err == nil {
		st.Pagination.PageSize = ps
	}
	return st.Normalize()
}

// parseCount accepts a non-negative integer; anything else is treated as
// unset.
func parseCount(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// parseDay accepts plain dates and RFC 3339 instants; anything else is
// treated as unset.
func parseDay(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(dayFormat, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t
	}
	return nil
}
