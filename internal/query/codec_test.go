package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	st := DefaultState()
	st.Filters = Filters{
		Search: "acme",
		DateRange: DateRange{
			From: dayPtr(2025, time.January, 2),
			To:   dayPtr(2025, time.January, 30),
		},
		Tags:            []string{"tech", "finance"},
		NewsletterIDs:   []string{"n1", "n2"},
		NewsletterCount: CountRange{Min: intPtr(1), Max: intPtr(3)},
		CompanyID:       "c1",
	}
	st.Sort = Sort{Field: FieldCompanyName, Direction: Asc}
	st.Pagination = Pagination{Page: 3, PageSize: 20}

	decoded := Decode(Encode(st))

	assert.Equal(t, st, decoded)
}

func TestDecodeEmptyYieldsDefaults(t *testing.T) {
	assert.Equal(t, DefaultState(), Decode(url.Values{}))
}

func TestDecodeMalformedFallsBackToDefaults(t *testing.T) {
	v := url.Values{}
	v.Set("page", "banana")
	v.Set("pageSize", "-5")
	v.Set("dateFrom", "not-a-date")
	v.Set("sortDirection", "sideways")

	st := Decode(v)

	assert.Equal(t, 1, st.Pagination.Page)
	assert.Equal(t, DefaultPageSize, st.Pagination.PageSize)
	assert.Nil(t, st.Filters.DateRange.From)
	assert.Equal(t, Desc, st.Sort.Direction)
}

func TestDecodeRepeatedParams(t *testing.T) {
	v := url.Values{}
	v.Add("tags", "tech")
	v.Add("tags", "finance")
	v.Add("newsletters", "n1")
	v.Add("newsletters", "n2")

	st := Decode(v)

	assert.Equal(t, []string{"tech", "finance"}, st.Filters.Tags)
	assert.Equal(t, []string{"n1", "n2"}, st.Filters.NewsletterIDs)
}

func TestDecodeAcceptsInstants(t *testing.T) {
	v := url.Values{}
	v.Set("dateFrom", "2025-01-02T15:04:05Z")

	st := Decode(v)

	require.NotNil(t, st.Filters.DateRange.From)
	assert.Equal(t, time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC), *st.Filters.DateRange.From)
}

func TestDecodeCountRange(t *testing.T) {
	v := url.Values{}
	v.Set("countMin", "2")
	v.Set("countMax", "4")

	st := Decode(v)

	require.NotNil(t, st.Filters.NewsletterCount.Min)
	require.NotNil(t, st.Filters.NewsletterCount.Max)
	assert.Equal(t, 2, *st.Filters.NewsletterCount.Min)
	assert.Equal(t, 4, *st.Filters.NewsletterCount.Max)

	v = url.Values{}
	v.Set("countMin", "banana")
	v.Set("countMax", "-1")

	st = Decode(v)

	assert.Nil(t, st.Filters.NewsletterCount.Min)
	assert.Nil(t, st.Filters.NewsletterCount.Max)
}

func TestDecodeNormalizesInvertedRange(t *testing.T) {
	v := url.Values{}
	v.Set("dateFrom", "2025-01-10")
	v.Set("dateTo", "2025-01-01")

	st := Decode(v)

	assert.Nil(t, st.Filters.DateRange.From)
	assert.Nil(t, st.Filters.DateRange.To)
}

func TestEncodeOmitsUnsetFilters(t *testing.T) {
	v := Encode(DefaultState())

	assert.False(t, v.Has("search"))
	assert.False(t, v.Has("dateFrom"))
	assert.False(t, v.Has("tags"))
	assert.False(t, v.Has("companyId"))
	assert.Equal(t, "date", v.Get("sortField"))
	assert.Equal(t, "desc", v.Get("sortDirection"))
	assert.Equal(t, "1", v.Get("page"))
}
