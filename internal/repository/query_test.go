package repository

import (
	"net/url"
	"testing"

	"hotel-booking-api/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQueryDefaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{}, HotelQuerySchema)
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Empty(t, q.Filters)
	assert.Empty(t, q.Sort)
}

func TestParseListQueryRejectsUnknownFields(t *testing.T) {
	_, err := ParseListQuery(url.Values{"password": {"x"}, "$where": {"1"}}, UserQuerySchema)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
	assert.Contains(t, err.Error(), "$where, password")

	_, err = ParseListQuery(url.Values{"sort": {"-secret"}}, HotelQuerySchema)
	assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
}

func TestParseListQueryIgnoresReservedAndClampsLimit(t *testing.T) {
	q, err := ParseListQuery(url.Values{
		"select": {"name,address"},
		"page":   {"3"},
		"limit":  {"1000"},
		"sort":   {"-createdAt,name"},
	}, HotelQuerySchema)
	require.NoError(t, err)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 100, q.Limit)
	assert.Equal(t, []string{"-createdAt", "name"}, q.Sort)
}

func TestPagination(t *testing.T) {
	q := ListQuery{Page: 2, Limit: 10}

	p := q.Pagination(35)
	require.NotNil(t, p.Next)
	require.NotNil(t, p.Prev)
	assert.Equal(t, PageRef{Page: 3, Limit: 10}, *p.Next)
	assert.Equal(t, PageRef{Page: 1, Limit: 10}, *p.Prev)

	last := ListQuery{Page: 4, Limit: 10}.Pagination(35)
	assert.Nil(t, last.Next)
}
