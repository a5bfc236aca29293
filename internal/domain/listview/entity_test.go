package listview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationPageCountAliases(t *testing.T) {
	var p Pagination
	require.NoError(t, json.Unmarshal([]byte(`{"page":2,"limit":5,"pages":4,"total":17}`), &p))
	assert.Equal(t, Pagination{Page: 2, Limit: 5, Pages: 4, Total: 17}, p)

	p = Pagination{}
	require.NoError(t, json.Unmarshal([]byte(`{"page":1,"limit":5,"total_pages":3,"total":11}`), &p))
	assert.Equal(t, 3, p.Pages)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1,"limit":5,"pages":3,"total":11}`, string(out))
}

func TestEmptyPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 5, Pages: 1, Total: 0}, EmptyPagination(5))
}
