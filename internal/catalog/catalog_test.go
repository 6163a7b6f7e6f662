package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	require.Equal(t, 5, c.Len())
	assert.Equal(t, "all-customers", c.First().ID)
	assert.Equal(t, "SELECT * FROM customers LIMIT 10;", c.First().SQL)

	q, ok := c.Find("top-products")
	require.True(t, ok)
	assert.Equal(t, "Top Products", q.Name)

	_, ok = c.Find("nope")
	assert.False(t, ok)
}

func TestNew_ExtraQueries(t *testing.T) {
	c := New(
		PredefinedQuery{ID: "shippers", Name: "Shippers", SQL: "SELECT * FROM shippers"},
		PredefinedQuery{ID: "all-customers", Name: "Customers", SQL: "SELECT * FROM customers"},
		PredefinedQuery{ID: "broken"},
	)
	require.Equal(t, 6, c.Len())
	assert.Equal(t, "SELECT * FROM customers", c.First().SQL)
	assert.Equal(t, "shippers", c.All()[5].ID)
}
