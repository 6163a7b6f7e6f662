package query

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		table    string
		hasTable bool
		limit    int
		hasLimit bool
	}{
		{"simple", "SELECT * FROM customers LIMIT 10;", "customers", true, 10, true},
		{"lowercase keywords", "select * from Orders limit 5", "orders", true, 5, true},
		{"no limit", "SELECT * FROM products", "products", true, 0, false},
		{"no from", "SELECT 1", "", false, 0, false},
		{"limit zero", "SELECT * FROM shippers LIMIT 0", "shippers", true, 0, true},
		{"first from wins", "SELECT * FROM employees JOIN orders FROM x", "employees", true, 0, false},
		{"multiline", "SELECT *\nFROM\n  regions\nLIMIT\t3", "regions", true, 3, true},
		{"trailing clauses ignored", "SELECT * FROM orders WHERE x = 1 ORDER BY y LIMIT 7 OFFSET 2", "orders", true, 7, true},
		{"word boundary", "SELECT * FROMcustomers", "", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.sql)
			assert.Equal(t, tt.table, p.Table)
			assert.Equal(t, tt.hasTable, p.HasTable)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.hasLimit, p.HasLimit)
		})
	}
}

func TestParse_LimitOverflowSaturates(t *testing.T) {
	p := Parse("SELECT * FROM t LIMIT 99999999999999999999999")
	require.True(t, p.HasLimit)
	assert.Equal(t, math.MaxInt, p.Limit)
	assert.Equal(t, 91, p.Apply(91))
}

func TestParsed_Apply(t *testing.T) {
	assert.Equal(t, 10, Parse("SELECT * FROM t LIMIT 10").Apply(91))
	assert.Equal(t, 3, Parse("SELECT * FROM t LIMIT 10").Apply(3))
	assert.Equal(t, 0, Parse("SELECT * FROM t LIMIT 0").Apply(3))
	assert.Equal(t, 91, Parse("SELECT * FROM t").Apply(91))
}

func TestParsed_TableName(t *testing.T) {
	name, err := Parse("SELECT * FROM Customers").TableName()
	require.NoError(t, err)
	assert.Equal(t, "customers", name)

	_, err = Parse("SELECT 1").TableName()
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "could not parse table name from query", err.Error())
}
