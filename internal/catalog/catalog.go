// Package catalog holds the canned queries offered in the query picker
package catalog

// PredefinedQuery is a named, ready-to-run query
type PredefinedQuery struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	SQL         string `toml:"sql"`
	Description string `toml:"description"`
}

// Catalog is an ordered, read-only list of predefined queries
type Catalog struct {
	queries []PredefinedQuery
}

// Defaults returns the built-in Northwind queries
func Defaults() []PredefinedQuery {
	return []PredefinedQuery{
		{
			ID:          "all-customers",
			Name:        "All Customers",
			SQL:         "SELECT * FROM customers LIMIT 10;",
			Description: "Retrieve all customer records",
		},
		{
			ID:          "recent-orders",
			Name:        "Recent Orders",
			SQL:         "SELECT * FROM orders ORDER BY OrderDate DESC LIMIT 20;",
			Description: "Most recent orders",
		},
		{
			ID:          "product-inventory",
			Name:        "Product Inventory",
			SQL:         "SELECT ProductID, ProductName, UnitsInStock, UnitsOnOrder FROM products WHERE Discontinued = 0;",
			Description: "Current product inventory",
		},
		{
			ID:          "employee-list",
			Name:        "Employee List",
			SQL:         "SELECT EmployeeID, FirstName, LastName, Title, City FROM employees;",
			Description: "All employees",
		},
		{
			ID:          "top-products",
			Name:        "Top Products",
			SQL:         "SELECT ProductID, ProductName, UnitPrice FROM products ORDER BY UnitPrice DESC LIMIT 10;",
			Description: "Highest priced products",
		},
	}
}

// New builds a catalog from the defaults followed by extra. An extra query
// reusing a default ID replaces it in place.
func New(extra ...PredefinedQuery) *Catalog {
	qs := Defaults()
	for _, q := range extra {
		if q.ID == "" || q.SQL == "" {
			continue
		}
		replaced := false
		for i := range qs {
			if qs[i].ID == q.ID {
				qs[i] = q
				replaced = true
				break
			}
		}
		if !replaced {
			qs = append(qs, q)
		}
	}
	return &Catalog{queries: qs}
}

// All returns a copy of every query in order
func (c *Catalog) All() []PredefinedQuery {
	out := make([]PredefinedQuery, len(c.queries))
	copy(out, c.queries)
	return out
}

// Find returns the query with the given ID
func (c *Catalog) Find(id string) (PredefinedQuery, bool) {
	for _, q := range c.queries {
		if q.ID == id {
			return q, true
		}
	}
	return PredefinedQuery{}, false
}

// First returns the default current query
func (c *Catalog) First() PredefinedQuery {
	if len(c.queries) == 0 {
		return PredefinedQuery{}
	}
	return c.queries[0]
}

func (c *Catalog) Len() int { return len(c.queries) }
