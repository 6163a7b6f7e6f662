package query

// ParseError is returned when no table name can be found in the query
type ParseError struct{}

func (e *ParseError) Error() string {
	return "could not parse table name from query"
}
