package source

import "fmt"

// UnknownTableError is returned when a table name has no registered source
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table '%s' not found", e.Table)
}

// TransportError wraps any failure to fetch or decode a table's backing data
type TransportError struct {
	Table      string
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to load '%s': %v", e.Table, e.Underlying)
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// EmptyDatasetError is returned when a table loads successfully but has no records
type EmptyDatasetError struct {
	Table string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no data found in '%s'", e.Table)
}

// WrapTransportError creates a TransportError for table from err
func WrapTransportError(table string, err error) error {
	return &TransportError{Table: table, Underlying: err}
}
