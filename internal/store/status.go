package store

// StatusKind enumerates execution states
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Status is the execution state. Message is set only for StatusError.
type Status struct {
	Kind    StatusKind
	Message string
}

func Idle() Status    { return Status{Kind: StatusIdle} }
func Loading() Status { return Status{Kind: StatusLoading} }
func Success() Status { return Status{Kind: StatusSuccess} }

// Failed returns an error status carrying msg
func Failed(msg string) Status {
	return Status{Kind: StatusError, Message: msg}
}

func (s Status) IsLoading() bool { return s.Kind == StatusLoading }
func (s Status) IsError() bool   { return s.Kind == StatusError }
