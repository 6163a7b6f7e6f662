package ui

// QueryFinishedMsg is sent when an execution started by run-query resolves
type QueryFinishedMsg struct {
	Gen uint64
	Err error
}

// StoreChangedMsg is sent after any store transition
type StoreChangedMsg struct{}

// ExportCompleteMsg is sent when an export file has been written
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// ClipboardCopiedMsg is sent when clipboard copy completes
type ClipboardCopiedMsg struct {
	Err error
}

// PagerFinishedMsg is sent when the external pager exits
type PagerFinishedMsg struct {
	Err error
}

// HistoryClearedMsg is sent once persisted history has been wiped
type HistoryClearedMsg struct {
	Err error
}

// HistoryDeletedMsg is sent once one persisted entry has been removed
type HistoryDeletedMsg struct {
	Err error
}

// DebounceMsg applies a pending search term if no newer keystroke arrived
type DebounceMsg struct {
	ID int
}

// clearStatusMsg drops a transient status message
type clearStatusMsg struct {
	ID int
}
