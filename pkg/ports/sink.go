package ports

// EntrySink receives every entry appended to the event log, in order.
// Sinks are called synchronously and must not append to the log themselves.
type EntrySink interface {
	Write(entry Entry) error
}

// SinkFunc is a function adapter for the EntrySink interface.
type SinkFunc func(entry Entry) error

// Write implements the EntrySink interface.
func (f SinkFunc) Write(entry Entry) error {
	return f(entry)
}
