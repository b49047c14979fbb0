package errors

// Error is a string type usable as a constant sentinel error.
type Error string

func (e Error) Error() string { return string(e) }
