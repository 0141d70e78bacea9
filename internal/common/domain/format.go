package domain

// Format tells the transport how to treat markup in an outbound text.
type Format int

const (
	FormatPlain Format = iota
	// FormatHTML marks text that contains the <b>, <i> and <code> subset.
	FormatHTML
)
