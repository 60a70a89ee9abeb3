package model

// Source is a single citation returned alongside a generated answer.
// Title and Snippet are optional provider extensions; only URL is guaranteed.
type Source struct {
	URL     string
	Title   string
	Snippet string
}

// Answer is the normalized result of one answer-generation call.
type Answer struct {
	Text       string
	HTML       string // Sanitized HTML rendering of Text for the UI.
	Sources    []Source
	Categories []string
}

// User identifies an authenticated caller as reported by the external
// identity provider.
type User struct {
	ID    string
	Email string
}
