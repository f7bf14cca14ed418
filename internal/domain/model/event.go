package model

// Layout selects which certificate blocks an event page carries.
type Layout string

const (
	// LayoutSingle is a page with one certificate block.
	LayoutSingle Layout = "single"
	// LayoutPositions is a page with one certificate block per podium position.
	LayoutPositions Layout = "positions"
)

// Event describes one verification sub-page, e.g. /hfestP/.
type Event struct {
	Name        string
	Title       string
	Description string // Markdown.
	Layout      Layout

	// VerificationEvent pins the event segment used in verification URLs.
	// Empty means it is derived from the request path.
	VerificationEvent string
}

// LookupOutcome labels the result of a single verification lookup.
type LookupOutcome string

const (
	OutcomeVerified             LookupOutcome = "verified"
	OutcomeNoMatch              LookupOutcome = "no_match"
	OutcomeFetchError           LookupOutcome = "fetch_error"
	OutcomeParseError           LookupOutcome = "parse_error"
	OutcomeUnrecognizedPosition LookupOutcome = "unrecognized_position"
)
