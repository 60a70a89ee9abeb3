package model

// SearchMode selects the answer-generation variant for a query.
type SearchMode string

const (
	// SearchModeFast requests a direct, concise answer.
	SearchModeFast SearchMode = "sonar"
	// SearchModeDetailed requests step-by-step reasoning.
	SearchModeDetailed SearchMode = "sonar-reasoning"
)

// Valid reports whether the mode is one of the known variants.
func (m SearchMode) Valid() bool {
	return m == SearchModeFast || m == SearchModeDetailed
}
