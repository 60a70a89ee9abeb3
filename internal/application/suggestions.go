package application

// suggestionVariants are appended to the query to form quick refinements.
var suggestionVariants = []string{
	"example",
	"tutorial",
	"definition",
	"for beginners",
	"advanced topics",
}

// Suggestions returns refinement suggestions for a partial query. An empty
// query yields an empty list, never nil.
func Suggestions(query string) []string {
	if query == "" {
		return []string{}
	}

	suggestions := make([]string, 0, len(suggestionVariants))
	for _, v := range suggestionVariants {
		suggestions = append(suggestions, query+" "+v)
	}
	return suggestions
}
