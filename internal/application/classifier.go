package application

import (
	"regexp"
	"strings"
)

// advancedOperators matches quoted phrases, field filters (site:, filetype:,
// intitle:), boolean operators, and the exclusion operator.
var advancedOperators = regexp.MustCompile(`(?i)(".*?"|site:|filetype:|OR|AND|-|intitle:)`)

// nonWord strips punctuation before token analysis.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// stopwords are short connective words excluded from the significant-token count.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {},
	"what": {}, "when": {}, "where": {}, "how": {}, "why": {}, "who": {},
}

var questionWords = []string{"what", "when", "where", "how", "why", "who", "which"}

// AnalyzeComplexity reports whether a query warrants indefinite retention.
// A query is complex if it uses advanced search syntax, carries more than
// three significant tokens, contains more than one distinct question word,
// or exceeds 60 characters.
func AnalyzeComplexity(query string) bool {
	if advancedOperators.MatchString(query) {
		return true
	}

	lowered := strings.ToLower(query)

	significant := 0
	for _, word := range strings.Fields(nonWord.ReplaceAllString(lowered, "")) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		significant++
	}
	if significant > 3 {
		return true
	}

	questionCount := 0
	for _, word := range questionWords {
		if strings.Contains(lowered, word) {
			questionCount++
		}
	}

	return questionCount > 1 || len(query) > 60
}

// keywordCategory pairs a topical label with the keywords that trigger it.
type keywordCategory struct {
	label    string
	keywords []string
}

// keywordCategories is evaluated in declaration order against the combined
// query and answer text. Stored history records are categorized from the
// query alone at submission time.
var keywordCategories = []keywordCategory{
	{"History", []string{"history", "historical", "ancient", "century", "war", "dynasty"}},
	{"Science", []string{"science", "scientific", "physics", "chemistry", "biology", "experiment"}},
	{"Technology", []string{"technology", "tech", "computer", "software", "hardware", "digital"}},
	{"Health", []string{"health", "medical", "medicine", "disease", "treatment", "symptom"}},
	{"Business", []string{"business", "economy", "financial", "market", "company", "stock"}},
	{"Politics", []string{"politics", "government", "policy", "election", "president", "democracy"}},
	{"Arts & Culture", []string{"art", "culture", "music", "film", "literature", "painting"}},
	{"Sports", []string{"sports", "game", "athlete", "team", "championship", "olympic"}},
}

// factualPhrases flag fact-seeking queries for the extra "Factual Information" label.
var factualPhrases = []string{"what is", "how to", "when did", "where is"}

const maxKeywordCategories = 4

// CategorizeQuery produces the category labels stored with a history record.
// Classification happens at submission time from the query text alone.
func CategorizeQuery(query string) []string {
	return categorizeKeywords(query, "")
}

// categorizeKeywords runs the keyword table over the lowercased combined text.
// The result keeps matcher declaration order, is capped at four labels, and
// falls back to "General Knowledge" when nothing matches.
func categorizeKeywords(query, answer string) []string {
	combined := strings.ToLower(query + " " + answer)

	var matched []string
	for _, c := range keywordCategories {
		for _, kw := range c.keywords {
			if strings.Contains(combined, kw) {
				matched = append(matched, c.label)
				break
			}
		}
	}

	for _, phrase := range factualPhrases {
		if strings.Contains(combined, phrase) {
			matched = append(matched, "Factual Information")
			break
		}
	}

	if len(matched) > maxKeywordCategories {
		matched = matched[:maxKeywordCategories]
	}
	if len(matched) == 0 {
		return []string{"General Knowledge"}
	}
	return matched
}

// regexCategory pairs a domain label with the pattern that triggers it.
type regexCategory struct {
	label   string
	pattern *regexp.Regexp
}

// regexCategories is the tech-domain matcher table used for the live answer
// view. Evaluated in full, in declaration order, against the lowercased
// combined query and answer text.
var regexCategories = []regexCategory{
	{"Programming Languages", regexp.MustCompile(`\b(golang|python|javascript|typescript|rust|java|c\+\+|c#|ruby|php|kotlin|swift)\b`)},
	{"Web Development", regexp.MustCompile(`\b(html|css|react|vue|angular|frontend|backend|rest api|http|webpack|node\.?js)\b`)},
	{"Databases", regexp.MustCompile(`\b(sql|postgres|postgresql|mysql|sqlite|mongodb|redis|database|schema|index(es|ing)?)\b`)},
	{"Security", regexp.MustCompile(`\b(security|encryption|authentication|vulnerabilit(y|ies)|xss|csrf|tls|oauth|password)\b`)},
	{"Cloud & DevOps", regexp.MustCompile(`\b(cloud|aws|azure|gcp|docker|kubernetes|terraform|ci/cd|deployment|serverless)\b`)},
	{"AI & Machine Learning", regexp.MustCompile(`\b(machine learning|neural network|deep learning|llm|artificial intelligence|model training|embedding)\b`)},
	{"Mobile Development", regexp.MustCompile(`\b(android|ios|mobile app|flutter|react native|xcode)\b`)},
	{"Systems & Networking", regexp.MustCompile(`\b(linux|kernel|tcp|udp|dns|networking|operating system|filesystem)\b`)},
}

// CategorizeAnswer produces the display categories shown alongside a live
// answer. Unlike CategorizeQuery it sees both the query and the generated
// answer, appends "Complex Query" for complex queries, and falls back to
// "General". The two paths are deliberately separate: stored history labels
// and live answer labels may differ for the same query.
func CategorizeAnswer(query, answer string) []string {
	combined := strings.ToLower(query + " " + answer)

	var matched []string
	for _, c := range regexCategories {
		if c.pattern.MatchString(combined) {
			matched = append(matched, c.label)
		}
	}

	if AnalyzeComplexity(query) {
		matched = append(matched, "Complex Query")
	}

	if len(matched) == 0 {
		return []string{"General"}
	}
	return matched
}
