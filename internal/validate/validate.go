// Package validate statically screens query text for read-only semantics
// before execution. It is a denylist, not a parser: it catches known-bad
// patterns and treats any ambiguity as invalid, and it deliberately does
// not attempt to prove safety by parsing a full grammar.
package validate

import (
	"encoding/json"
	"regexp"
	"strings"

	"medquery/internal/schema"
)

// Result is a normal typed value, not an error: callers probing arbitrary
// text get a verdict, never an exception path.
type Result struct {
	Valid    bool     `json:"is_valid"`
	ReadOnly bool     `json:"is_read_only"`
	Errors   []string `json:"errors,omitempty"`
}

// deniedKeywords are the mutating statements blocked anywhere in the text,
// word-bounded so names like created_at or settings pass.
var deniedKeywords = []struct {
	re   *regexp.Regexp
	desc string
}{
	{wordPattern("INSERT"), "INSERT"},
	{wordPattern("UPDATE"), "UPDATE"},
	{wordPattern("DELETE"), "DELETE"},
	{wordPattern("DROP"), "DROP"},
	{wordPattern("CREATE"), "CREATE"},
	{wordPattern("ALTER"), "ALTER"},
	{wordPattern("TRUNCATE"), "TRUNCATE"},
	{wordPattern("GRANT"), "GRANT"},
	{wordPattern("REVOKE"), "REVOKE"},
	{wordPattern("MERGE"), "MERGE"},
	{wordPattern("EXEC"), "EXEC"},
	{wordPattern("EXECUTE"), "EXECUTE"},
	{wordPattern("CALL"), "CALL"},
	{regexp.MustCompile(`(?i)(?:^|;)\s*SET\b`), "SET"},
	{regexp.MustCompile(`(?i)\bUNION\b[\s(]+(?:ALL[\s(]+)?SELECT\b`), "UNION SELECT"},
	{regexp.MustCompile(`(?i)\bINTO\s+(?:OUTFILE|DUMPFILE)\b`), "INTO OUTFILE"},
	{wordPattern("LOAD_FILE"), "LOAD_FILE"},
	{wordPattern("PG_READ_FILE"), "PG_READ_FILE"},
	{regexp.MustCompile(`(?i)\bCOPY\b.+\b(?:TO|FROM)\b`), "COPY"},
}

// chainedComment matches a semicolon followed by a comment marker, the
// classic statement-chaining injection shape.
var chainedComment = regexp.MustCompile(`;\s*(--|/\*|#)`)

func wordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9_])` + kw + `(?:[^A-Za-z0-9_]|$)`)
}

// Validate screens query text for the given family. SQL families get the
// denylist treatment; the document family expects a JSON filter object.
func Validate(queryText string, family schema.Family) Result {
	if family == schema.FamilyMongo {
		return validateDocumentFilter(queryText)
	}
	return validateSQL(queryText)
}

func validateSQL(queryText string) Result {
	trimmed := strings.TrimSpace(queryText)
	if trimmed == "" {
		return invalid("empty query")
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") || (len(upper) > 6 && isWordChar(upper[6])) {
		return invalid("query must start with SELECT")
	}

	if chainedComment.MatchString(trimmed) {
		return invalid("statement chaining via comment is not allowed")
	}

	cleaned := stripLiteralsAndComments(trimmed)

	var errs []string
	for _, dk := range deniedKeywords {
		if dk.re.MatchString(cleaned) {
			errs = append(errs, "query contains forbidden keyword: "+dk.desc)
		}
	}

	// Multiple statements: anything non-empty after a semicolon.
	if i := strings.Index(cleaned, ";"); i >= 0 && strings.TrimSpace(cleaned[i+1:]) != "" {
		errs = append(errs, "multiple statements are not allowed")
	}

	if len(errs) > 0 {
		return Result{Valid: false, ReadOnly: false, Errors: errs}
	}
	return Result{Valid: true, ReadOnly: true}
}

func invalid(msg string) Result {
	return Result{Valid: false, ReadOnly: false, Errors: []string{msg}}
}

func isWordChar(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// stripLiteralsAndComments blanks out single-quoted strings (with doubled
// quote escapes), line comments, and block comments so keywords inside
// them do not trip the denylist, while separators keep their positions.
func stripLiteralsAndComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\'':
			i++
			for i < len(s) {
				if s[i] == '\'' {
					if i+1 < len(s) && s[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			b.WriteByte(' ')
		case s[i] == '-' && i+1 < len(s) && s[i+1] == '-':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case s[i] == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			if i+1 < len(s) {
				i += 2
			} else {
				i = len(s)
			}
			b.WriteByte(' ')
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// mutatingFilterKeys are document operations rejected anywhere in a filter.
// $where and $function execute code server-side, so they are blocked too.
var mutatingFilterKeys = map[string]struct{}{
	"$out": {}, "$merge": {}, "$function": {}, "$where": {}, "$accumulator": {},
	"insert": {}, "update": {}, "delete": {}, "drop": {}, "remove": {},
	"findandmodify": {}, "create": {}, "rename": {}, "mapreduce": {},
}

func validateDocumentFilter(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("empty filter")
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return invalid("filter is not a parseable document")
	}

	var errs []string
	walkFilter(doc, &errs)
	if len(errs) > 0 {
		return Result{Valid: false, ReadOnly: false, Errors: errs}
	}
	return Result{Valid: true, ReadOnly: true}
}

func walkFilter(v interface{}, errs *[]string) {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if _, bad := mutatingFilterKeys[strings.ToLower(k)]; bad {
				*errs = append(*errs, "filter contains forbidden operation: "+k)
			}
			walkFilter(inner, errs)
		}
	case []interface{}:
		for _, inner := range val {
			walkFilter(inner, errs)
		}
	}
}
