// Package synth builds read-only retrieval queries from a classified
// unified schema. Plan construction is pure and request-scoped; dialect
// differences are resolved only at render time through the rule table.
package synth

import (
	"errors"
	"strconv"
	"strings"

	"medquery/internal/classify"
	"medquery/internal/schema"
)

var (
	// ErrNoAnchorTable means no table in the schema carries any
	// identifier-like column to anchor a query on.
	ErrNoAnchorTable = errors.New("no table qualifies as an anchor")

	// ErrNoFilterColumn means the chosen anchor has no identifier-like
	// column to filter against. Anchor selection normally guarantees one;
	// this is the defensive check for anchor-named tables without ids.
	ErrNoFilterColumn = errors.New("anchor table has no identifier column to filter on")
)

// Intent scopes how much of the schema a synthesized query pulls in.
type Intent int

const (
	Comprehensive Intent = iota
	Clinical
	Billing
	Basic
)

func (i Intent) String() string {
	switch i {
	case Clinical:
		return "clinical"
	case Billing:
		return "billing"
	case Basic:
		return "basic"
	default:
		return "comprehensive"
	}
}

// ParseIntent is case-insensitive; anything unrecognized defaults to
// comprehensive.
func ParseIntent(s string) Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clinical":
		return Clinical
	case "billing":
		return Billing
	case "basic":
		return Basic
	default:
		return Comprehensive
	}
}

// profile gathers every per-intent knob in one place so tests can assert
// on the configuration instead of digging constants out of the algorithm.
type profile struct {
	relatedClinical int
	relatedFinance  int
	relatedAdmin    int

	anchorColumnCap  int
	relatedColumnCap int

	// columnPatterns select non-identifier columns by substring; empty
	// means near-everything minus audit columns (comprehensive).
	columnPatterns []string
}

const (
	defaultLimit       = 100
	minPatternColumns  = 3
	fallbackColumnSpan = 8
)

var auditColumns = []string{"created_at", "updated_at", "created_by", "updated_by", "deleted_at"}

var profiles = map[Intent]profile{
	Comprehensive: {
		relatedClinical: 5, relatedFinance: 3, relatedAdmin: 2,
		anchorColumnCap: 20, relatedColumnCap: 12,
	},
	Clinical: {
		relatedClinical: 8,
		anchorColumnCap: 15, relatedColumnCap: 12,
		columnPatterns: []string{
			"code", "result", "value", "status", "date", "type", "name",
			"diagnos", "procedure", "medication", "dose", "lab",
			"observation", "onset", "severity",
		},
	},
	Billing: {
		relatedFinance: 5, relatedAdmin: 2,
		anchorColumnCap: 15, relatedColumnCap: 12,
		columnPatterns: []string{
			"amount", "total", "charge", "paid", "balance", "insurance",
			"claim", "bill", "payment", "date", "status", "code",
		},
	},
	Basic: {
		relatedClinical: 2,
		anchorColumnCap: 15, relatedColumnCap: 12,
		columnPatterns: []string{
			"name", "birth", "dob", "gender", "sex", "address", "phone",
			"email", "city", "state", "zip",
		},
	},
}

// Profile exposes the per-intent caps for assertions and observability.
func Profile(i Intent) (relatedCaps map[classify.Category]int, anchorColumns, relatedColumns int) {
	p := profiles[i]
	return map[classify.Category]int{
		classify.Clinical:       p.relatedClinical,
		classify.Financial:      p.relatedFinance,
		classify.Administrative: p.relatedAdmin,
	}, p.anchorColumnCap, p.relatedColumnCap
}

// commonJoinAliases are raw column names accepted as a join match even when
// reference guessing fails; source systems reuse these verbatim.
var commonJoinAliases = []string{
	"patient_id", "person_id", "member_id", "client_id", "subject_id", "individual_id",
}

// Related is one joined table in the plan.
type Related struct {
	Table        string
	Alias        string
	JoinColumn   string // column on the related table
	AnchorColumn string // column on the anchor table
	Columns      []string
	Predicate    string // rendered join predicate
}

// Plan is the ephemeral synthesis result backing one query; it exists for
// observability and is rebuilt from scratch on every call.
type Plan struct {
	AnchorTable      string
	AnchorAlias      string
	AnchorColumns    []string
	Related          []Related
	FilterColumn     string
	FilterPredicate  string
	PaginationClause string
	Warnings         []string
}

// Response is the JSON surface handed back to callers of the query
// operation.
type Response struct {
	Status         string   `json:"status"`
	GeneratedQuery string   `json:"generated_query,omitempty"`
	DatabaseType   string   `json:"database_type,omitempty"`
	PatientTable   string   `json:"patient_table,omitempty"`
	RelatedTables  []string `json:"related_tables,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Synthesize builds the plan and renders it for the schema's family.
// Identical inputs produce byte-identical output.
func Synthesize(s *schema.UnifiedSchema, cls classify.Result, intent Intent, entityID string, limit int) (string, *Plan, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	p := profiles[intent]

	anchor := selectAnchor(cls)
	if anchor == nil {
		return "", nil, ErrNoAnchorTable
	}

	filterCol := anchorKeyColumn(anchor.Table)
	if filterCol == "" {
		return "", nil, ErrNoFilterColumn
	}

	plan := &Plan{
		AnchorTable:   anchor.Table.Name,
		AnchorAlias:   "p",
		AnchorColumns: projectColumns(anchor.Table, p, "", p.anchorColumnCap),
		FilterColumn:  filterCol,
	}

	selectRelated(plan, cls, anchor, filterCol, p)

	text, err := render(plan, s.Family, entityID, limit)
	if err != nil {
		return "", nil, err
	}
	return text, plan, nil
}

// selectAnchor walks the ladder: first anchor-candidate table, then the
// first table with a foreign identifier, then the first table with any
// identifier-like column.
func selectAnchor(cls classify.Result) *classify.TableClass {
	for i := range cls.Tables {
		if cls.Tables[i].Category == classify.Anchor {
			return &cls.Tables[i]
		}
	}
	for i := range cls.Tables {
		if len(cls.Tables[i].ForeignIDs) > 0 {
			return &cls.Tables[i]
		}
	}
	for i := range cls.Tables {
		for _, c := range cls.Tables[i].Table.Columns {
			if schema.IdentifierLike(c.Name) {
				return &cls.Tables[i]
			}
		}
	}
	return nil
}

// anchorKeyColumn picks the column the entity filter (and the anchor side
// of every join) binds to: the inferred primary key, else the first
// identifier-like column.
func anchorKeyColumn(t *schema.Table) string {
	for _, c := range t.Columns {
		if c.PrimaryKey && schema.IdentifierLike(c.Name) {
			return c.Name
		}
	}
	for _, c := range t.Columns {
		if schema.IdentifierLike(c.Name) {
			return c.Name
		}
	}
	return ""
}

// selectRelated fills plan.Related up to the per-category caps, in schema
// order. A candidate with no inferable join predicate is dropped, recorded
// as a warning rather than an error; schema naming is too inconsistent to
// treat a missing join as fatal.
func selectRelated(plan *Plan, cls classify.Result, anchor *classify.TableClass, anchorCol string, p profile) {
	remaining := map[classify.Category]int{
		classify.Clinical:       p.relatedClinical,
		classify.Financial:      p.relatedFinance,
		classify.Administrative: p.relatedAdmin,
	}

	for i := range cls.Tables {
		tc := &cls.Tables[i]
		if tc.Table.Name == anchor.Table.Name {
			continue
		}
		left, ok := remaining[tc.Category]
		if !ok || left == 0 {
			continue
		}

		joinCol := inferJoinColumn(tc, anchor.Table.Name)
		if joinCol == "" {
			plan.Warnings = append(plan.Warnings,
				"skipped "+tc.Table.Name+": no join column relates it to "+anchor.Table.Name)
			continue
		}

		alias := "t" + strconv.Itoa(len(plan.Related)+1)
		plan.Related = append(plan.Related, Related{
			Table:        tc.Table.Name,
			Alias:        alias,
			JoinColumn:   joinCol,
			AnchorColumn: anchorCol,
			Columns:      projectColumns(tc.Table, p, joinCol, p.relatedColumnCap),
		})
		remaining[tc.Category] = left - 1
	}
}

// inferJoinColumn searches a candidate's foreign identifiers for one whose
// guessed reference names the anchor table, falling back to the common
// identifier aliases.
func inferJoinColumn(tc *classify.TableClass, anchorTable string) string {
	anchorLower := strings.ToLower(anchorTable)
	anchorSingular := schema.Singular(anchorTable)
	for _, fid := range tc.ForeignIDs {
		ref := strings.ToLower(fid.References)
		if ref == anchorLower || schema.Singular(ref) == anchorSingular {
			return fid.Column
		}
	}
	for _, fid := range tc.ForeignIDs {
		for _, alias := range commonJoinAliases {
			if strings.EqualFold(fid.Column, alias) {
				return fid.Column
			}
		}
	}
	return ""
}

// projectColumns selects a table's output columns: every identifier-like
// column first, then intent-pattern matches, bounded by cap. When pattern
// matching yields too few columns the projection falls back to leading
// schema-order columns, since sparse matches usually mean the source uses
// unfamiliar naming. excludeCol drops the join column from related tables.
func projectColumns(t *schema.Table, p profile, excludeCol string, colCap int) []string {
	var selected []string
	taken := make(map[string]bool)
	add := func(name string) {
		if len(selected) >= colCap || taken[strings.ToLower(name)] {
			return
		}
		taken[strings.ToLower(name)] = true
		selected = append(selected, name)
	}

	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, excludeCol) {
			continue
		}
		if schema.IdentifierLike(c.Name) {
			add(c.Name)
		}
	}
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, excludeCol) {
			continue
		}
		if matchesIntent(c.Name, p) {
			add(c.Name)
		}
	}

	if len(selected) < minPatternColumns {
		selected = nil
		taken = make(map[string]bool)
		for _, c := range t.Columns {
			if len(selected) >= fallbackColumnSpan {
				break
			}
			if strings.EqualFold(c.Name, excludeCol) {
				continue
			}
			add(c.Name)
		}
	}
	return selected
}

func matchesIntent(column string, p profile) bool {
	n := strings.ToLower(column)
	if len(p.columnPatterns) == 0 {
		// comprehensive: near-everything, minus audit columns
		for _, audit := range auditColumns {
			if n == audit {
				return false
			}
		}
		return true
	}
	for _, pat := range p.columnPatterns {
		if strings.Contains(n, pat) {
			return true
		}
	}
	return false
}
