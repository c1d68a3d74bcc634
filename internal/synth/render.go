package synth

import (
	"fmt"
	"strings"

	"medquery/internal/dialect"
	"medquery/internal/schema"
)

// render turns a plan into dialect-correct text. This is the only point
// where dialect rules are consulted; the plan itself is family-agnostic.
func render(plan *Plan, family schema.Family, entityID string, limit int) (string, error) {
	rules, err := dialect.RulesFor(string(family))
	if err != nil {
		return "", err
	}

	var cols []string
	for _, c := range plan.AnchorColumns {
		cols = append(cols, plan.AnchorAlias+"."+rules.Quote(c))
	}
	for _, rel := range plan.Related {
		for _, c := range rel.Columns {
			cols = append(cols, rel.Alias+"."+rules.Quote(c))
		}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if rules.Pagination == dialect.PrefixTop {
		plan.PaginationClause = fmt.Sprintf("TOP %d", limit)
		b.WriteString(plan.PaginationClause)
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(rules.Quote(plan.AnchorTable))
	b.WriteString(" ")
	b.WriteString(plan.AnchorAlias)

	for i := range plan.Related {
		rel := &plan.Related[i]
		rel.Predicate = fmt.Sprintf("%s.%s = %s.%s",
			plan.AnchorAlias, rules.Quote(rel.AnchorColumn),
			rel.Alias, rules.Quote(rel.JoinColumn))
		b.WriteString(" LEFT JOIN ")
		b.WriteString(rules.Quote(rel.Table))
		b.WriteString(" ")
		b.WriteString(rel.Alias)
		b.WriteString(" ON ")
		b.WriteString(rel.Predicate)
	}

	plan.FilterPredicate = fmt.Sprintf("%s.%s = '%s'",
		plan.AnchorAlias, rules.Quote(plan.FilterColumn), escapeLiteral(entityID))
	b.WriteString(" WHERE ")
	b.WriteString(plan.FilterPredicate)

	switch rules.Pagination {
	case dialect.SuffixLimit:
		plan.PaginationClause = fmt.Sprintf("LIMIT %d", limit)
		b.WriteString(" ")
		b.WriteString(plan.PaginationClause)
	case dialect.PredicateRownum:
		plan.PaginationClause = fmt.Sprintf("ROWNUM <= %d", limit)
		b.WriteString(" AND ")
		b.WriteString(plan.PaginationClause)
	}

	return b.String(), nil
}

// escapeLiteral doubles embedded single quotes so the entity id always
// renders as one string literal. The id is never interpreted beyond that.
func escapeLiteral(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
