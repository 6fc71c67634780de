package precedent

import (
	"fmt"
	"strings"

	"github.com/kermartin/jurisearch/internal/domain"
)

// recordColumns lists the selected columns in scan order. Nullable text
// columns are coalesced so rows scan into plain strings; date, block and the
// embedding join stay nullable.
const recordColumns = `p.id, p.title, COALESCE(p.court, ''), p.judgment_date,
	COALESCE(p.abstract, ''), COALESCE(p.reasoning, ''),
	COALESCE(p.strategic_notes, ''), COALESCE(p.defense_theses, ''),
	COALESCE(p.topic, ''), COALESCE(p.link, ''), p.binding,
	COALESCE(p.cited_provisions, '{}'), COALESCE(p.phase, ''), p.block,
	e.vector, e.dim`

const fromClause = `FROM precedents p
	LEFT JOIN precedent_embeddings e ON e.precedent_id = p.id`

// dateOrder is the browse ordering: newest first, id as tie-break.
const dateOrder = `ORDER BY p.judgment_date DESC NULLS LAST, p.id DESC`

// buildPredicates translates filters into SQL predicates with positional
// arguments. Malformed binding/block values produce no predicate.
func buildPredicates(f domain.Filters) ([]string, []any) {
	var preds []string
	var args []any

	like := func(column, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		args = append(args, value)
		preds = append(preds, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, len(args)))
	}

	like("p.topic", f.Topic)
	like("p.court", f.Court)
	like("p.phase", f.Phase)
	like("p.defense_theses", f.Thesis)

	if p := strings.TrimSpace(f.Provision); p != "" {
		args = append(args, p)
		preds = append(preds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(p.cited_provisions) AS d WHERE d ILIKE '%%' || $%d || '%%')",
			len(args)))
	}
	if binding, ok := f.BindingValue(); ok {
		args = append(args, binding)
		preds = append(preds, fmt.Sprintf("p.binding = $%d", len(args)))
	}
	if block, ok := f.BlockValue(); ok {
		args = append(args, block)
		preds = append(preds, fmt.Sprintf("p.block = $%d", len(args)))
	}

	return preds, args
}

func whereClause(preds []string) string {
	if len(preds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(preds, "\n  AND ")
}
