package sqlstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/boolean-maybe/sieve/search"
)

// compiler translates a predicate tree into a WHERE fragment over the items
// table. Every fragment evaluates to true or false, never NULL, so NOT keeps
// the meaning it has in memory.
type compiler struct {
	now  time.Time
	args []any
}

// compile returns the SQL condition for p evaluated at now.
func compile(p search.Predicate, now time.Time) (string, []any, error) {
	c := &compiler{now: now}
	sql, err := c.expr(p)
	if err != nil {
		return "", nil, err
	}
	return sql, c.args, nil
}

var scalarColumns = map[string]string{
	search.FieldID:        "items.id",
	search.FieldStatus:    "items.status",
	search.FieldPriority:  "items.priority",
	search.FieldEnergy:    "items.energy",
	search.FieldCompleted: "items.completed",
}

var textColumns = map[string]string{
	search.FieldTitle:       "items.title",
	search.FieldDescription: "items.description",
	search.FieldWaitingFor:  "items.waiting_for",
}

func (c *compiler) bind(v any) string {
	c.args = append(c.args, v)
	return "?"
}

func (c *compiler) expr(p search.Predicate) (string, error) {
	switch e := p.(type) {
	case *search.BinaryExpr:
		return c.binary(e)
	case *search.UnaryExpr:
		if e.Op != search.OpNot {
			return "", fmt.Errorf("unsupported unary operator %q", e.Op)
		}
		inner, err := c.expr(e.Expr)
		if err != nil {
			return "", err
		}
		return "(NOT " + inner + ")", nil
	case *search.CompareExpr:
		return c.compare(e.Field, e.Op, e.Value)
	case *search.InExpr:
		return c.in(e)
	case *search.ExistsExpr:
		return c.exists(e)
	case *search.DueExpr:
		return c.due(e), nil
	case *search.RelationExpr:
		return c.relation(e)
	case *search.TextExpr:
		col, ok := textColumns[e.Field]
		if !ok {
			return "", fmt.Errorf("unsupported text field %q", e.Field)
		}
		return "(INSTR(LOWER(" + col + "), LOWER(" + c.bind(e.Value) + ")) > 0)", nil
	case nil:
		return "", fmt.Errorf("empty predicate")
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

func (c *compiler) binary(e *search.BinaryExpr) (string, error) {
	var op string
	switch e.Op {
	case search.OpAnd:
		op = " AND "
	case search.OpOr:
		op = " OR "
	default:
		return "", fmt.Errorf("unsupported binary operator %q", e.Op)
	}
	left, err := c.expr(e.Left)
	if err != nil {
		return "", err
	}
	right, err := c.expr(e.Right)
	if err != nil {
		return "", err
	}
	return "(" + left + op + right + ")", nil
}

func (c *compiler) compare(field, op string, value any) (string, error) {
	col, ok := scalarColumns[field]
	if !ok {
		return "", fmt.Errorf("unsupported compare field %q", field)
	}

	var sqlOp string
	switch op {
	case "=", "==":
		sqlOp = " = "
	case "!=":
		sqlOp = " <> "
	default:
		return "", fmt.Errorf("unsupported compare operator %q", op)
	}

	switch v := value.(type) {
	case string:
		return "(LOWER(" + col + ")" + sqlOp + "LOWER(" + c.bind(v) + "))", nil
	case int:
		return "(" + col + sqlOp + c.bind(v) + ")", nil
	case bool:
		n := 0
		if v {
			n = 1
		}
		return "(" + col + sqlOp + c.bind(n) + ")", nil
	default:
		return "", fmt.Errorf("unsupported compare value %T", value)
	}
}

func (c *compiler) in(e *search.InExpr) (string, error) {
	if len(e.Values) == 0 {
		if e.Not {
			return "(1)", nil
		}
		return "(0)", nil
	}
	parts := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		part, err := c.compare(e.Field, "=", v)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	sql := "(" + strings.Join(parts, " OR ") + ")"
	if e.Not {
		sql = "(NOT " + sql + ")"
	}
	return sql, nil
}

const whitespace = "' ' || char(9) || char(10) || char(13)"

func (c *compiler) exists(e *search.ExistsExpr) (string, error) {
	switch e.Field {
	case search.FieldDue:
		return "(items.due_date IS NOT NULL)", nil
	case search.FieldParent:
		return "(items.parent_id IS NOT NULL)", nil
	case search.FieldArea:
		return "(items.area_id IS NOT NULL)", nil
	case search.FieldContexts:
		return "(EXISTS (SELECT 1 FROM item_contexts ic WHERE ic.item_id = items.id))", nil
	case search.FieldTags:
		return "(EXISTS (SELECT 1 FROM item_tags it WHERE it.item_id = items.id))", nil
	case search.FieldDescription:
		return "(TRIM(items.description, " + whitespace + ") <> '')", nil
	default:
		return "", fmt.Errorf("unsupported exists field %q", e.Field)
	}
}

func (c *compiler) due(e *search.DueExpr) string {
	from, to := e.Window(c.now)
	conds := []string{"items.due_date IS NOT NULL"}
	if !from.IsZero() {
		conds = append(conds, "items.due_date >= "+c.bind(ceilUnix(from)))
	}
	conds = append(conds, "items.due_date < "+c.bind(ceilUnix(to)))
	return "(" + strings.Join(conds, " AND ") + ")"
}

// ceilUnix rounds t up to whole seconds. Due dates are stored in seconds, so
// due >= t and due < t hold exactly when they hold for the rounded value.
func ceilUnix(t time.Time) int64 {
	sec := t.Unix()
	if t.Nanosecond() > 0 {
		sec++
	}
	return sec
}

func (c *compiler) nameMatch(col string, e *search.RelationExpr) string {
	if e.Mode == search.MatchExact {
		return "LOWER(" + col + ") = LOWER(" + c.bind(e.Name) + ")"
	}
	return "INSTR(LOWER(" + col + "), LOWER(" + c.bind(e.Name) + ")) > 0"
}

func (c *compiler) relation(e *search.RelationExpr) (string, error) {
	switch e.Field {
	case search.FieldParent:
		if e.ID != 0 {
			return "(COALESCE(items.parent_id, 0) = " + c.bind(e.ID) + ")", nil
		}
		return "(items.parent_id IS NOT NULL AND " + c.nameMatch("items.parent_title", e) + ")", nil
	case search.FieldArea:
		return c.joined("SELECT 1 FROM areas a WHERE a.id = items.area_id", "a.id", "a.name", e), nil
	case search.FieldContexts:
		return c.joined("SELECT 1 FROM item_contexts ic JOIN contexts cx ON cx.id = ic.context_id WHERE ic.item_id = items.id",
			"cx.id", "cx.name", e), nil
	case search.FieldTags:
		return c.joined("SELECT 1 FROM item_tags it JOIN tags tg ON tg.id = it.tag_id WHERE it.item_id = items.id",
			"tg.id", "tg.name", e), nil
	default:
		return "", fmt.Errorf("unsupported relation field %q", e.Field)
	}
}

func (c *compiler) joined(subquery, idCol, nameCol string, e *search.RelationExpr) string {
	var match string
	if e.ID != 0 {
		match = idCol + " = " + c.bind(e.ID)
	} else {
		match = c.nameMatch(nameCol, e)
	}
	return "(EXISTS (" + subquery + " AND " + match + "))"
}
