package postgres

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// where collects AND-ed conditions written with ? placeholders
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// searchPattern turns user input into an ILIKE pattern matching it anywhere
func searchPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// paginate appends LIMIT/OFFSET unless the filter is unlimited
func paginate(query string, args []interface{}, filter types.BaseFilter) (string, []interface{}) {
	if filter == nil || filter.IsUnlimited() {
		return query, args
	}
	query += " LIMIT ? OFFSET ?"
	return query, append(args, filter.GetLimit(), filter.GetOffset())
}

// rebind converts ? placeholders to the postgres $n form
func rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
