package repositories

import (
	"fmt"
	"strings"
	"time"
)

// UpdateBuilder collects the columns present in a partial-update request.
// Columns keep insertion order so the generated SQL is deterministic.
type UpdateBuilder struct {
	sets []string
	args []any
}

func (b *UpdateBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *UpdateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// SQL finalizes the statement, stamping updated_at and filtering by the key
// column. The returned args end with the key value.
func (b *UpdateBuilder) SQL(table, keyColumn string, keyValue any, returning string) (string, []any) {
	b.Set("updated_at", time.Now())
	args := append(b.args, keyValue)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(b.sets, ", "), keyColumn, len(args),
	)
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args
}
