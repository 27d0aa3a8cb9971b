package store

import (
	"strings"

	"github.com/alextreichler/pharmadmin/internal/listing"
)

// conds accumulates AND-ed WHERE clauses.
type conds struct {
	clauses []string
	args    []any
}

func (c *conds) add(clause string, args ...any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

func (c *conds) String() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// dateRange constrains a millisecond column to the filter's calendar days.
func (c *conds) dateRange(column string, d listing.DateRange) {
	from, to := d.Bounds()
	if !from.IsZero() {
		c.add(column+" >= ?", from.UnixMilli())
	}
	if !to.IsZero() {
		c.add(column+" < ?", to.UnixMilli())
	}
}

// containsFold matches a case-insensitive substring without LIKE wildcards.
func (c *conds) containsFold(column, value string) {
	c.add("instr(lower("+column+"), lower(?)) > 0", value)
}
