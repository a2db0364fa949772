package domain

// Table is one tabular record set (a CSV file, or its database copy).
type Table struct {
	Category string     // logical category, e.g. "organizations"
	Columns  []string   // header, in file order
	Rows     [][]string // data rows, each padded to len(Columns)
}

// Index returns the position of column, or -1 if the table has no such column.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries column.
func (t *Table) HasColumn(column string) bool {
	return t.Index(column) >= 0
}

// Value returns the cell at row for column, or "" if either is out of range.
func (t *Table) Value(row int, column string) string {
	idx := t.Index(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Category: t.Category,
		Columns:  append([]string(nil), t.Columns...),
		Rows:     make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}
