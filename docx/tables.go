package docx

// CellLayout places one cell of a table on the grid.
type CellLayout struct {
	Cell    *Cell
	Column  int // first grid column covered
	ColSpan int
	RowSpan int
	// Continuation marks a cell covered by a vertical merge that started in
	// an earlier row. Its content belongs to the merge origin.
	Continuation bool
}

// Layout returns the grid placement of every cell, row by row, with
// vertical merges resolved into row spans on the merge origin.
func (t *Table) Layout() [][]CellLayout {
	type origin struct{ row, idx int }

	layout := make([][]CellLayout, len(t.Rows))
	open := make(map[int]origin) // grid column -> merge origin

	for rowIdx, row := range t.Rows {
		col := 0
		for _, cell := range row.Cells {
			span := max(cell.GridSpan, 1)
			cl := CellLayout{Cell: cell, Column: col, ColSpan: span, RowSpan: 1}

			switch cell.VMerge {
			case MergeContinue:
				if o, ok := open[col]; ok {
					layout[o.row][o.idx].RowSpan++
					cl.Continuation = true
				}
			case MergeRestart:
				open[col] = origin{row: rowIdx, idx: len(layout[rowIdx])}
			default:
				delete(open, col)
			}

			layout[rowIdx] = append(layout[rowIdx], cl)
			col += span
		}
	}

	return layout
}

// Columns returns the width of the widest row in grid columns.
func (t *Table) Columns() int {
	colCount := 0
	for _, row := range t.Rows {
		count := 0
		for _, cell := range row.Cells {
			count += max(cell.GridSpan, 1)
		}
		colCount = max(colCount, count)
	}
	return colCount
}
