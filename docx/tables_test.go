package docx

import "testing"

func TestTable_Layout(t *testing.T) {
	cell := func(span int, vmerge string) *Cell {
		return &Cell{GridSpan: span, VMerge: vmerge}
	}

	// +-----+-----+-----+
	// |  A (2 cols)| B   |
	// +-----+-----+-----+
	// | C   | D   | E   |
	// |     +-----+     |
	// |     | F   |     |
	// +-----+-----+-----+
	tbl := &Table{Rows: []*Row{
		{Cells: []*Cell{cell(2, MergeNone), cell(1, MergeNone)}},
		{Cells: []*Cell{cell(1, MergeRestart), cell(1, MergeNone), cell(1, MergeRestart)}},
		{Cells: []*Cell{cell(1, MergeContinue), cell(1, MergeNone), cell(1, MergeContinue)}},
	}}

	layout := tbl.Layout()
	if len(layout) != 3 {
		t.Fatalf("got %d rows, want 3", len(layout))
	}

	tests := []struct {
		row, idx     int
		column       int
		colSpan      int
		rowSpan      int
		continuation bool
	}{
		{0, 0, 0, 2, 1, false},
		{0, 1, 2, 1, 1, false},
		{1, 0, 0, 1, 2, false},
		{1, 2, 2, 1, 2, false},
		{2, 0, 0, 1, 1, true},
		{2, 1, 1, 1, 1, false},
		{2, 2, 2, 1, 1, true},
	}

	for _, tt := range tests {
		got := layout[tt.row][tt.idx]
		if got.Column != tt.column || got.ColSpan != tt.colSpan || got.RowSpan != tt.rowSpan || got.Continuation != tt.continuation {
			t.Errorf("cell [%d][%d] = %+v, want column %d colspan %d rowspan %d continuation %v",
				tt.row, tt.idx, got, tt.column, tt.colSpan, tt.rowSpan, tt.continuation)
		}
	}

	if tbl.Columns() != 3 {
		t.Errorf("Columns() = %d, want 3", tbl.Columns())
	}
}

func TestTable_LayoutOrphanContinuation(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		{Cells: []*Cell{{GridSpan: 1, VMerge: MergeContinue}}},
	}}

	got := tbl.Layout()[0][0]
	if got.Continuation {
		t.Error("continuation without an origin should be laid out as a normal cell")
	}
}

func TestTable_LayoutEndsMerge(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		{Cells: []*Cell{{GridSpan: 1, VMerge: MergeRestart}}},
		{Cells: []*Cell{{GridSpan: 1}}},
		{Cells: []*Cell{{GridSpan: 1, VMerge: MergeContinue}}},
	}}

	layout := tbl.Layout()
	if layout[0][0].RowSpan != 1 {
		t.Errorf("RowSpan = %d, want 1", layout[0][0].RowSpan)
	}
	if layout[2][0].Continuation {
		t.Error("merge should end at the plain cell in row 1")
	}
}
