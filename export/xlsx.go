package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/quizdoc/quiz"
)

// SheetName is the worksheet holding the question bank.
const SheetName = "Questions"

// xlsxHeader is the header row of the question bank.
var xlsxHeader = []any{
	"ID", "Type", "Content", "Content Image",
	"Option A", "Option A Image", "Option B", "Option B Image",
	"Option C", "Option C Image", "Option D", "Option D Image",
	"Answers", "Allow Multiple", "Explanation", "Explanation Image", "Tags",
}

// WriteXLSX writes questions as a workbook with one row per question.
// Embedded data URI images are replaced by a short placeholder and long
// cells are truncated to the spreadsheet cell limit.
func WriteXLSX(w io.Writer, questions []quiz.Question) error {
	f, err := Workbook(questions)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing xlsx: %w", err)
	}
	return nil
}

// Workbook builds the question bank workbook. The caller must close it.
func Workbook(questions []quiz.Question) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: naming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("export: creating style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(xlsxHeader), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: styling header: %w", err)
	}

	for i, q := range questions {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := questionRow(q)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("export: writing question %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 38); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: sizing columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "C", "C", 60); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: sizing columns: %w", err)
	}

	return f, nil
}

func questionRow(q quiz.Question) []any {
	content := cellText(q.Content)
	if q.Content == q.ContentImage {
		content = cellImage(q.Content)
	}
	return []any{
		q.ID, q.Type, content, cellImage(q.ContentImage),
		cellText(q.OptionA), cellImage(q.OptionAImage), cellText(q.OptionB), cellImage(q.OptionBImage),
		cellText(q.OptionC), cellImage(q.OptionCImage), cellText(q.OptionD), cellImage(q.OptionDImage),
		strings.Join(q.Answers, ", "), q.AllowMultiple, cellText(q.Explanation), cellImage(q.ExplanationImage),
		strings.Join(q.Tags, ", "),
	}
}

// cellImage shortens embedded images to their media type.
func cellImage(src string) string {
	if rest, ok := strings.CutPrefix(src, "data:"); ok {
		mediaType, _, _ := strings.Cut(rest, ";")
		return "[embedded " + mediaType + "]"
	}
	return cellText(src)
}

// cellText truncates s to the maximum cell length.
func cellText(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	r := []rune(s)
	return string(r[:excelize.TotalCellChars])
}
