// internal/sink/a1.go
package sink

import "strings"

// ColumnLetter converts a 1-based column index to its A1 letters.
func ColumnLetter(n int) string {
	if n < 1 {
		return ""
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// QuoteSheetName quotes a sheet title for A1 notation.
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ColumnsRange covers the first width columns, e.g. 'All_Applications'!A:AF.
func ColumnsRange(sheet string, width int) string {
	return QuoteSheetName(sheet) + "!A:" + ColumnLetter(width)
}

// HeaderRange covers the header row, e.g. 'All_Applications'!A1:AF1.
func HeaderRange(sheet string, width int) string {
	return QuoteSheetName(sheet) + "!A1:" + ColumnLetter(width) + "1"
}

// FirstCellRange is the single A1 cell of a sheet.
func FirstCellRange(sheet string) string {
	return QuoteSheetName(sheet) + "!A1:A1"
}
