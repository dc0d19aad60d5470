package graph

import "github.com/vlang-tools/semgraph/internal/ast"

// testRangeAtRow returns a single-point Range starting (and ending) at the
// given row, for tests that only care about row-based conflict detection.
func testRangeAtRow(row int) ast.Range {
	return ast.Range{
		StartPoint: ast.Point{Row: row},
		EndPoint:   ast.Point{Row: row},
	}
}

// testRangeBytes returns a Range spanning [start, end) bytes, for tests that
// exercise scope/byte-offset containment logic.
func testRangeBytes(start, end int) ast.Range {
	return ast.Range{StartByte: start, EndByte: end}
}

// testRangeRows returns a Range spanning [startRow, endRow], for tests that
// exercise row-based deletion windows.
func testRangeRows(startRow, endRow int) ast.Range {
	return ast.Range{
		StartPoint: ast.Point{Row: startRow},
		EndPoint:   ast.Point{Row: endRow},
	}
}
