package exec

import "github.com/rivo/uniseg"

// screenColumn returns the display column of offset within its line,
// expanding tabs to the buffer's tab width and counting each grapheme
// cluster (not each byte or rune) as its rendered width. Wide emoji and
// combining marks are handled by uniseg the same way the terminal
// renderer will draw them, so j/k land where the cursor is actually
// drawn rather than where a byte-counting motion would place it. g0/g$
// use the byte-based line start/end motions and do not come through here.
func screenColumn(buf Buffer, offset int) int {
	line := lineOf(buf, offset)
	start := int(buf.LineStartOffset(line))
	return screenWidth(buf.TextRange(bo(start), bo(offset)), buf.TabWidth())
}

// screenWidth returns the rendered column width of s, expanding tabs to
// tabWidth and walking grapheme clusters via uniseg.
func screenWidth(s string, tabWidth int) int {
	col := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			if tabWidth <= 0 {
				tabWidth = 8
			}
			col += tabWidth - (col % tabWidth)
			continue
		}
		if width == 0 {
			width = 1
		}
		col += width
	}
	return col
}

// offsetAtScreenColumn returns the byte offset on line whose screen
// column is closest to (without exceeding) col, used to restore a
// cursor's desired column after a vertical motion crosses a line of
// different width.
func offsetAtScreenColumn(buf Buffer, line uint32, col int) int {
	start, end := lineBounds(buf, line)
	text := buf.TextRange(bo(start), bo(end))
	tabWidth := buf.TabWidth()

	cur := 0
	offset := start
	state := -1
	s := text
	for len(s) > 0 {
		if cur >= col {
			break
		}
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			if tabWidth <= 0 {
				tabWidth = 8
			}
			cur += tabWidth - (cur % tabWidth)
		} else {
			if width == 0 {
				width = 1
			}
			cur += width
		}
		offset += len(cluster)
	}
	if offset > end {
		offset = end
	}
	return offset
}
