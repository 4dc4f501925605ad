package project

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\xef\xbb\xbf"

type byteOffset = int

type SourceLocation struct {
	LineNumber   int // line number
	ColumnNumber int // column number

	LineOffset     byteOffset // byte offset of line relative to buffer start
	LocationOffset byteOffset // byte offset of location relative to LineOffset
}

func CalcSourceLocation(buf string, byteoffset int) *SourceLocation {
	cur, end := 0, len(buf)
	if strings.HasPrefix(buf, utf8BOM) {
		cur = len(utf8BOM)
	}
	if byteoffset > end {
		byteoffset = end
	}
	if byteoffset < cur {
		byteoffset = cur
	}

	loc := SourceLocation{
		LineNumber: 1,
		LineOffset: cur,
	}

	for cur < byteoffset {
		c := buf[cur]
		cur++
		if c == '\n' {
			loc.LineNumber++
			loc.LineOffset = cur
		} else if c == '\r' {
			if cur < byteoffset && buf[cur] == '\n' {
				cur++
			}
			loc.LineNumber++
			loc.LineOffset = cur
		}
	}
	loc.LocationOffset = byteoffset - loc.LineOffset
	loc.ColumnNumber = 1 + utf8.RuneCountInString(buf[loc.LineOffset:byteoffset])

	return &loc
}

func (sl *SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", sl.LineNumber, sl.ColumnNumber)
}
