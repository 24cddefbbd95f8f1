package tokenize

// Segment is a run of tokens belonging to one ";"-terminated statement.
// Start and End are byte offsets; the terminating ";" is not included.
type Segment struct {
	Tokens []Token
	Start  int
	End    int
}

// Statements splits tokens into statement segments at ";" tokens. Parentheses
// are not tracked, so an unclosed "(" cannot swallow the statements after it.
// A trailing empty statement after the last ";" is kept so that a cursor
// placed there still has a segment.
func Statements(tokens []Token) []Segment {
	if len(tokens) == 0 {
		return []Segment{{}}
	}

	var segments []Segment
	first := 0
	for i, tok := range tokens {
		if tok.Is(";") {
			segments = append(segments, newSegment(tokens, first, i, tok.Start))
			first = i + 1
		}
	}
	end := tokens[len(tokens)-1].End
	segments = append(segments, newSegment(tokens, first, len(tokens), end))
	return segments
}

// StatementAt returns the segment containing offset. An offset equal to a
// segment end belongs to that segment, so "SELECT 1;|" completes the first
// statement only when the cursor sits before the ";".
func StatementAt(tokens []Token, offset int) Segment {
	segments := Statements(tokens)
	for _, seg := range segments {
		if offset <= seg.End {
			return seg
		}
	}
	return segments[len(segments)-1]
}

func newSegment(tokens []Token, from, to, end int) Segment {
	start := end
	if from < len(tokens) && from < to {
		start = tokens[from].Start
	} else if from > 0 && from <= len(tokens) {
		start = tokens[from-1].End
	}
	return Segment{Tokens: tokens[from:to], Start: start, End: end}
}
