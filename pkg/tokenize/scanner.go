package tokenize

// Scanner walks a token slice, optionally skipping whitespace and comments.
// The zero position is the first token; Push and Pop save and restore it.
type Scanner struct {
	tokens []Token
	index  int
	stack  []int
}

// NewScanner creates a scanner positioned on the first significant token.
func NewScanner(tokens []Token) *Scanner {
	s := &Scanner{tokens: tokens}
	s.skipTrivia()
	return s
}

// Done reports whether the scanner has moved past the last token.
func (s *Scanner) Done() bool {
	return s.index >= len(s.tokens)
}

// Token returns the current token. It must not be called when Done is true.
func (s *Scanner) Token() Token {
	return s.tokens[s.index]
}

// Next advances to the next significant token. It returns false at the end.
func (s *Scanner) Next() bool {
	if s.Done() {
		return false
	}
	s.index++
	s.skipTrivia()
	return !s.Done()
}

// Peek returns the significant token after the current one without moving.
func (s *Scanner) Peek() (Token, bool) {
	for i := s.index + 1; i < len(s.tokens); i++ {
		if !s.tokens[i].IsTrivia() {
			return s.tokens[i], true
		}
	}
	return Token{}, false
}

// Is reports whether the current token is the punctuation p.
func (s *Scanner) Is(p string) bool {
	return !s.Done() && s.tokens[s.index].Is(p)
}

// IsKeyword reports whether the current token is one of the keywords.
func (s *Scanner) IsKeyword(keywords ...string) bool {
	return !s.Done() && s.tokens[s.index].IsKeyword(keywords...)
}

// SkipKeywords consumes the keyword sequence if it is present and reports
// whether it was. On failure the position is unchanged.
func (s *Scanner) SkipKeywords(sequence ...string) bool {
	s.Push()
	for _, kw := range sequence {
		if !s.IsKeyword(kw) {
			s.Pop()
			return false
		}
		s.Next()
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Push saves the current position.
func (s *Scanner) Push() {
	s.stack = append(s.stack, s.index)
}

// Pop restores the last saved position.
func (s *Scanner) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.index = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

func (s *Scanner) skipTrivia() {
	for s.index < len(s.tokens) && s.tokens[s.index].IsTrivia() {
		s.index++
	}
}
