package lexer

// skipLineComment skips a // comment. The line terminator is left in place
// so that it still produces a NewLine.
func skipLineComment(s scanner) scanner {
	for !s.done() {
		if c := s.peek(0); c == '\n' || c == '\r' {
			break
		}
		s = s.advance(1)
	}
	return s
}

// skipBlockComment skips a /* */ comment. Block comments do not nest.
func (l *lexer) skipBlockComment(s scanner) (scanner, error) {
	end := s.index(s.pos+2, "*/", false)
	if end < 0 {
		return s, l.errorf(s.pos, len(s.src), "expected comment ending symbol")
	}
	return s.advance(end + 2 - s.pos), nil
}

// skipDocumentComment skips a ''' ''' comment. Its content is discarded.
func (l *lexer) skipDocumentComment(s scanner) (scanner, error) {
	end := s.index(s.pos+3, "'''", false)
	if end < 0 {
		return s, l.errorf(s.pos, len(s.src), "expected document comment ending symbol")
	}
	return s.advance(end + 3 - s.pos), nil
}
