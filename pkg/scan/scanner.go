// Package scan reads the whitespace-delimited token stream that compiled
// programs consume through getint, getch, getfloat, getarray and getfarray.
package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrEndOfInput     = errors.New("end of input")
	ErrMalformedToken = errors.New("malformed token")
	ErrBufferTooSmall = errors.New("destination buffer too small")
)

var errNegativeCount = errors.New("negative element count")

// Mode is the parsing mode used by the most recent read.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeToken
	ModeChar
)

func (m Mode) String() string {
	switch m {
	case ModeToken:
		return "token"
	case ModeChar:
		return "char"
	}
	return "none"
}

// Position is the input cursor. Offset counts consumed bytes.
type Position struct {
	Offset int64
	Line   int
	Mode   Mode
}

// TokenError reports a token that does not match the expected grammar.
type TokenError struct {
	Token string
	Want  string
	Line  int
	Err   error
}

func (e *TokenError) Error() string {
	msg := fmt.Sprintf("line %d: %q is not a valid %s", e.Line, e.Token, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TokenError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedToken}
	}
	return []error{ErrMalformedToken, e.Err}
}

// Scanner holds the input cursor for a single pass over the input stream.
// Token reads leave the delimiter that ended the token unconsumed, so a
// following ReadChar sees it, as scanf("%d") followed by getchar() would.
type Scanner struct {
	r       *bufio.Reader
	pos     Position
	tok     []byte
	tokLine int
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r), pos: Position{Line: 1}}
}

// Position returns the current cursor.
func (s *Scanner) Position() Position {
	return s.pos
}

// isBlank matches everything outside printable ASCII, not only spaces.
func isBlank(c byte) bool {
	return c <= ' ' || c >= 0x7f
}

func (s *Scanner) peek() (byte, error) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// advance consumes one byte and returns it.
func (s *Scanner) advance() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.pos.Offset++
	if c == '\n' {
		s.pos.Line++
	}
	return c, nil
}

func (s *Scanner) readErr(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("line %d: %w", s.pos.Line, ErrEndOfInput)
	}
	return fmt.Errorf("line %d: read input: %w", s.pos.Line, err)
}

func (s *Scanner) skipBlank() error {
	for {
		c, err := s.peek()
		if err != nil {
			return s.readErr(err)
		}
		if !isBlank(c) {
			return nil
		}
		s.advance()
	}
}

// token collects the next maximal run of non-blank bytes.
func (s *Scanner) token() (string, error) {
	s.pos.Mode = ModeToken
	if err := s.skipBlank(); err != nil {
		return "", err
	}
	s.tokLine = s.pos.Line
	s.tok = s.tok[:0]
	for {
		c, err := s.peek()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", s.readErr(err)
		}
		if isBlank(c) {
			break
		}
		s.advance()
		s.tok = append(s.tok, c)
	}
	return string(s.tok), nil
}

// ReadInt parses the next token as an optionally signed decimal int32.
func (s *Scanner) ReadInt() (int32, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, &TokenError{Token: tok, Want: "integer", Line: s.tokLine, Err: numErr(err)}
	}
	return int32(v), nil
}

// ReadFloat parses the next token as a decimal, scientific or hexadecimal
// floating-point literal.
func (s *Scanner) ReadFloat() (float32, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	lit, ok := floatLiteral(tok)
	if !ok {
		return 0, &TokenError{Token: tok, Want: "float", Line: s.tokLine, Err: strconv.ErrSyntax}
	}
	v, err := strconv.ParseFloat(lit, 32)
	if err != nil {
		return 0, &TokenError{Token: tok, Want: "float", Line: s.tokLine, Err: numErr(err)}
	}
	return float32(v), nil
}

// floatLiteral rewrites tok into strconv's float syntax, which differs from
// strtof in two places: strconv accepts underscores between digits, and it
// requires a binary exponent on hexadecimal mantissas.
func floatLiteral(tok string) (string, bool) {
	if strings.IndexByte(tok, '_') >= 0 {
		return "", false
	}
	body := tok
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') &&
		!strings.ContainsAny(body, "pP") {
		return tok + "p0", true
	}
	return tok, true
}

// ReadChar returns the next raw byte, whitespace included.
func (s *Scanner) ReadChar() (byte, error) {
	s.pos.Mode = ModeChar
	c, err := s.advance()
	if err != nil {
		return 0, s.readErr(err)
	}
	return c, nil
}

// ReadCount reads an array length prefix.
func (s *Scanner) ReadCount() (int, error) {
	n, err := s.ReadInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &TokenError{Token: strconv.Itoa(int(n)), Want: "element count", Line: s.tokLine, Err: errNegativeCount}
	}
	return int(n), nil
}

// ReadIntArray reads a count n followed by n integers into dest and
// returns n.
func (s *Scanner) ReadIntArray(dest []int32) (int, error) {
	return readArray(s, dest, s.ReadInt)
}

// ReadFloatArray is ReadIntArray for floating-point elements.
func (s *Scanner) ReadFloatArray(dest []float32) (int, error) {
	return readArray(s, dest, s.ReadFloat)
}

// ReadInts fills dest with integer tokens, without a count prefix. On
// failure it returns how many slots were filled.
func (s *Scanner) ReadInts(dest []int32) (int, error) {
	return readElems(dest, s.ReadInt)
}

func (s *Scanner) ReadFloats(dest []float32) (int, error) {
	return readElems(dest, s.ReadFloat)
}

// readArray fails before consuming any element when dest cannot hold them
// all.
func readArray[T int32 | float32](s *Scanner, dest []T, read func() (T, error)) (int, error) {
	n, err := s.ReadCount()
	if err != nil {
		return 0, err
	}
	if n > len(dest) {
		return 0, fmt.Errorf("line %d: %w: %d elements, capacity %d", s.tokLine, ErrBufferTooSmall, n, len(dest))
	}
	return readElems(dest[:n], read)
}

func readElems[T int32 | float32](dest []T, read func() (T, error)) (int, error) {
	for i := range dest {
		v, err := read()
		if err != nil {
			return i, err
		}
		dest[i] = v
	}
	return len(dest), nil
}

// numErr drops strconv's copy of the input, which TokenError already carries.
func numErr(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
