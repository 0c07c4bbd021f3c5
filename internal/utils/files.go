package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TokenReader splits a line-oriented stream into whitespace-delimited tokens
// while keeping track of line boundaries, so that formats mixing free token
// streams with "skip this many lines" rules can be read in one pass.
type TokenReader struct {
	scanner *bufio.Scanner
	tokens  []string
	line    int
}

func NewTokenReader(r io.Reader) *TokenReader {
	return &TokenReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next token, crossing line boundaries as needed.
func (tr *TokenReader) Next() (string, bool) {
	for len(tr.tokens) == 0 {
		if !tr.scanner.Scan() {
			return "", false
		}
		tr.line++
		tr.tokens = strings.Fields(tr.scanner.Text())
	}
	token := tr.tokens[0]
	tr.tokens = tr.tokens[1:]
	return token, true
}

// Peek returns the next token without consuming it.
func (tr *TokenReader) Peek() (string, bool) {
	token, ok := tr.Next()
	if ok {
		tr.tokens = append([]string{token}, tr.tokens...)
	}
	return token, ok
}

// SkipLines drops the rest of the current line, then n further lines.
func (tr *TokenReader) SkipLines(n int) {
	tr.tokens = nil
	for i := 0; i < n; i++ {
		if !tr.scanner.Scan() {
			return
		}
		tr.line++
	}
}

func (tr *TokenReader) Float() (float64, error) {
	token, ok := tr.Next()
	if !ok {
		return 0, fmt.Errorf("line %d: %w", tr.line, io.ErrUnexpectedEOF)
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: error parsing float %q: %w", tr.line, token, err)
	}
	return v, nil
}

func (tr *TokenReader) Int() (int, error) {
	token, ok := tr.Next()
	if !ok {
		return 0, fmt.Errorf("line %d: %w", tr.line, io.ErrUnexpectedEOF)
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("line %d: error parsing integer %q: %w", tr.line, token, err)
	}
	return v, nil
}

// Line is the number of the last line read, starting at 1.
func (tr *TokenReader) Line() int {
	return tr.line
}

func (tr *TokenReader) Err() error {
	return tr.scanner.Err()
}

func GetFilename(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OpenFile creates outputDir if needed and opens outputDir/name+ext for writing.
func OpenFile(outputDir, name, ext string) (*os.File, error) {
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0750); err != nil {
			return nil, err
		}
	}
	return os.Create(filepath.Join(outputDir, name+ext))
}
