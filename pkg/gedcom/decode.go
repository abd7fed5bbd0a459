package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned when a line does not start with a level number
// followed by a tag.
var ErrMalformedLine = errors.New("malformed gedcom line")

// Decode reads a whole GEDCOM stream and returns its top-level records.
// The character set is detected with the rules described in [DecodeText].
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// builder accumulates sub-records before the tree is frozen into values.
type builder struct {
	rec  Record
	kids []*builder
}

func (b *builder) build() Record {
	r := b.rec
	if len(b.kids) > 0 {
		r.Tree = make([]Record, len(b.kids))
		for i, k := range b.kids {
			r.Tree[i] = k.build()
		}
	}
	return r
}

// Parse parses already-decoded GEDCOM text.
//
// Level jumps greater than one are tolerated: the line is attached to the
// deepest open record. CONT appends a newline and the value to the parent,
// CONC appends the value without a separator.
func Parse(text string) ([]Record, error) {
	var (
		roots []*builder
		stack []*builder
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimLeft(sc.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		level, rec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if level > len(stack) {
			level = len(stack)
		}
		stack = stack[:level]

		if rec.Tag == TagContinue || rec.Tag == TagConcatenate {
			if level == 0 {
				return nil, fmt.Errorf("line %d: %s without parent: %w", lineNo, rec.Tag, ErrMalformedLine)
			}
			parent := stack[level-1]
			if rec.Tag == TagContinue {
				parent.rec.Data += "\n"
			}
			parent.rec.Data += rec.Data
			continue
		}

		b := &builder{rec: rec}
		if level == 0 {
			roots = append(roots, b)
		} else {
			parent := stack[level-1]
			parent.kids = append(parent.kids, b)
		}
		stack = append(stack, b)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	out := make([]Record, len(roots))
	for i, b := range roots {
		out[i] = b.build()
	}
	return out, nil
}

// parseLine splits "LEVEL [@XREF@] TAG [VALUE]".
func parseLine(line string) (int, Record, error) {
	levelStr, rest, _ := strings.Cut(line, " ")
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 0 {
		return 0, Record{}, ErrMalformedLine
	}
	rest = strings.TrimLeft(rest, " ")

	var rec Record
	if strings.HasPrefix(rest, "@") {
		ptr, after, found := strings.Cut(rest, " ")
		if !found || !strings.HasSuffix(ptr, "@") {
			return 0, Record{}, ErrMalformedLine
		}
		rec.Pointer = ptr
		rest = strings.TrimLeft(after, " ")
	}

	tag, data, _ := strings.Cut(rest, " ")
	if tag == "" {
		return 0, Record{}, ErrMalformedLine
	}
	rec.Tag = tag
	if tag != TagConcatenate {
		// CONC values may legitimately end with a space that joins two words.
		data = strings.TrimRight(data, " \t")
	}
	rec.Data = data
	return level, rec, nil
}
