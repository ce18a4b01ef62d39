// Package segment splits story and transcript text into reading segments.
package segment

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultMaxRunes = 400

	KindHeading   = "heading"
	KindDialogue  = "dialogue"
	KindParagraph = "paragraph"
)

// Options configures segmentation.
type Options struct {
	MaxRunes int
}

// DefaultOptions returns default segmentation options.
func DefaultOptions() Options {
	return Options{MaxRunes: DefaultMaxRunes}
}

// Piece is a segment with its position in the original text.
type Piece struct {
	Kind      string
	Text      string
	StartLine int
	EndLine   int
}

// Split breaks text into headings, dialogue lines and paragraphs.
// Paragraphs longer than opts.MaxRunes are split on sentence boundaries.
func Split(text string, opts Options) []Piece {
	if opts.MaxRunes <= 0 {
		opts = DefaultOptions()
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var pieces []Piece
	var current []string
	startLine := 0

	flush := func(endLine int) {
		if len(current) == 0 {
			return
		}
		t := strings.TrimSpace(strings.Join(current, "\n"))
		if t != "" {
			pieces = append(pieces, splitLong(Piece{Kind: KindParagraph, Text: t, StartLine: startLine, EndLine: endLine}, opts)...)
		}
		current = nil
	}

	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush(lineNum - 1)
		case strings.HasPrefix(trimmed, "#"):
			flush(lineNum - 1)
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if heading != "" {
				pieces = append(pieces, Piece{Kind: KindHeading, Text: heading, StartLine: lineNum, EndLine: lineNum})
			}
		case isDialogue(trimmed):
			flush(lineNum - 1)
			pieces = append(pieces, Piece{Kind: KindDialogue, Text: trimmed, StartLine: lineNum, EndLine: lineNum})
		default:
			if len(current) == 0 {
				startLine = lineNum
			}
			current = append(current, trimmed)
		}
	}
	flush(strings.Count(text, "\n") + 1)

	return pieces
}

func isDialogue(line string) bool {
	for _, open := range []string{"「", "『", "“", "\"", "«", "— ", "- "} {
		if strings.HasPrefix(line, open) {
			return true
		}
	}
	return false
}

// splitLong breaks an oversized paragraph after sentence-ending punctuation.
// A single sentence longer than the limit is kept whole.
func splitLong(p Piece, opts Options) []Piece {
	if utf8.RuneCountInString(p.Text) <= opts.MaxRunes {
		return []Piece{p}
	}

	var out []Piece
	var b strings.Builder
	runes := 0
	emit := func() {
		t := strings.TrimSpace(b.String())
		if t != "" {
			out = append(out, Piece{Kind: p.Kind, Text: t, StartLine: p.StartLine, EndLine: p.EndLine})
		}
		b.Reset()
		runes = 0
	}

	for _, sentence := range sentences(p.Text) {
		n := utf8.RuneCountInString(sentence)
		if runes > 0 && runes+n > opts.MaxRunes {
			emit()
		}
		b.WriteString(sentence)
		runes += n
	}
	emit()
	return out
}

func sentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		switch r {
		case '。', '！', '？', '.', '!', '?':
			end := i + utf8.RuneLen(r)
			out = append(out, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// Reading speeds used by EstimateSeconds.
const (
	CharsPerMinuteCJK = 300
	WordsPerMinute    = 180
)

// EstimateSeconds estimates how long a learner needs to read the pieces.
// Japanese is measured in characters, other languages in words.
func EstimateSeconds(pieces []Piece, language string) int {
	units := 0
	for _, p := range pieces {
		if language == "japanese" {
			for _, r := range p.Text {
				if !unicode.IsSpace(r) && !unicode.IsPunct(r) {
					units++
				}
			}
		} else {
			units += len(strings.Fields(p.Text))
		}
	}
	if units == 0 {
		return 0
	}

	rate := float64(WordsPerMinute)
	if language == "japanese" {
		rate = CharsPerMinuteCJK
	}
	return int(math.Ceil(float64(units) / rate * 60))
}
