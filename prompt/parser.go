package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var markerRe = regexp.MustCompile(`(?m)^[ \t]*(input|output)[ \t]*=[ \t]*`)

// token is one input= / output= marker plus its quoted value, when readable.
type token struct {
	key   string
	value string
	start int
	end   int
	ok    bool
}

// Parse splits raw prompt text into an Instruction and its ordered
// demonstrations. Malformed demonstration blocks are skipped with a recorded
// warning; Parse fails with MalformedPromptError only when no instruction
// text can be isolated.
func Parse(raw string) (*Prompt, error) {
	demos, warnings, instruction := scanDemonstrations(raw)
	if instruction == "" {
		return nil, &MalformedPromptError{Reason: "no instruction text could be isolated"}
	}
	return &Prompt{
		instruction:    Instruction(instruction),
		demonstrations: demos,
		warnings:       warnings,
	}, nil
}

// ParseDemonstrations extracts demonstration pairs from text using the
// key-value convention, ignoring surrounding prose. The synthesizer reads
// model completions with the same convention.
func ParseDemonstrations(raw string) ([]Demonstration, []string) {
	demos, warnings, _ := scanDemonstrations(raw)
	return demos, warnings
}

// FormatDemonstrations renders demonstrations in the wire convention
// understood by Parse.
func FormatDemonstrations(demos []Demonstration) string {
	var b strings.Builder
	for i, d := range demos {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatPair(d.Input, d.Output))
	}
	return b.String()
}

// FormatPair renders a single input/output pair in the wire convention.
func FormatPair(input, output string) string {
	return fmt.Sprintf("input=\"%s\"\noutput=\"%s\"", escape(input), escape(output))
}

func scanDemonstrations(raw string) ([]Demonstration, []string, string) {
	locs := markerRe.FindAllStringSubmatchIndex(raw, -1)
	tokens := make([]token, 0, len(locs))
	for _, loc := range locs {
		tok := token{
			key:   raw[loc[2]:loc[3]],
			start: loc[0],
			end:   loc[1],
		}
		// a marker inside the previous token's multi-line value is not a marker
		if prev := len(tokens) - 1; prev >= 0 && tok.start < tokens[prev].end {
			continue
		}
		if val, end, ok := scanQuoted(raw, loc[1]); ok {
			tok.value = val
			tok.end = end
			tok.ok = true
		} else {
			tok.end = endOfLine(raw, loc[1])
		}
		tokens = append(tokens, tok)
	}

	var (
		demos    []Demonstration
		warnings []string
	)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.key == "input" && tok.ok && i+1 < len(tokens) {
			next := tokens[i+1]
			if next.key == "output" && strings.TrimSpace(raw[tok.end:next.start]) == "" {
				if next.ok {
					demos = append(demos, Demonstration{Input: tok.value, Output: next.value})
					i++
					continue
				}
				warnings = append(warnings, fmt.Sprintf("skipping demonstration at offset %d: unbalanced quoting in output", tok.start))
				i++
				continue
			}
		}
		switch {
		case tok.key == "input" && !tok.ok:
			warnings = append(warnings, fmt.Sprintf("skipping demonstration at offset %d: unbalanced quoting in input", tok.start))
		case tok.key == "input":
			warnings = append(warnings, fmt.Sprintf("skipping demonstration at offset %d: input has no matching output", tok.start))
		default:
			warnings = append(warnings, fmt.Sprintf("skipping demonstration at offset %d: output has no preceding input", tok.start))
		}
	}

	// instruction text is everything outside demonstration blocks, including
	// the skipped malformed ones
	var b strings.Builder
	pos := 0
	for _, tok := range tokens {
		if tok.start > pos {
			b.WriteString(raw[pos:tok.start])
		}
		pos = tok.end
	}
	if pos < len(raw) {
		b.WriteString(raw[pos:])
	}
	return demos, warnings, strings.TrimSpace(b.String())
}

// scanQuoted reads a double-quoted value starting at i. Values may span
// lines and contain \" and \\ escapes.
func scanQuoted(raw string, i int) (string, int, bool) {
	if i >= len(raw) || raw[i] != '"' {
		return "", i, false
	}
	for j := i + 1; j < len(raw); j++ {
		switch raw[j] {
		case '\\':
			j++
		case '"':
			return unescape(raw[i+1 : j]), j + 1, true
		}
	}
	return "", i, false
}

func endOfLine(raw string, i int) int {
	if nl := strings.IndexByte(raw[i:], '\n'); nl >= 0 {
		return i + nl
	}
	return len(raw)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
