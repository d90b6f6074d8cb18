// Package prompt parses free-form task prompts into an instruction and an
// ordered list of demonstrations.
//
// A demonstration block is a pair of quoted key-value lines:
//
//	input="Translate to French: cheese"
//	output="fromage"
//
// Everything outside demonstration blocks is instruction text.
package prompt

// Instruction is the task description portion of a prompt, excluding
// demonstrations. It states the task, its input/output format and the domain
// of valid inputs. Immutable once parsed.
type Instruction string

func (i Instruction) String() string {
	return string(i)
}

// Demonstration is a user supplied example pair illustrating the desired
// behavior for the task. Order within the original prompt is preserved.
type Demonstration struct {
	Input  string `json:"input" validate:"required"`
	Output string `json:"output" validate:"required"`
}

// Prompt is the parsed form of a raw task prompt.
type Prompt struct {
	instruction    Instruction
	demonstrations []Demonstration
	warnings       []string
}

// Instruction returns the parsed instruction text.
func (p *Prompt) Instruction() Instruction {
	return p.instruction
}

// Demonstrations returns the demonstrations in the order they appeared in
// the raw prompt. Zero demonstrations is valid; the synthesizer then relies
// on the instruction alone for its first round.
func (p *Prompt) Demonstrations() []Demonstration {
	return p.demonstrations
}

// Warnings returns non fatal issues recorded while parsing, one entry per
// skipped malformed demonstration.
func (p *Prompt) Warnings() []string {
	return p.warnings
}
