package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRecoversDemonstrationsInOrder(t *testing.T) {
	raw := `Classify the sentiment of a movie review as positive or negative.

input="A stunning, heartfelt triumph."
output="positive"

input="Two hours I will never get back."
output="negative"

input="The cast carries a thin script surprisingly far."
output="positive"`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := p.Instruction().String(); got != "Classify the sentiment of a movie review as positive or negative." {
		t.Errorf("unexpected instruction: %q", got)
	}
	want := []Demonstration{
		{Input: "A stunning, heartfelt triumph.", Output: "positive"},
		{Input: "Two hours I will never get back.", Output: "negative"},
		{Input: "The cast carries a thin script surprisingly far.", Output: "positive"},
	}
	demos := p.Demonstrations()
	if len(demos) != len(want) {
		t.Fatalf("got %d demonstrations, want %d", len(demos), len(want))
	}
	for i := range want {
		if demos[i] != want[i] {
			t.Errorf("demonstration %d = %+v, want %+v", i, demos[i], want[i])
		}
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings())
	}
}

func TestParseZeroDemonstrations(t *testing.T) {
	p, err := Parse("Answer the trivia question with a single word.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Demonstrations()) != 0 {
		t.Errorf("got %d demonstrations, want 0", len(p.Demonstrations()))
	}
}

func TestParseSkipsMalformedDemonstration(t *testing.T) {
	raw := `Translate English to French.

input="cheese"
output="fromage"

input="bread"
this line is not an output

input="wine"
output="vin"`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	demos := p.Demonstrations()
	if len(demos) != 2 {
		t.Fatalf("got %d demonstrations, want 2: %+v", len(demos), demos)
	}
	if demos[0].Input != "cheese" || demos[1].Input != "wine" {
		t.Errorf("wrong demonstrations survived: %+v", demos)
	}
	if len(p.Warnings()) == 0 {
		t.Error("expected a warning for the malformed demonstration")
	}
	if got := p.Instruction().String(); !strings.HasPrefix(got, "Translate English to French.") {
		t.Errorf("unexpected instruction: %q", got)
	}
}

func TestParseUnbalancedOutputQuote(t *testing.T) {
	raw := `Uppercase the word.

input="abc"
output="ABC`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Demonstrations()) != 0 {
		t.Errorf("got %d demonstrations, want 0", len(p.Demonstrations()))
	}
	if len(p.Warnings()) != 1 {
		t.Errorf("got warnings %v, want exactly one", p.Warnings())
	}
}

func TestParseNoInstructionFatal(t *testing.T) {
	for name, raw := range map[string]string{
		"empty": "",
		"blank": "   \n\t\n",
		"demos only": `input="a"
output="b"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			var malformed *MalformedPromptError
			if !errors.As(err, &malformed) {
				t.Fatalf("got %v, want MalformedPromptError", err)
			}
		})
	}
}

func TestParseEscapedQuotes(t *testing.T) {
	raw := `Echo the quoted phrase.

input="say \"hello\" twice"
output="\"hello\" \"hello\""`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	demos := p.Demonstrations()
	if len(demos) != 1 {
		t.Fatalf("got %d demonstrations, want 1", len(demos))
	}
	if demos[0].Input != `say "hello" twice` {
		t.Errorf("input = %q", demos[0].Input)
	}
	if demos[0].Output != `"hello" "hello"` {
		t.Errorf("output = %q", demos[0].Output)
	}
}

func TestParseMultilineValue(t *testing.T) {
	raw := `Summarize the paragraph in one sentence.

input="The meeting ran long.
Nothing was decided.
Everyone left tired."
output="An unproductive meeting exhausted its attendees."`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	demos := p.Demonstrations()
	if len(demos) != 1 {
		t.Fatalf("got %d demonstrations, want 1", len(demos))
	}
	if !strings.Contains(demos[0].Input, "Nothing was decided.") {
		t.Errorf("multi-line input lost content: %q", demos[0].Input)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	demos := []Demonstration{
		{Input: `say "hi"`, Output: `like \this\`},
		{Input: "plain", Output: "also plain"},
	}
	parsed, warnings := ParseDemonstrations(FormatDemonstrations(demos))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(parsed) != len(demos) {
		t.Fatalf("got %d demonstrations, want %d", len(parsed), len(demos))
	}
	for i := range demos {
		if parsed[i] != demos[i] {
			t.Errorf("round trip %d = %+v, want %+v", i, parsed[i], demos[i])
		}
	}
}
