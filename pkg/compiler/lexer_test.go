package compiler

import (
	"reflect"
	"testing"
)

// tok is a Token stripped to the fields most tests care about.
type tok struct {
	Type   TokenType
	Lexeme string
}

func kinds(tokens []Token) []tok {
	out := make([]tok, len(tokens))
	for i, t := range tokens {
		out[i] = tok{t.Type, t.Lexeme}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
		wantErr  bool
	}{
		{
			name:     "Empty",
			input:    "",
			expected: []tok{},
		},
		{
			name:  "Operators",
			input: "+ - * / % ^ == < > <= >=",
			expected: []tok{
				{PLUS, "+"}, {MINUS, "-"}, {STAR, "*"}, {SLASH, "/"},
				{PERCENT, "%"}, {CARET, "^"}, {EQUALS, "=="},
				{LESS, "<"}, {GREATER, ">"}, {LESS_EQ, "<="}, {GREATER_EQ, ">="},
			},
		},
		{
			name:  "Compound Assignment",
			input: "x *= 3",
			expected: []tok{
				{IDENTIFIER, "x"}, {STAR_ASSIGN, "*="}, {INTEGER, "3"},
			},
		},
		{
			name:  "Plus Assignment",
			input: "x += 1",
			expected: []tok{
				{IDENTIFIER, "x"}, {PLUS_ASSIGN, "+="}, {INTEGER, "1"},
			},
		},
		{
			name:  "Keywords",
			input: "! !? ? @",
			expected: []tok{
				{PRINT, "!"}, {ELSE, "!?"}, {IF, "?"}, {LOOP, "@"},
			},
		},
		{
			name:  "Word Operators and Booleans",
			input: "AND OR TRUE FALSE other",
			expected: []tok{
				{AND, "AND"}, {OR, "OR"}, {TRUE, "TRUE"}, {FALSE, "FALSE"},
				{IDENTIFIER, "other"},
			},
		},
		{
			name:  "Delimiters",
			input: "{ } ( ) [ ] : ,",
			expected: []tok{
				{LBRACE, "{"}, {RBRACE, "}"}, {LPAREN, "("}, {RPAREN, ")"},
				{LBRACKET, "["}, {RBRACKET, "]"}, {COLON, ":"}, {COMMA, ","},
			},
		},
		{
			name:  "Range",
			input: "1..10",
			expected: []tok{
				{INTEGER, "1"}, {RANGE, ".."}, {INTEGER, "10"},
			},
		},
		{
			name:     "Lone Dot Dropped",
			input:    ".",
			expected: []tok{},
		},
		{
			name:  "Bare Equals Lexes as Identifier",
			input: "x = 5",
			expected: []tok{
				{IDENTIFIER, "x"}, {IDENTIFIER, "="}, {INTEGER, "5"},
			},
		},
		{
			name:  "String Keeps Quotes",
			input: `"hello world"`,
			expected: []tok{
				{STRING, `"hello world"`},
			},
		},
		{
			name:    "Unterminated String",
			input:   "\"hello\nworld\"",
			wantErr: true,
		},
		{
			name:  "Negative Literal Merge",
			input: "-5",
			expected: []tok{
				{INTEGER, "-5"},
			},
		},
		{
			name:  "Negative Literal Merge Across Space",
			input: "- 5",
			expected: []tok{
				{INTEGER, "-5"},
			},
		},
		{
			name:  "Minus Between Operands Still Merges",
			input: "3 - 2",
			expected: []tok{
				{INTEGER, "3"}, {INTEGER, "-2"},
			},
		},
		{
			name:  "Output Newline Marker",
			input: "a>|b",
			expected: []tok{
				{IDENTIFIER, "a"}, {NEWLINE, ">|"}, {IDENTIFIER, "b"},
			},
		},
		{
			name:  "Greater Not Confused With Marker",
			input: "a > b",
			expected: []tok{
				{IDENTIFIER, "a"}, {GREATER, ">"}, {IDENTIFIER, "b"},
			},
		},
		{
			name:  "Unknown Characters Skipped",
			input: "a # $ ~ b",
			expected: []tok{
				{IDENTIFIER, "a"}, {IDENTIFIER, "b"},
			},
		},
		{
			name:  "Indented Block",
			input: "@ i, 1..3\n    ! {i}\n",
			expected: []tok{
				{LOOP, "@"}, {IDENTIFIER, "i"}, {COMMA, ","},
				{INTEGER, "1"}, {RANGE, ".."}, {INTEGER, "3"},
				{NEWLINE, "\n"}, {INDENT, "indent"},
				{PRINT, "!"}, {LBRACE, "{"}, {IDENTIFIER, "i"}, {RBRACE, "}"},
				{NEWLINE, "\n"}, {DEDENT, "dedent"},
			},
		},
		{
			name:  "Tab Indentation",
			input: "? x\n\t! \"yes\"\n",
			expected: []tok{
				{IF, "?"}, {IDENTIFIER, "x"},
				{NEWLINE, "\n"}, {INDENT, "indent"},
				{PRINT, "!"}, {STRING, `"yes"`},
				{NEWLINE, "\n"}, {DEDENT, "dedent"},
			},
		},
		{
			name:  "Nested Blocks Close Individually",
			input: "? a\n    ? b\n        ! \"c\"\n! \"d\"\n",
			expected: []tok{
				{IF, "?"}, {IDENTIFIER, "a"},
				{NEWLINE, "\n"}, {INDENT, "indent"},
				{IF, "?"}, {IDENTIFIER, "b"},
				{NEWLINE, "\n"}, {INDENT, "indent"},
				{PRINT, "!"}, {STRING, `"c"`},
				{NEWLINE, "\n"}, {DEDENT, "dedent"}, {DEDENT, "dedent"},
				{PRINT, "!"}, {STRING, `"d"`},
				{NEWLINE, "\n"},
			},
		},
		{
			name:  "Open Blocks Closed at End of Input",
			input: "? a\n    ! \"b\"",
			expected: []tok{
				{IF, "?"}, {IDENTIFIER, "a"},
				{NEWLINE, "\n"}, {INDENT, "indent"},
				{PRINT, "!"}, {STRING, `"b"`},
				{DEDENT, "dedent"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Tokenize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(kinds(got), tt.expected) {
				t.Errorf("Tokenize() = %v, want %v", kinds(got), tt.expected)
			}
		})
	}
}

// Token spans must be well formed and ordered so error positions and the
// interpolation re-scan can index into the source safely.
func TestTokenizeSpans(t *testing.T) {
	inputs := []string{
		"x 5",
		"! \"a{1 + 2}b\"",
		"@ i, 1..3\n    total += i\n",
		"a -5 b",
		"? x == 1\n    ! \"one\"\n!?\n    ! \"other\"\n",
	}

	for _, input := range inputs {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", input, err)
		}
		prevStart := 0
		for i, tok := range tokens {
			if tok.Start > tok.End {
				t.Errorf("%q token %d: Start %d > End %d", input, i, tok.Start, tok.End)
			}
			if tok.End > len([]rune(input)) {
				t.Errorf("%q token %d: End %d past input length", input, i, tok.End)
			}
			if tok.Start < prevStart {
				t.Errorf("%q token %d: Start %d before previous token", input, i, tok.Start)
			}
			prevStart = tok.Start
		}
	}
}

func TestTokenizeMergedNegativeSpan(t *testing.T) {
	tokens, err := Tokenize("-42")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	want := Token{Type: INTEGER, Start: 0, End: 3, Lexeme: "-42"}
	if tokens[0] != want {
		t.Errorf("got %v, want %v", tokens[0], want)
	}
}

// Every INDENT is balanced by a DEDENT, including levels still open when
// input runs out.
func TestTokenizeIndentBalance(t *testing.T) {
	inputs := []string{
		"? a\n    ! \"b\"\n",
		"? a\n    ? b\n        ! \"c\"",
		"@ i, 1..3\n    @ j, 1..3\n        ! {j}\n    ! {i}\n",
		"x 5\n",
	}

	for _, input := range inputs {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", input, err)
		}
		indents, dedents := 0, 0
		for _, tok := range tokens {
			switch tok.Type {
			case INDENT:
				indents++
			case DEDENT:
				dedents++
			}
		}
		if indents != dedents {
			t.Errorf("%q: %d INDENT vs %d DEDENT", input, indents, dedents)
		}
	}
}

func TestTokenizeEOFDedentsZeroWidth(t *testing.T) {
	input := "? a\n    ! \"b\""
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	last := tokens[len(tokens)-1]
	if last.Type != DEDENT {
		t.Fatalf("last token = %v, want DEDENT", last)
	}
	if last.Start != last.End || last.End != len([]rune(input)) {
		t.Errorf("closing DEDENT span = [%d:%d], want zero width at %d",
			last.Start, last.End, len([]rune(input)))
	}
}
