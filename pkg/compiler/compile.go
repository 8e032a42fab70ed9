package compiler

// Compile runs the front-end pipeline over a source text: tokenize, parse,
// analyze. It reports the first error from any stage. Code generation is a
// separate step; see the codegen package.
func Compile(source string) error {
	tokens, err := Tokenize(source)
	if err != nil {
		return err
	}
	program, err := Parse(tokens)
	if err != nil {
		return err
	}
	return Analyze(program)
}
