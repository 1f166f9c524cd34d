package compiler

// Compile runs the whole pipeline on src and returns the assembly text.
// The stages fail fast: the first lexical, syntax, or semantic error
// aborts compilation and no output is produced.
func Compile(src string) (string, error) {
	tokens, err := Lex(src)
	if err != nil {
		return "", err
	}

	prog, err := Parse(tokens, src)
	if err != nil {
		return "", err
	}

	syms, err := Resolve(prog)
	if err != nil {
		return "", err
	}

	return Generate(prog, syms), nil
}
