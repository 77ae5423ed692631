package command

// Syntax is one accepted shape of a node's arguments.
type Syntax struct {
	args []Argument
}

// Size returns the total number of arguments, required or not.
func (s Syntax) Size() int {
	return len(s.args)
}

// RequiredSize returns how many arguments are flagged required, wherever
// they appear.
func (s Syntax) RequiredSize() int {
	n := 0
	for _, a := range s.args {
		if a.Required {
			n++
		}
	}
	return n
}

// Arguments returns a copy of the arguments in declaration order.
func (s Syntax) Arguments() []Argument {
	out := make([]Argument, len(s.args))
	copy(out, s.args)
	return out
}

// Get returns the index-th argument (0-based) whose Required flag equals
// required, scanning in declaration order.
func (s Syntax) Get(index int, required bool) (Argument, bool) {
	k := 0
	for _, a := range s.args {
		if a.Required != required {
			continue
		}
		if k == index {
			return a, true
		}
		k++
	}
	return Argument{}, false
}

// Missing returns the required arguments whose filtered index is at least
// supplied.
func (s Syntax) Missing(supplied int) []Argument {
	if supplied < 0 {
		supplied = 0
	}
	var missing []Argument
	for i := supplied; ; i++ {
		a, ok := s.Get(i, true)
		if !ok {
			break
		}
		missing = append(missing, a)
	}
	return missing
}

// Accepts reports whether supplied tokens satisfy the required count.
func (s Syntax) Accepts(supplied int) bool {
	return s.RequiredSize() <= supplied
}

// SyntaxBuilder accumulates one or more Syntax alternatives. Argument
// methods always target the most recently started alternative.
type SyntaxBuilder struct {
	alts []Syntax
}

// NewSyntax starts a builder with one empty alternative.
func NewSyntax() *SyntaxBuilder {
	return &SyntaxBuilder{alts: []Syntax{{}}}
}

// Required appends a required argument. The explanation is optional.
func (b *SyntaxBuilder) Required(name string, explanation ...string) *SyntaxBuilder {
	return b.add(name, true, explanation)
}

// Optional appends an optional argument. The explanation is optional.
func (b *SyntaxBuilder) Optional(name string, explanation ...string) *SyntaxBuilder {
	return b.add(name, false, explanation)
}

// Or starts a new alternative.
func (b *SyntaxBuilder) Or() *SyntaxBuilder {
	b.alts = append(b.alts, Syntax{})
	return b
}

// Build returns the accumulated alternatives.
func (b *SyntaxBuilder) Build() []Syntax {
	out := make([]Syntax, len(b.alts))
	for i, s := range b.alts {
		out[i] = Syntax{args: s.Arguments()}
	}
	return out
}

func (b *SyntaxBuilder) add(name string, required bool, explanation []string) *SyntaxBuilder {
	a := Argument{Name: name, Required: required}
	if len(explanation) > 0 {
		a.Explanation = explanation[0]
	}
	last := &b.alts[len(b.alts)-1]
	last.args = append(last.args, a)
	return b
}

// closestSyntax picks the syntax reported in a UsageError. With a single
// syntax or no supplied tokens the first syntax wins outright; otherwise the
// smallest |Size - supplied| wins, first declared on ties, and an exact size
// match ends the scan.
func closestSyntax(syntaxes []Syntax, supplied int) Syntax {
	if len(syntaxes) == 1 || supplied == 0 {
		return syntaxes[0]
	}
	best, bestDelta := syntaxes[0], -1
	for _, s := range syntaxes {
		delta := s.Size() - supplied
		if delta < 0 {
			delta = -delta
		}
		if delta == 0 {
			return s
		}
		if bestDelta < 0 || delta < bestDelta {
			best, bestDelta = s, delta
		}
	}
	return best
}
