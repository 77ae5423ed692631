package command

// Argument is a named parameter slot within a Syntax.
type Argument struct {
	Name        string
	Explanation string
	Required    bool
}

// Usage renders the argument as <name> when required and [name] otherwise.
func (a Argument) Usage() string {
	if a.Required {
		return "<" + a.Name + ">"
	}
	return "[" + a.Name + "]"
}
