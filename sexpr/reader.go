package sexpr

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read parses text, which must contain exactly one s-expression.  The
	// name is used to describe the location of errors.
	Read(name string, text string) (SExpr, error)
}
