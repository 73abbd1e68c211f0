package typechecker

// Environment tracks the inferred type of every name assigned so far.
type Environment struct {
	symbols map[string]Type
}

func NewEnvironment() *Environment {
	return &Environment{symbols: make(map[string]Type)}
}

// Define binds a name to a type, replacing any earlier binding.
func (e *Environment) Define(name string, typ Type) {
	e.symbols[name] = typ
}

func (e *Environment) Lookup(name string) (Type, bool) {
	typ, ok := e.symbols[name]
	return typ, ok
}
