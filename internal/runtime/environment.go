package runtime

// Environment is a flat mapping from identifier to holder. Mython has
// no nested scopes: name resolution never walks outward, so unlike most
// interpreters there is no outer link. The top-level environment and
// per-call frames are both plain Environments; instance fields reuse the
// same type.
type Environment struct {
	store map[string]Holder
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Holder)}
}

func (e *Environment) Get(name string) (Holder, bool) {
	h, ok := e.store[name]
	return h, ok
}

// Set inserts or replaces the binding for name. Last write wins.
func (e *Environment) Set(name string, h Holder) Holder {
	e.store[name] = h
	return h
}

func (e *Environment) Len() int {
	return len(e.store)
}

// Names returns the bound identifiers, for debugging and the REPL's
// variables panel. Order is unspecified.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	return names
}
