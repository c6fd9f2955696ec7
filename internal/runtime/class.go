package runtime

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mythonlang/mython/internal/token"
)

// Executable is the handle the runtime keeps for a method body. Bodies
// are AST statements (always MethodBody wrappers); execution lives in
// the evaluator, the runtime only stores and hands them back.
type Executable interface {
	GetToken() token.Token
}

// Method is a single method record of a class descriptor. FormalParams
// excludes the receiver: self is bound separately on every call, so a
// method's arity is len(FormalParams).
type Method struct {
	Name         string
	FormalParams []string
	Body         Executable
}

// Class is the immutable shape of a user-defined class. The name→method
// map is flattened at construction (parent methods first, own methods
// overwrite), which keeps GetMethod O(1) and independent of inheritance
// depth. Descriptors outlive every instance that references them.
type Class struct {
	name    string
	methods []Method
	parent  *Class
	byName  map[string]*Method
}

func NewClass(name string, methods []Method, parent *Class) *Class {
	c := DeclareClass(name, parent)
	c.Define(methods)
	return c
}

// DeclareClass creates a descriptor whose methods are not known yet.
// The parser registers the declaration before reading method bodies so
// a method can construct instances of its own class; Define completes
// the descriptor exactly once, after which it never changes.
func DeclareClass(name string, parent *Class) *Class {
	c := &Class{
		name:   name,
		parent: parent,
		byName: make(map[string]*Method),
	}

	if parent != nil {
		for name, m := range parent.byName {
			c.byName[name] = m
		}
	}

	return c
}

// Define installs the method list, overwriting inherited entries of the
// same name.
func (c *Class) Define(methods []Method) {
	c.methods = methods
	for i := range c.methods {
		c.byName[c.methods[i].Name] = &c.methods[i]
	}
}

func (c *Class) Name() string   { return c.name }
func (c *Class) Parent() *Class { return c.parent }

// Methods returns the class's own method list in declaration order,
// inherited methods excluded.
func (c *Class) Methods() []Method { return c.methods }

// GetMethod returns the method record for name, resolved through the
// flattened override map, or nil.
func (c *Class) GetMethod(name string) *Method {
	if m, ok := c.byName[name]; ok {
		return m
	}
	return nil
}

// HasMethod reports whether the class resolves name to a method taking
// exactly arity arguments. Mython has no default or variadic parameters,
// so an arity mismatch is the same as absence.
func (c *Class) HasMethod(name string, arity int) bool {
	m := c.GetMethod(name)
	return m != nil && len(m.FormalParams) == arity
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return "Class " + c.name }

// ClassInstance is a live object: a non-owning link to its class plus an
// owned field environment. Field access indexes this environment
// directly, it is never a general name lookup.
type ClassInstance struct {
	class  *Class
	fields *Environment
	ident  string
}

func NewInstance(class *Class) *ClassInstance {
	return &ClassInstance{
		class:  class,
		fields: NewEnvironment(),
		ident:  uuid.NewString()[:8],
	}
}

func (ci *ClassInstance) Class() *Class        { return ci.class }
func (ci *ClassInstance) Fields() *Environment { return ci.fields }

func (ci *ClassInstance) Type() ObjectType { return INSTANCE_OBJ }

// Inspect yields the identity token used when the class defines no
// __str__. The token is opaque; programs must not depend on its
// contents, only on it being stable for the instance's lifetime.
func (ci *ClassInstance) Inspect() string {
	return fmt.Sprintf("<%s object at 0x%s>", ci.class.Name(), ci.ident)
}
