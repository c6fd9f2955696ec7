package runtime

import (
	"strings"
	"testing"
)

func TestHolderEmptiness(t *testing.T) {
	none := None()
	if !none.IsEmpty() {
		t.Error("None() must be empty")
	}
	if none.Get() != nil {
		t.Error("empty holder must hold nil")
	}

	owned := Own(&Number{Value: 1})
	if owned.IsEmpty() {
		t.Error("Own must not be empty")
	}
}

func TestHolderIdentity(t *testing.T) {
	num := &Number{Value: 42}
	a := Own(num)
	b := Share(num)

	if !a.Same(b) {
		t.Error("holders over the same object must be identical")
	}
	if !None().Same(None()) {
		t.Error("two empty holders must be identical")
	}

	c := Own(&Number{Value: 42})
	if a.Same(c) {
		t.Error("holders over distinct objects must not be identical, payload equality notwithstanding")
	}
}

func TestHolderSharingKeepsValueAlive(t *testing.T) {
	owned := Own(&String{Value: "payload"})
	shared := Share(owned.Get())
	owned = None()
	_ = owned

	s, ok := As[*String](shared)
	if !ok || s.Value != "payload" {
		t.Error("sharing holder must observe the value after the owning holder is released")
	}
}

func TestHolderDowncast(t *testing.T) {
	h := Own(&Number{Value: 7})

	if n, ok := As[*Number](h); !ok || n.Value != 7 {
		t.Errorf("As[*Number] = %v, %v", n, ok)
	}
	if _, ok := As[*String](h); ok {
		t.Error("As[*String] must fail on a Number")
	}
	if _, ok := As[*Number](None()); ok {
		t.Error("As must fail on the empty holder")
	}
}

func TestIsTrue(t *testing.T) {
	class := NewClass("Widget", nil, nil)

	tests := []struct {
		name   string
		holder Holder
		want   bool
	}{
		{"empty", None(), false},
		{"bool true", Own(&Bool{Value: true}), true},
		{"bool false", Own(&Bool{Value: false}), false},
		{"zero", Own(&Number{Value: 0}), false},
		{"nonzero", Own(&Number{Value: -3}), true},
		{"empty string", Own(&String{Value: ""}), false},
		{"nonempty string", Own(&String{Value: "x"}), true},
		{"class", Own(class), true},
		{"instance", Own(NewInstance(class)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTrue(tt.holder); got != tt.want {
				t.Errorf("IsTrue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"positive number", &Number{Value: 42}, "42"},
		{"negative number", &Number{Value: -7}, "-7"},
		{"zero", &Number{Value: 0}, "0"},
		{"string prints raw", &String{Value: `he said "hi"`}, `he said "hi"`},
		{"true", &Bool{Value: true}, "True"},
		{"false", &Bool{Value: false}, "False"},
		{"class", NewClass("Point", nil, nil), "Class Point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Inspect(); got != tt.want {
				t.Errorf("Inspect = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstanceIdentityToken(t *testing.T) {
	class := NewClass("Point", nil, nil)
	a := NewInstance(class)
	b := NewInstance(class)

	if !strings.HasPrefix(a.Inspect(), "<Point object at ") {
		t.Errorf("identity token = %q", a.Inspect())
	}
	if a.Inspect() != a.Inspect() {
		t.Error("identity token must be stable for the instance's lifetime")
	}
	if a.Inspect() == b.Inspect() {
		t.Error("distinct instances must have distinct identity tokens")
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName(None()); got != "None" {
		t.Errorf("TypeName(empty) = %q", got)
	}
	if got := TypeName(Own(&Number{Value: 1})); got != "NUMBER" {
		t.Errorf("TypeName(number) = %q", got)
	}
}
