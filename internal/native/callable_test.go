package native

import (
	"errors"
	"testing"
)

type stubCallable struct {
	name string
}

func (s *stubCallable) Name() string { return s.name }

func (s *stubCallable) Call(inputs []string) ([]Token, error) {
	out := make([]Token, len(inputs))
	for i, in := range inputs {
		out[i] = Token{Text: in, ID: int32(i)}
	}
	return out, nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubCallable{name: "wordpiece"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, ok := r.Lookup("wordpiece")
	if !ok {
		t.Fatalf("lookup failed")
	}
	tokens, err := c.Call([]string{"a", "b"})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if len(tokens) != 2 || tokens[1].Text != "b" || tokens[1].ID != 1 {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubCallable{name: "x"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(&stubCallable{name: "x"}); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(&stubCallable{name: name}); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}
	names := r.Names()
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
