package driver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"flare/internal/ir"
)

func TestBuildAllMergesInOrder(t *testing.T) {
	builders := make([]Builder, 4)
	for i := range builders {
		builders[i] = func(_ context.Context) (*ir.Module, error) {
			m := ir.New()
			// Every builder defines "shared" plus one unique function.
			if err := m.Add(ir.ByName("shared"), &ir.Func{Body: &ir.Literal{Value: fmt.Sprintf("%d", i)}}, false); err != nil {
				return nil, err
			}
			if err := m.Add(ir.ByName(fmt.Sprintf("f%d", i)), &ir.Func{Body: &ir.Literal{Value: "x"}}, false); err != nil {
				return nil, err
			}
			return m, nil
		}
	}

	out, err := BuildAll(context.Background(), builders, BuildOptions{Concurrency: 2})
	if err != nil {
		t.Fatalf("build all: %v", err)
	}

	for i := range builders {
		if _, err := out.Lookup(fmt.Sprintf("f%d", i)); err != nil {
			t.Fatalf("missing f%d: %v", i, err)
		}
	}

	// Merge is serial in builder order, so the last builder wins.
	node, err := out.Lookup("shared")
	if err != nil {
		t.Fatalf("lookup shared: %v", err)
	}
	if lit := node.(*ir.Func).Body.(*ir.Literal); lit.Value != "3" {
		t.Fatalf("shared = %q, want 3", lit.Value)
	}

	if err := out.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestBuildAllPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	builders := []Builder{
		func(_ context.Context) (*ir.Module, error) { return ir.New(), nil },
		func(_ context.Context) (*ir.Module, error) { return nil, boom },
	}

	if _, err := BuildAll(context.Background(), builders, BuildOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected builder error, got %v", err)
	}
}

func TestBuildAllEmpty(t *testing.T) {
	out, err := BuildAll(context.Background(), nil, BuildOptions{})
	if err != nil {
		t.Fatalf("build all: %v", err)
	}
	if len(out.GetGlobalVars()) != 0 {
		t.Fatalf("empty build produced bindings")
	}
}
