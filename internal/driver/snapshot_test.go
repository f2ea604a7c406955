package driver

import (
	"errors"
	"testing"

	"flare/internal/ir"
	"flare/internal/native"
)

type stubCallable struct {
	name string
}

func (s *stubCallable) Name() string { return s.name }

func (s *stubCallable) Call(inputs []string) ([]native.Token, error) {
	out := make([]native.Token, len(inputs))
	for i, in := range inputs {
		out[i] = native.Token{Text: in}
	}
	return out, nil
}

func snapshotModule(t *testing.T) *ir.Module {
	t.Helper()
	m := ir.New()
	if err := m.Add(ir.ByName("Pair"), &ir.ClassType{Ctors: []ir.Constructor{
		{Name: "MkPair", Tag: 0},
	}}, false); err != nil {
		t.Fatalf("add type: %v", err)
	}
	if err := m.Add(ir.ByName("main"), &ir.Func{Body: &ir.Literal{Value: "0"}}, false); err != nil {
		t.Fatalf("add main: %v", err)
	}
	if err := m.Add(ir.ByName("tokenize"), &ir.ExternFunc{Symbol: "wordpiece"}, false); err != nil {
		t.Fatalf("add extern: %v", err)
	}
	if err := m.SetMain(ir.ByName("main")); err != nil {
		t.Fatalf("set main: %v", err)
	}
	return m
}

func TestSnapshotCaptureAndRestore(t *testing.T) {
	m := snapshotModule(t)
	payload := Snapshot("demo", m)

	if payload.Module != "demo" {
		t.Fatalf("module = %q", payload.Module)
	}
	if payload.Export != "main" {
		t.Fatalf("export = %q, want main", payload.Export)
	}
	if payload.Text != m.AsText() {
		t.Fatalf("snapshot text differs from dump")
	}

	reg := native.NewRegistry()
	if err := reg.Register(&stubCallable{name: "wordpiece"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	restored, err := payload.Restore(reg)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	// Handle order is preserved.
	wantFuncs := []string{"main", "tokenize"}
	gotFuncs := restored.GetGlobalVars()
	if len(gotFuncs) != len(wantFuncs) {
		t.Fatalf("got %d funcs, want %d", len(gotFuncs), len(wantFuncs))
	}
	for i, id := range gotFuncs {
		name, _ := restored.GlobalVarName(id)
		if name != wantFuncs[i] {
			t.Fatalf("func %d = %q, want %q", i, name, wantFuncs[i])
		}
	}
	if _, ctors, err := restored.GetType("Pair"); err != nil || len(ctors) != 1 || ctors[0].Name != "MkPair" {
		t.Fatalf("restored type wrong: %v %v", ctors, err)
	}
	node, err := restored.Lookup("tokenize")
	if err != nil {
		t.Fatalf("lookup tokenize: %v", err)
	}
	if ext, ok := node.(*ir.ExternFunc); !ok || ext.Call == nil {
		t.Fatalf("extern not re-resolved through registry: %T", node)
	}
	export, ok := restored.ExportFunc()
	if !ok {
		t.Fatalf("export lost")
	}
	if name, _ := restored.GlobalVarName(export); name != "main" {
		t.Fatalf("export = %q, want main", name)
	}
	if err := restored.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestRestoreUnknownNativeSymbol(t *testing.T) {
	m := snapshotModule(t)
	payload := Snapshot("demo", m)

	if _, err := payload.Restore(native.NewRegistry()); err == nil {
		t.Fatalf("expected error for unregistered native symbol")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	m := snapshotModule(t)
	payload := Snapshot("demo", m)
	key := payload.Key()

	var missing Payload
	if ok, err := cache.Get(key, &missing); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out Payload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if out.Module != payload.Module || out.Export != payload.Export || out.Text != payload.Text {
		t.Fatalf("payload mismatch after round trip")
	}
	if len(out.Funcs) != len(payload.Funcs) || len(out.Types) != len(payload.Types) {
		t.Fatalf("entries lost in round trip")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("hit after drop")
	}
}

func TestPayloadSchemaCheck(t *testing.T) {
	m := snapshotModule(t)
	payload := Snapshot("demo", m)
	payload.Schema = 99

	if _, err := payload.Restore(native.NewRegistry()); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestPayloadKeyStability(t *testing.T) {
	m := snapshotModule(t)
	a := Snapshot("demo", m)
	b := Snapshot("demo", m)
	if a.Key() != b.Key() {
		t.Fatalf("keys differ for identical snapshots")
	}
	c := Snapshot("other", m)
	if a.Key() == c.Key() {
		t.Fatalf("keys collide across module names")
	}
}
