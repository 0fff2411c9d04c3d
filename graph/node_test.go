package graph

import (
	"strings"
	"testing"

	"github.com/gogpu/layer"
)

func withDebug(t *testing.T) {
	t.Helper()
	old := Debug
	Debug = true
	t.Cleanup(func() { Debug = old })
}

func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if msg, _ := r.(string); !strings.Contains(msg, want) {
			t.Fatalf("panic = %v, want it to contain %q", r, want)
		}
	}()
	fn()
}

func TestAttributeRevalidatesOnce(t *testing.T) {
	calls := 0
	a := NewAttribute("a", func(*Env) int {
		calls++
		return calls
	})
	if !a.IsInvalid() {
		t.Fatal("new attribute should start invalid")
	}
	for range 3 {
		if got := a.Revalidate(nil); got != 1 {
			t.Errorf("Revalidate() = %d, want 1", got)
		}
	}
	if calls != 1 || a.Revalidations() != 1 {
		t.Errorf("computed %d times (count %d), want once", calls, a.Revalidations())
	}

	a.Invalidate()
	a.Invalidate()
	if got := a.Revalidate(nil); got != 2 {
		t.Errorf("after invalidate Revalidate() = %d, want 2", got)
	}
}

func TestInvalidationIsTransitive(t *testing.T) {
	c := NewValue("c", 1)
	b := NewAttribute("b", func(*Env) int { return c.Value() * 10 })
	a := NewAttribute("a", func(*Env) int { return b.Value() + 1 })
	d := NewAttribute("d", func(*Env) int { return c.Value() * 2 })
	b.Observe(&c.Node)
	a.Observe(&b.Node)
	d.Observe(&c.Node)

	if got := a.Revalidate(nil); got != 11 {
		t.Fatalf("a = %d, want 11", got)
	}
	d.Revalidate(nil)

	c.Set(2)
	for _, n := range []*Node{&a.Node, &b.Node, &c.Node, &d.Node} {
		if !n.IsInvalid() {
			t.Errorf("%s still valid after its dependency changed", n.Name())
		}
	}
	if got := a.Revalidate(nil); got != 21 {
		t.Errorf("a = %d, want 21", got)
	}
	if d.IsInvalid() != true {
		t.Error("revalidating a must not revalidate its sibling d")
	}
	if got := d.Revalidate(nil); got != 4 {
		t.Errorf("d = %d, want 4", got)
	}
}

func TestRevalidateOrder(t *testing.T) {
	var order []string
	leaf := func(name string) *Attribute[int] {
		return NewAttribute(name, func(*Env) int {
			order = append(order, name)
			return 0
		})
	}
	x, y := leaf("x"), leaf("y")
	top := leaf("top")
	top.Observe(&y.Node)
	top.Observe(&x.Node)
	top.Revalidate(nil)

	want := []string{"y", "x", "top"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestUnobserveStopsPropagation(t *testing.T) {
	dep := NewValue("dep", 0)
	a := NewAttribute("a", func(*Env) int { return 0 })
	a.Observe(&dep.Node)
	a.Revalidate(nil)
	a.Unobserve(&dep.Node)
	a.Revalidate(nil)

	dep.Set(1)
	if a.IsInvalid() {
		t.Error("unobserved dependency still invalidates")
	}
	if a.Observes(&dep.Node) {
		t.Error("Observes() = true after Unobserve")
	}
}

func TestContractViolations(t *testing.T) {
	t.Run("Logged", func(t *testing.T) {
		a := NewAttribute("a", func(*Env) int { return 0 })
		b := NewAttribute("b", func(*Env) int { return 0 })
		a.Observe(&b.Node)
		a.Observe(&b.Node)
		if len(a.observed) != 1 || len(b.observers) != 1 {
			t.Errorf("double observe added an edge: %d/%d", len(a.observed), len(b.observers))
		}
		a.Observe(&a.Node)
		if a.Observes(&a.Node) {
			t.Error("node observes itself")
		}
	})

	t.Run("DoubleObserve", func(t *testing.T) {
		withDebug(t)
		a := NewAttribute("a", func(*Env) int { return 0 })
		b := NewAttribute("b", func(*Env) int { return 0 })
		a.Observe(&b.Node)
		mustPanic(t, "already observes", func() { a.Observe(&b.Node) })
	})

	t.Run("Cycle", func(t *testing.T) {
		withDebug(t)
		a := NewAttribute("a", func(*Env) int { return 0 })
		b := NewAttribute("b", func(*Env) int { return 0 })
		a.Observe(&b.Node)
		b.Observe(&a.Node)
		mustPanic(t, "cycle", func() { a.Revalidate(nil) })
	})

	t.Run("UnknownDependency", func(t *testing.T) {
		withDebug(t)
		a := NewAttribute("a", func(*Env) int { return 0 })
		b := NewAttribute("b", func(*Env) int { return 0 })
		mustPanic(t, "does not observe", func() { a.Unobserve(&b.Node) })
	})
}

func TestDetach(t *testing.T) {
	dep := NewValue("dep", 0)
	other := NewValue("other", 0)
	a := NewAttribute("a", func(*Env) int { return 0 })
	a.Observe(&dep.Node)
	a.Observe(&other.Node)
	a.Detach()
	if len(a.observed) != 0 || len(dep.observers) != 0 || len(other.observers) != 0 {
		t.Error("Detach left invalidation edges")
	}
}

func TestTransformAttribute(t *testing.T) {
	tr := NewTransformAttribute(layer.Identity())
	tr.Revalidate(nil)
	tr.SetMatrix(layer.Identity())
	if tr.IsInvalid() {
		t.Error("setting an equal matrix invalidated the transform")
	}
	m := layer.Translate(3, 4)
	tr.SetMatrix(m)
	if !tr.IsInvalid() {
		t.Fatal("setting a new matrix did not invalidate")
	}
	if got := tr.Revalidate(nil); got != m {
		t.Errorf("Revalidate() = %v, want %v", got, m)
	}
}

func TestValueGetBeforeRevalidate(t *testing.T) {
	v := NewValue("v", "a")
	v.Revalidate(nil)
	v.Set("b")
	if v.Get() != "b" || v.Value() != "a" {
		t.Errorf("Get/Value = %q/%q, want b/a", v.Get(), v.Value())
	}
}
