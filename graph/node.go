package graph

import (
	"fmt"
	"slices"

	"github.com/gogpu/layer"
)

// Debug turns contract violations into panics. When false they are logged
// at debug level and the offending call has no effect.
var Debug = false

// contract reports a programming error.
func contract(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if Debug {
		panic("graph: " + msg)
	}
	layer.Logger().Debug("graph: contract violation", "detail", msg)
}

// Node is the unit of invalidation.
//
// Nodes built by this package start invalid. A node observes zero or more
// dependencies and is observed by zero or more dependents.
type Node struct {
	name      string
	invalid   bool
	busy      bool
	observers []*Node
	observed  []*Node
	count     int
	hook      func(env *Env)
}

// init names the node and installs the function that recomputes it.
func (n *Node) init(name string, hook func(env *Env)) {
	n.name = name
	n.hook = hook
	n.invalid = true
}

// Name returns the debug name of the node.
func (n *Node) Name() string { return n.name }

// IsInvalid reports whether the node needs revalidation.
func (n *Node) IsInvalid() bool { return n.invalid }

// Revalidations returns how many times the node has been recomputed.
func (n *Node) Revalidations() int { return n.count }

// Invalidate marks n and every node observing it as invalid. Invalidating
// an invalid node does nothing.
func (n *Node) Invalidate() {
	if n.invalid {
		return
	}
	n.invalid = true
	for _, o := range n.observers {
		o.Invalidate()
	}
}

// Revalidate recomputes n if it is invalid. Observed dependencies are
// revalidated first, in the order they were observed. A valid node returns
// immediately.
func (n *Node) Revalidate(env *Env) {
	if !n.invalid {
		return
	}
	if n.busy {
		contract("revalidation cycle through %q", n.name)
		return
	}
	n.busy = true
	for _, d := range n.observed {
		d.Revalidate(env)
	}
	if n.hook != nil {
		n.hook(env)
	}
	n.count++
	n.invalid = false
	n.busy = false
}

// Observe makes n depend on dep: invalidating dep invalidates n.
// Observing a node twice, or observing n itself, is a contract violation.
func (n *Node) Observe(dep *Node) {
	if dep == nil || dep == n {
		contract("%q cannot observe %v", n.name, dep)
		return
	}
	if slices.Contains(n.observed, dep) {
		contract("%q already observes %q", n.name, dep.name)
		return
	}
	n.observed = append(n.observed, dep)
	dep.observers = append(dep.observers, n)
	n.Invalidate()
}

// Unobserve removes the dependency on dep.
func (n *Node) Unobserve(dep *Node) {
	i := slices.Index(n.observed, dep)
	if dep == nil || i < 0 {
		contract("%q does not observe %v", n.name, dep)
		return
	}
	n.observed = slices.Delete(n.observed, i, i+1)
	if j := slices.Index(dep.observers, n); j >= 0 {
		dep.observers = slices.Delete(dep.observers, j, j+1)
	}
	n.Invalidate()
}

// Observes reports whether n observes dep.
func (n *Node) Observes(dep *Node) bool { return slices.Contains(n.observed, dep) }

// Detach unobserves every dependency of n. Nodes must be detached before
// they are discarded so that no invalidation edge outlives them.
func (n *Node) Detach() {
	for len(n.observed) > 0 {
		n.Unobserve(n.observed[len(n.observed)-1])
	}
}

// Attribute is a node that produces one value of type T.
type Attribute[T any] struct {
	Node
	value   T
	compute func(env *Env) T
}

// NewAttribute creates an attribute computing its value with compute.
func NewAttribute[T any](name string, compute func(env *Env) T) *Attribute[T] {
	a := &Attribute[T]{}
	a.init(name, compute)
	return a
}

func (a *Attribute[T]) init(name string, compute func(env *Env) T) {
	a.compute = compute
	a.Node.init(name, func(env *Env) { a.value = a.compute(env) })
}

// Revalidate recomputes the attribute if needed and returns its value.
func (a *Attribute[T]) Revalidate(env *Env) T {
	a.Node.Revalidate(env)
	return a.value
}

// Value returns the cached value without revalidating.
func (a *Attribute[T]) Value() T { return a.value }
