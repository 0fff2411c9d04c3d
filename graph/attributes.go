package graph

import "github.com/gogpu/layer"

// Value is a leaf attribute holding a value set by its owner.
type Value[T any] struct {
	Attribute[T]
	next T
}

// NewValue creates a leaf attribute holding v.
func NewValue[T any](name string, v T) *Value[T] {
	a := &Value[T]{next: v}
	a.init(name, func(*Env) T { return a.next })
	return a
}

// Set replaces the value and invalidates the attribute.
func (a *Value[T]) Set(v T) {
	a.next = v
	a.Invalidate()
}

// Get returns the most recently set value, valid or not.
func (a *Value[T]) Get() T { return a.next }

// TransformAttribute holds the local matrix of a node.
type TransformAttribute struct {
	Attribute[layer.Matrix]
	matrix layer.Matrix
}

// NewTransformAttribute creates a transform attribute holding m.
func NewTransformAttribute(m layer.Matrix) *TransformAttribute {
	a := &TransformAttribute{matrix: m}
	a.init("transform", func(*Env) layer.Matrix { return a.matrix })
	return a
}

// SetMatrix replaces the matrix. Setting an equal matrix does nothing.
func (a *TransformAttribute) SetMatrix(m layer.Matrix) {
	if m == a.matrix {
		return
	}
	a.matrix = m
	a.Invalidate()
}

// Matrix returns the current matrix, valid or not.
func (a *TransformAttribute) Matrix() layer.Matrix { return a.matrix }

// ShapeAttribute produces the geometry of a node. A nil shape means the
// node has no geometry.
type ShapeAttribute struct {
	Attribute[layer.Shape]
	source func(env *Env) layer.Shape
}

// NewShapeAttribute creates a shape attribute computed by source.
func NewShapeAttribute(name string, source func(env *Env) layer.Shape) *ShapeAttribute {
	a := &ShapeAttribute{source: source}
	a.init(name, func(env *Env) layer.Shape {
		if a.source == nil {
			return nil
		}
		return a.source(env)
	})
	return a
}

// SetShape replaces the source with a fixed shape.
func (a *ShapeAttribute) SetShape(s layer.Shape) {
	a.source = func(*Env) layer.Shape { return s }
	a.Invalidate()
}
