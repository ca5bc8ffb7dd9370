// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import (
	"reflect"
	"unsafe"
)

// Pool is the generic, type-safe flavor of PoolPtr: capacity slots of
// element type T, allocated and freed as *T.
//
// T must not contain pointers (no pointer, slice, map, string, chan,
// func, or interface fields at any nesting depth). The backing block
// is untyped memory the garbage collector does not scan, so a pointer
// stored there would not keep its referent alive. New checks this once
// at construction and panics on violation.
type Pool[T any] struct {
	raw *PoolPtr
}

// New creates a pool of capacity slots of type T.
//
// Panics if capacity < 1, T is zero-sized, or T contains pointers.
// Failure to obtain backing storage is fatal.
func New[T any](capacity int, opts ...Option) *Pool[T] {
	typ := reflect.TypeFor[T]()
	if typeHasPointers(typ) {
		panic("lfp: element type must not contain pointers")
	}
	return &Pool[T]{
		raw: NewPtr(typ.Size(), uintptr(typ.Align()), capacity, opts...),
	}
}

// Local returns an allocation handle owned by the calling goroutine.
// See PoolPtr.Local for the ownership contract.
func (p *Pool[T]) Local() *Local[T] {
	return &Local[T]{raw: LocalPtr{pool: p.raw, head: noSlot}}
}

// Cap returns the pool capacity in slots.
func (p *Pool[T]) Cap() int {
	return p.raw.Cap()
}

// SlotSize returns the distance in bytes between adjacent slots.
func (p *Pool[T]) SlotSize() uintptr {
	return p.raw.SlotSize()
}

// Reset returns the pool to its freshly constructed state.
// See PoolPtr.Reset for the quiescence contract.
func (p *Pool[T]) Reset() {
	p.raw.Reset()
}

// Local is a per-goroutine allocation handle over a Pool[T].
// See LocalPtr for the caching protocol and ownership contract.
type Local[T any] struct {
	raw LocalPtr
}

// Alloc returns storage for one T, or ErrExhausted when no slot is
// available to this handle. The pointed-to value is uninitialized
// unless the pool was built WithZero; construct the logical object in
// place before use.
func (l *Local[T]) Alloc() (*T, error) {
	p, err := l.raw.Alloc()
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// Free returns a slot to this handle's private cache.
// See LocalPtr.Free for the caller preconditions.
func (l *Local[T]) Free(elem *T) {
	l.raw.Free(unsafe.Pointer(elem))
}

// typeHasPointers reports whether the garbage collector would find
// pointers in a value of type t.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
