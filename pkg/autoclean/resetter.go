package autoclean

import (
	"io"
	"reflect"
	"unsafe"
)

// apply releases the current value of m held in root (unless DoNotDispose is
// set) and then stores the member's zero value. When the release fails the
// member keeps its value.
func apply(m Member, root reflect.Value, o ResetOptions) (released bool, err error) {
	field := writable(root.FieldByIndex(m.Index))

	if m.releasable && !o.Has(DoNotDispose) {
		if closeFn, ok := closerOf(field); ok {
			if err := closeFn(); err != nil {
				return false, &ReleaseError{Owner: m.Owner, Member: m.Name, Err: err}
			}
			released = true
		}
	}

	field.Set(m.zero)
	return released, nil
}

// writable returns a settable view of an addressable field, including
// unexported ones.
func writable(v reflect.Value) reflect.Value {
	if v.CanSet() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// closerOf returns the release action exposed by the value held in v.
func closerOf(v reflect.Value) (func() error, bool) {
	if isNil(v) {
		return nil, false
	}
	if fn, ok := closeFunc(v.Interface()); ok {
		return fn, true
	}
	if k := v.Kind(); k != reflect.Pointer && k != reflect.Interface && v.CanAddr() {
		return closeFunc(v.Addr().Interface())
	}
	return nil, false
}

func closeFunc(x any) (func() error, bool) {
	switch c := x.(type) {
	case io.Closer:
		return c.Close, true
	case quietCloser:
		return func() error {
			c.Close()
			return nil
		}, true
	}
	return nil, false
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		return v.IsNil() || isNil(v.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
