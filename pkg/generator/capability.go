package generator

import "reflect"

// Capability identifies a unit of backend-replaceable behavior.
// Two capabilities are the same when their names are equal.
type Capability struct {
	name string
	typ  reflect.Type
}

// CapabilityOf returns the capability described by the type T, normally an
// interface. Handlers resolved for it must implement T.
func CapabilityOf[T any]() Capability {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	name := typ.String()
	if typ.Name() != "" && typ.PkgPath() != "" {
		name = typ.PkgPath() + "." + typ.Name()
	}
	return Capability{name: name, typ: typ}
}

// NamedCapability returns a purely symbolic capability. Handlers resolved
// for it are not type checked unless the binding was made with a typed
// capability of the same name.
func NamedCapability(name string) Capability {
	return Capability{name: name}
}

// Name returns the capability's identity.
func (c Capability) Name() string {
	return c.name
}

// Type returns the Go type handlers must satisfy, or nil for a symbolic capability.
func (c Capability) Type() reflect.Type {
	return c.typ
}

// IsZero reports whether c is the zero Capability.
func (c Capability) IsZero() bool {
	return c.name == ""
}

func (c Capability) String() string {
	if c.name == "" {
		return "<invalid capability>"
	}
	return c.name
}

// accepts reports whether h satisfies the capability's type.
func (c Capability) accepts(h any) bool {
	if c.typ == nil {
		return true
	}
	ht := reflect.TypeOf(h)
	if c.typ.Kind() == reflect.Interface {
		return ht.Implements(c.typ)
	}
	return ht.AssignableTo(c.typ)
}

// isNil reports whether h is nil or a typed nil pointer-like value.
func isNil(h any) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
