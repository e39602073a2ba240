package autoclean

import (
	"io"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Member describes one stored field of a struct on the embedding chain.
type Member struct {
	// Owner is the struct type that declares the field.
	Owner reflect.Type
	Name  string
	Type  reflect.Type
	// Index is the field path from the struct the member was enumerated from,
	// suitable for reflect.Value.FieldByIndex.
	Index []int

	Access AccessLevel
	// SetterAccess is the access level of the property setter. It is only
	// meaningful for property-backed members.
	SetterAccess AccessLevel
	// Property is the name of the property backed by this field, or empty for
	// plain fields.
	Property string

	ReadOnly bool
	OptOut   bool

	// Partition is set by Enumerate to the hierarchy partition the member was
	// collected in.
	Partition Hierarchy

	zero       reflect.Value
	releasable bool
}

// IsProperty reports whether the member is the storage of a property.
func (m Member) IsProperty() bool {
	return m.Property != ""
}

// EffectiveAccess is the access level checked against the visibility selector:
// the setter level for property-backed members, the field level otherwise.
func (m Member) EffectiveAccess() AccessLevel {
	if m.IsProperty() {
		return m.SetterAccess
	}
	return m.Access
}

// TypeDescriptor is the member table of one struct type. It is built once per
// type from reflection and struct tags and shared by every reset of that type.
type TypeDescriptor struct {
	Type reflect.Type
	// Base is the embedded struct acting as the parent type, nil at the root.
	Base      reflect.Type
	BaseIndex int
	// Members lists fields declared directly on Type in declaration order,
	// excluding the base field. Index holds a single element.
	Members []Member
}

var (
	closerType      = reflect.TypeFor[io.Closer]()
	quietCloserType = reflect.TypeFor[quietCloser]()
)

// quietCloser matches resources whose Close reports nothing, such as *pgxpool.Pool.
type quietCloser interface {
	Close()
}

type descriptorRegistry struct {
	cache sync.Map // reflect.Type -> *TypeDescriptor
	group singleflight.Group
}

var descriptors = &descriptorRegistry{}

// Describe returns the member table of the struct type t.
func Describe(t reflect.Type) (*TypeDescriptor, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &TypeError{Type: t, Reason: "not a struct type"}
	}
	return descriptors.describe(t)
}

// flight is the outcome of one build shared through singleflight.
type flight struct {
	typ reflect.Type
	d   *TypeDescriptor
	err error
}

func (r *descriptorRegistry) describe(t reflect.Type) (*TypeDescriptor, error) {
	if d, ok := r.cache.Load(t); ok {
		return d.(*TypeDescriptor), nil
	}

	v, _, _ := r.group.Do(t.String(), func() (any, error) {
		return r.build(t), nil
	})
	res := v.(flight)
	if res.typ != t {
		// Distinct types printing the same name shared the flight key.
		res = r.build(t)
	}
	return res.d, res.err
}

func (r *descriptorRegistry) build(t reflect.Type) flight {
	if d, ok := r.cache.Load(t); ok {
		return flight{typ: t, d: d.(*TypeDescriptor)}
	}
	d, err := buildDescriptor(t)
	if err != nil {
		return flight{typ: t, err: err}
	}
	actual, _ := r.cache.LoadOrStore(t, d)
	return flight{typ: t, d: actual.(*TypeDescriptor)}
}

func buildDescriptor(t reflect.Type) (*TypeDescriptor, error) {
	d := &TypeDescriptor{Type: t, BaseIndex: -1}

	tags := make([]Tag, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag, err := ParseTag(f.Tag.Get(TagKey))
		if err != nil {
			return nil, &TypeError{Type: t, Reason: "field " + f.Name, Err: err}
		}
		if tag.Base {
			if !f.Anonymous || f.Type.Kind() != reflect.Struct {
				return nil, &TypeError{Type: t, Reason: "base field " + f.Name + " must be an embedded struct"}
			}
			if tag.Embed {
				return nil, &TypeError{Type: t, Reason: "field " + f.Name + " is tagged both base and embed"}
			}
			if d.BaseIndex >= 0 {
				return nil, &TypeError{Type: t, Reason: "more than one base field"}
			}
			d.BaseIndex = i
		}
		if tag.Setter != 0 && !tag.Property {
			return nil, &TypeError{Type: t, Reason: "field " + f.Name + " declares set= without property"}
		}
		tags[i] = tag
	}

	if d.BaseIndex < 0 && t.NumField() > 0 {
		if f := t.Field(0); f.Anonymous && f.Type.Kind() == reflect.Struct && !tags[0].Embed {
			d.BaseIndex = 0
		}
	}
	if d.BaseIndex >= 0 {
		d.Base = t.Field(d.BaseIndex).Type
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if i == d.BaseIndex || f.Name == "_" {
			continue
		}
		tag := tags[i]

		m := Member{
			Owner:      t,
			Name:       f.Name,
			Type:       f.Type,
			Index:      []int{i},
			Access:     defaultAccess(f.IsExported()),
			ReadOnly:   tag.ReadOnly,
			OptOut:     tag.Skip,
			zero:       reflect.Zero(f.Type),
			releasable: mayRelease(f.Type),
		}
		if tag.Access != 0 {
			m.Access = tag.Access
		}
		if tag.Property {
			m.Property = tag.PropertyName
			if m.Property == "" {
				m.Property = PropertyName(f.Name)
			}
			m.SetterAccess = m.Access
			if tag.Setter != 0 {
				m.SetterAccess = tag.Setter
			}
		}
		d.Members = append(d.Members, m)
	}
	return d, nil
}

// mayRelease reports whether a value stored in a field of type t can expose a
// release action. Interface fields are decided per value.
func mayRelease(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	return isCloserType(t) || isCloserType(reflect.PointerTo(t))
}

func isCloserType(t reflect.Type) bool {
	return t.Implements(closerType) || t.Implements(quietCloserType)
}
