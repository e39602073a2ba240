package autoclean_test

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCloser struct {
	mock.Mock
}

func (m *mockCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newMockCloser() *mockCloser {
	c := &mockCloser{}
	c.On("Close").Return(nil)
	return c
}

func newFailingCloser(err error) *mockCloser {
	c := &mockCloser{}
	c.On("Close").Return(err)
	return c
}

func strPtr(s string) *string {
	return &s
}

type GrandParent struct {
	GrandDisposable io.Closer
	GrandClass      *string
	GrandStruct     uuid.UUID
	GrandProperty   string `clean:"property"`
}

type Parent struct {
	GrandParent
	ParentDisposable io.Closer
	ParentClass      *string
	ParentStruct     uuid.UUID
}

type Current struct {
	Parent
	Disposable      io.Closer
	Class           *string
	Struct          uuid.UUID
	CurrentProperty string `clean:"property"`
}

type Child struct {
	Current
	ChildDisposable io.Closer
	ChildClass      *string
	ChildStruct     uuid.UUID
}

type GrandChild struct {
	Child
	GrandChildDisposable io.Closer
	GrandChildClass      *string
	GrandChildStruct     uuid.UUID
	GrandChildProperty   string `clean:"property,set=public"`
}

type visibilityFixture struct {
	PublicField            *string
	ProtectedField         *string `clean:"access=protected"`
	privateField           *string
	InternalField          *string `clean:"access=internal"`
	ProtectedInternalField *string `clean:"access=protected-internal"`
	ProtectedPrivateField  *string `clean:"access=protected-private"`

	PublicPublicProperty    *string `clean:"property"`
	PublicProtectedProperty *string `clean:"property,set=protected"`
	PublicPrivateProperty   *string `clean:"property,set=private"`
}

func newVisibilityFixture() *visibilityFixture {
	return &visibilityFixture{
		PublicField:             strPtr("abc"),
		ProtectedField:          strPtr("abc"),
		privateField:            strPtr("abc"),
		InternalField:           strPtr("abc"),
		ProtectedInternalField:  strPtr("abc"),
		ProtectedPrivateField:   strPtr("abc"),
		PublicPublicProperty:    strPtr("abc"),
		PublicProtectedProperty: strPtr("abc"),
		PublicPrivateProperty:   strPtr("abc"),
	}
}

type optionsFixture struct {
	NoCleanField         io.Closer `clean:"skip"`
	ReadonlyField        io.Closer `clean:"readonly"`
	NoCleanProperty      io.Closer `clean:"property,skip"`
	NoCleanReadonlyField io.Closer `clean:"skip,readonly"`
	Field                io.Closer
	ReadonlyProperty     io.Closer `clean:"property,readonly"`
}

var errBoom = errors.New("boom")

type quietResource struct {
	closed int
}

func (r *quietResource) Close() {
	r.closed++
}

type valueResource struct {
	name   string
	closed *int
}

func (r *valueResource) Close() error {
	*r.closed++
	return nil
}

type releaseOrder struct {
	First  io.Closer
	Second io.Closer
	Third  io.Closer
}

type privateState struct {
	counter  int
	resource *quietResource
	buffer   valueResource
	labels   map[string]string
	hooks    []func()
}
