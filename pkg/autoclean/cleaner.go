package autoclean

import (
	"reflect"

	"github.com/rs/zerolog"
)

// Cleaner resets struct instances with a fixed set of selectors and options.
// A Cleaner holds no per-instance state and may be shared; resetting the same
// instance from several goroutines must be serialized by the caller.
type Cleaner struct {
	hierarchy  Hierarchy
	visibility Visibility
	options    ResetOptions
	logger     zerolog.Logger
	observers  []Observer
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithHierarchy selects the hierarchy partitions to reset. Default AllHierarchy.
func WithHierarchy(h Hierarchy) Option {
	return func(c *Cleaner) {
		c.hierarchy = h
	}
}

// WithVisibility selects the access levels to reset. Default AllVisibility.
func WithVisibility(v Visibility) Option {
	return func(c *Cleaner) {
		c.visibility = v
	}
}

// WithResetOptions sets the additional reset toggles. Default None.
func WithResetOptions(o ResetOptions) Option {
	return func(c *Cleaner) {
		c.options = o
	}
}

// WithLogger sets the logger used for diagnostic tracing. Default zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// WithObserver registers an observer notified for every released or reset member.
func WithObserver(o Observer) Option {
	return func(c *Cleaner) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// New creates a Cleaner. Without options it resets every member of every
// partition and releases disposable values.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		hierarchy:  AllHierarchy,
		visibility: AllVisibility,
		options:    None,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset resets target using its runtime type as the declared type.
// See ResetAs.
func (c *Cleaner) Reset(target any) error {
	return c.ResetAs(target, nil)
}

// ResetAs resets the members of target selected relative to declared, which
// must be the runtime struct type of target or a struct on its embedding chain.
// A nil declared type means the runtime type.
//
// A nil target is a no-op. Empty selectors fail with *ConfigError before any
// member is touched. If releasing a member fails, the pass stops and returns a
// *ReleaseError: members processed earlier stay reset, the failing member and
// the ones after it keep their values.
func (c *Cleaner) ResetAs(target any, declared reflect.Type) error {
	root, ok, err := resolveTarget(target)
	if err != nil || !ok {
		return err
	}
	members, err := c.members(root.Type(), declared)
	if err != nil {
		return err
	}

	c.logger.Debug().
		Stringer("type", root.Type()).
		Stringer("declared", declaredOrRuntime(declared, root.Type())).
		Stringer("hierarchy", c.hierarchy).
		Stringer("visibility", c.visibility).
		Stringer("options", c.options).
		Msg("resetting instance")

	for _, m := range members {
		if reason := rejection(m, c.visibility, c.options); reason != "" {
			c.logger.Trace().
				Stringer("owner", m.Owner).
				Str("member", m.Name).
				Str("reason", reason).
				Msg("member skipped")
			continue
		}

		released, err := apply(m, root, c.options)
		if err != nil {
			c.logger.Debug().Err(err).Stringer("owner", m.Owner).Str("member", m.Name).Msg("release failed")
			c.notify(newEvent(EventReleaseFailed, root.Type(), m, err))
			return err
		}
		if released {
			c.logger.Debug().Stringer("owner", m.Owner).Str("member", m.Name).Msg("member released")
			c.notify(newEvent(EventReleased, root.Type(), m, nil))
		}
		c.logger.Trace().Stringer("owner", m.Owner).Str("member", m.Name).Msg("member reset")
		c.notify(newEvent(EventReset, root.Type(), m, nil))
	}
	return nil
}

// Decision is the outcome Plan predicts for one member.
type Decision struct {
	Member   Member
	Admitted bool
	// Reason is "visibility", "read-only" or "opt-out" for rejected members.
	Reason string
	// Release reports whether the current value would be released.
	Release bool
}

// Plan runs enumeration and filtering for target without touching it and
// returns one decision per enumerated member, in reset order. A nil target
// yields no decisions.
func (c *Cleaner) Plan(target any, declared reflect.Type) ([]Decision, error) {
	root, ok, err := resolveTarget(target)
	if err != nil || !ok {
		return nil, err
	}
	members, err := c.members(root.Type(), declared)
	if err != nil {
		return nil, err
	}

	decisions := make([]Decision, 0, len(members))
	for _, m := range members {
		d := Decision{Member: m, Reason: rejection(m, c.visibility, c.options)}
		d.Admitted = d.Reason == ""
		if d.Admitted && m.releasable && !c.options.Has(DoNotDispose) {
			_, d.Release = closerOf(writable(root.FieldByIndex(m.Index)))
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

func (c *Cleaner) members(runtime, declared reflect.Type) ([]Member, error) {
	if c.hierarchy == 0 {
		return nil, &ConfigError{Selector: "hierarchy"}
	}
	if c.visibility == 0 {
		return nil, &ConfigError{Selector: "visibility"}
	}
	return Enumerate(runtime, declaredOrRuntime(declared, runtime), c.hierarchy)
}

func (c *Cleaner) notify(event Event) {
	for _, o := range c.observers {
		o.Notify(event)
	}
}

func newEvent(kind EventKind, target reflect.Type, m Member, err error) Event {
	return Event{
		Kind:      kind,
		Target:    target,
		Owner:     m.Owner,
		Member:    m.Name,
		Partition: m.Partition,
		Err:       err,
	}
}

// resolveTarget returns the addressable struct behind target. ok is false for
// nil targets.
func resolveTarget(target any) (root reflect.Value, ok bool, err error) {
	if target == nil {
		return reflect.Value{}, false, nil
	}
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer {
		return reflect.Value{}, false, &TypeError{Type: v.Type(), Reason: "target must be a pointer to a struct"}
	}
	if v.IsNil() {
		return reflect.Value{}, false, nil
	}
	if v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false, &TypeError{Type: v.Type(), Reason: "target must be a pointer to a struct"}
	}
	return v.Elem(), true, nil
}

func declaredOrRuntime(declared, runtime reflect.Type) reflect.Type {
	if declared == nil {
		return runtime
	}
	if declared.Kind() == reflect.Pointer {
		return declared.Elem()
	}
	return declared
}

// Reset resets target with a Cleaner built from opts.
func Reset(target any, opts ...Option) error {
	return New(opts...).Reset(target)
}

// ResetAs resets target as if it were passed through the struct type T, which
// must be the runtime type of target or embedded along its base chain.
//
//	child := &Child{}
//	autoclean.ResetAs[Current](child, autoclean.WithHierarchy(autoclean.Declared))
func ResetAs[T any](target any, opts ...Option) error {
	return New(opts...).ResetAs(target, reflect.TypeFor[T]())
}
