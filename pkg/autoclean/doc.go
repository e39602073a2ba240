// Package autoclean resets the state of a struct instance back to zero values,
// so that test fixtures can be reused between isolated runs without hand-written
// teardown code.
//
// A reset walks the stored fields of the instance, keeps the ones selected by
// three independent filters, releases any disposable value they hold and stores
// the zero value of the field type:
//
//   - Hierarchy selects fields by the struct that declares them, relative to a
//     declared type: Declared, Descendant (structs embedding the declared type)
//     and Inherited (structs the declared type embeds as its base).
//   - Visibility selects fields by access level.
//   - ResetOptions include read-only fields, override opt-out markers or skip
//     the release step.
//
// # Embedding chain
//
// A struct's base is the embedded struct field tagged clean:"base", or, when no
// field carries that tag, field 0 if it is an embedded struct value. Tag field 0
// with clean:"embed" to keep it a plain member. Following base links from the
// runtime type of the target gives the chain the hierarchy filter works on.
//
// # Tags
//
// Fields are configured with the clean struct tag:
//
//	skip                  opt out of resets unless OverrideOptOut is set
//	readonly              reset only with IncludeReadOnly
//	base                  the embedded struct is the parent type
//	embed                 the embedded struct is a plain member
//	property[=Name]       the field stores a property; readonly does not apply
//	access=<level>        access level instead of public/private from the name
//	set=<level>           setter access level of a property
//
// Levels are public, protected, private, internal, protected-internal and
// protected-private.
//
// # Release
//
// Values implementing io.Closer or interface{ Close() }, directly or through
// their address, are closed once before the field is reset. A Close error stops
// the reset and is returned as *ReleaseError, which names the member. The error
// returned by Close is not returned directly; it is reachable only through
// ReleaseError.Unwrap, so match it with errors.Is or errors.As.
package autoclean
