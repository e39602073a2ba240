package autoclean

const (
	reasonVisibility = "visibility"
	reasonReadOnly   = "read-only"
	reasonOptOut     = "opt-out"
)

// IsAdmitted reports whether m is reset under the given visibility and options.
//
// Property-backed members are matched by their setter access level and are never
// treated as read-only. Plain fields are matched by their own access level and
// read-only fields need IncludeReadOnly. In both cases a member tagged skip is
// admitted only with OverrideOptOut.
func IsAdmitted(m Member, v Visibility, o ResetOptions) (bool, error) {
	if v == 0 {
		return false, &ConfigError{Selector: "visibility"}
	}
	return rejection(m, v, o) == "", nil
}

// rejection returns why m is not admitted, or "" when it is.
func rejection(m Member, v Visibility, o ResetOptions) string {
	if !v.Has(m.EffectiveAccess().Visibility()) {
		return reasonVisibility
	}
	if !m.IsProperty() && m.ReadOnly && !o.Has(IncludeReadOnly) {
		return reasonReadOnly
	}
	if m.OptOut && !o.Has(OverrideOptOut) {
		return reasonOptOut
	}
	return ""
}
