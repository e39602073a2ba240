package autoclean

import (
	"fmt"
	"strings"
)

// Hierarchy selects members by where they are declared relative to the declared type.
type Hierarchy uint8

const (
	// Declared selects members declared exactly on the declared type.
	//
	//	type Base struct{ a int }
	//	type Current struct{ Base; b int }
	//	type Child struct{ Current; c int }
	//
	//	autoclean.ResetAs[Current](&Child{}, autoclean.WithHierarchy(autoclean.Declared)) // resets b
	Declared Hierarchy = 1 << iota
	// Descendant selects members declared on types that embed the declared type,
	// down to the runtime type of the target (c in the example above).
	Descendant
	// Inherited selects members declared on the base types of the declared type
	// (a in the example above).
	Inherited

	// AllHierarchy selects every stored member on the chain.
	AllHierarchy = Declared | Descendant | Inherited
)

var hierarchyNames = []flagName[Hierarchy]{
	{Declared, "Declared"},
	{Descendant, "Descendant"},
	{Inherited, "Inherited"},
}

// Has reports whether any bit of flag is set in h.
func (h Hierarchy) Has(flag Hierarchy) bool {
	return h&flag != 0
}

func (h Hierarchy) String() string {
	if h == AllHierarchy {
		return "All"
	}
	return formatFlags(h, hierarchyNames)
}

// ParseHierarchy parses names such as "declared|inherited" or "all".
func ParseHierarchy(s string) (Hierarchy, error) {
	return parseFlags(s, "hierarchy", hierarchyNames, map[string]Hierarchy{"all": AllHierarchy})
}

// Visibility selects members by their effective access level.
type Visibility uint8

const (
	Public Visibility = 1 << iota
	Protected
	Private
	Internal
	ProtectedInternal
	ProtectedPrivate

	// NonPublic selects every access level except Public.
	NonPublic = Protected | Private | Internal | ProtectedInternal | ProtectedPrivate
	// AllVisibility selects every access level.
	AllVisibility = Public | NonPublic
)

var visibilityNames = []flagName[Visibility]{
	{Public, "Public"},
	{Protected, "Protected"},
	{Private, "Private"},
	{Internal, "Internal"},
	{ProtectedInternal, "ProtectedInternal"},
	{ProtectedPrivate, "ProtectedPrivate"},
}

// Has reports whether any bit of flag is set in v.
func (v Visibility) Has(flag Visibility) bool {
	return v&flag != 0
}

func (v Visibility) String() string {
	switch v {
	case AllVisibility:
		return "All"
	case NonPublic:
		return "NonPublic"
	}
	return formatFlags(v, visibilityNames)
}

// ParseVisibility parses names such as "public|private", "nonpublic" or "all".
func ParseVisibility(s string) (Visibility, error) {
	return parseFlags(s, "visibility", visibilityNames, map[string]Visibility{
		"all":       AllVisibility,
		"nonpublic": NonPublic,
	})
}

// ResetOptions are independent toggles applied on top of the selectors.
type ResetOptions uint8

const (
	// None applies no additional behavior.
	None ResetOptions = 0
	// IncludeReadOnly resets fields tagged readonly.
	IncludeReadOnly ResetOptions = 1 << (iota - 1)
	// OverrideOptOut resets members tagged skip.
	OverrideOptOut
	// DoNotDispose suppresses the release step for disposable values.
	DoNotDispose
)

var resetOptionNames = []flagName[ResetOptions]{
	{IncludeReadOnly, "IncludeReadOnly"},
	{OverrideOptOut, "OverrideOptOut"},
	{DoNotDispose, "DoNotDispose"},
}

// Has reports whether any bit of flag is set in o.
func (o ResetOptions) Has(flag ResetOptions) bool {
	return o&flag != 0
}

func (o ResetOptions) String() string {
	if o == None {
		return "None"
	}
	return formatFlags(o, resetOptionNames)
}

// ParseResetOptions parses names such as "includereadonly|donotdispose" or "none".
func ParseResetOptions(s string) (ResetOptions, error) {
	if strings.TrimSpace(s) == "" {
		return None, nil
	}
	return parseFlags(s, "reset option", resetOptionNames, map[string]ResetOptions{"none": None})
}

type flagName[F ~uint8] struct {
	flag F
	name string
}

func formatFlags[F ~uint8](f F, names []flagName[F]) string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, n := range names {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

func parseFlags[F ~uint8](s, kind string, names []flagName[F], aliases map[string]F) (F, error) {
	var out F
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if f, ok := aliases[part]; ok {
			out |= f
			continue
		}
		found := false
		for _, n := range names {
			if strings.ToLower(n.name) == part {
				out |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown %s %q", kind, part)
		}
	}
	return out, nil
}
