package autoclean

import "fmt"

// AccessLevel is the declared visibility of a member.
//
// Go itself only distinguishes exported and unexported identifiers, which map to
// Public and Private. The remaining levels are declared with the access= tag option
// so that a type author can group members the way the visibility selector expects.
type AccessLevel uint8

const (
	AccessPublic AccessLevel = iota + 1
	AccessProtected
	AccessPrivate
	AccessInternal
	AccessProtectedInternal
	AccessProtectedPrivate
)

var accessLevelNames = map[AccessLevel]string{
	AccessPublic:            "public",
	AccessProtected:         "protected",
	AccessPrivate:           "private",
	AccessInternal:          "internal",
	AccessProtectedInternal: "protected-internal",
	AccessProtectedPrivate:  "protected-private",
}

func (a AccessLevel) String() string {
	if name, ok := accessLevelNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AccessLevel(%d)", uint8(a))
}

// Visibility returns the selector bit that admits members of this access level.
func (a AccessLevel) Visibility() Visibility {
	switch a {
	case AccessPublic:
		return Public
	case AccessProtected:
		return Protected
	case AccessPrivate:
		return Private
	case AccessInternal:
		return Internal
	case AccessProtectedInternal:
		return ProtectedInternal
	case AccessProtectedPrivate:
		return ProtectedPrivate
	default:
		return 0
	}
}

// ParseAccessLevel parses the tag spelling of an access level.
func ParseAccessLevel(s string) (AccessLevel, error) {
	for level, name := range accessLevelNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown access level %q", s)
}

func defaultAccess(exported bool) AccessLevel {
	if exported {
		return AccessPublic
	}
	return AccessPrivate
}
