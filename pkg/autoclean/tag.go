package autoclean

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagKey is the struct tag key read by the descriptor builder.
const TagKey = "clean"

// Tag is the parsed form of a clean:"..." struct tag.
type Tag struct {
	Skip     bool
	ReadOnly bool
	Base     bool
	Embed    bool

	// Property is set for property-backed members. PropertyName is empty when
	// the name is derived from the field name.
	Property     bool
	PropertyName string

	Access AccessLevel
	Setter AccessLevel
}

// ParseTag parses the value of a clean struct tag. An empty value yields the zero Tag.
func ParseTag(value string) (Tag, error) {
	var tag Tag
	if strings.TrimSpace(value) == "" {
		return tag, nil
	}

	seen := make(map[string]bool)
	for _, raw := range strings.Split(value, ",") {
		opt := strings.TrimSpace(raw)
		key, arg, hasArg := strings.Cut(opt, "=")
		if key == "" {
			return Tag{}, &TagError{Tag: value, Option: opt, Reason: "empty option"}
		}
		if seen[key] {
			return Tag{}, &TagError{Tag: value, Option: opt, Reason: "duplicate option"}
		}
		seen[key] = true

		switch key {
		case "skip", "readonly", "base", "embed":
			if hasArg {
				return Tag{}, &TagError{Tag: value, Option: opt, Reason: "option takes no value"}
			}
			switch key {
			case "skip":
				tag.Skip = true
			case "readonly":
				tag.ReadOnly = true
			case "base":
				tag.Base = true
			case "embed":
				tag.Embed = true
			}
		case "property":
			tag.Property = true
			if hasArg {
				if !validPropertyName(arg) {
					return Tag{}, &TagError{Tag: value, Option: opt, Reason: "invalid property name"}
				}
				tag.PropertyName = arg
			}
		case "access", "set":
			level, err := ParseAccessLevel(arg)
			if err != nil {
				return Tag{}, &TagError{Tag: value, Option: opt, Reason: err.Error()}
			}
			if key == "access" {
				tag.Access = level
			} else {
				tag.Setter = level
			}
		default:
			return Tag{}, &TagError{Tag: value, Option: opt, Reason: "unknown option"}
		}
	}
	return tag, nil
}

// PropertyName derives the property name a backing field stands for: the field
// name with its first rune upper-cased.
func PropertyName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToUpper(r)) + field[size:]
}

func validPropertyName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
