package autoclean

import (
	"reflect"
	"slices"
)

type chainLevel struct {
	desc   *TypeDescriptor
	prefix []int
}

// Enumerate lists the candidate members of runtime for the selected hierarchy
// partitions, relative to declared. Partitions are concatenated in the order
// Descendant, Declared, Inherited; levels run from the most embedding type to
// the root and fields keep declaration order, so the result is stable.
func Enumerate(runtime, declared reflect.Type, h Hierarchy) ([]Member, error) {
	if h == 0 {
		return nil, &ConfigError{Selector: "hierarchy"}
	}

	levels, err := embeddingChain(runtime)
	if err != nil {
		return nil, err
	}

	pos := slices.IndexFunc(levels, func(l chainLevel) bool { return l.desc.Type == declared })
	if pos < 0 {
		return nil, &TypeError{
			Type:   declared,
			Reason: "not in the embedding chain of " + typeName(runtime),
		}
	}

	var members []Member
	if h.Has(Descendant) {
		members = appendLevels(members, levels[:pos], Descendant)
	}
	if h.Has(Declared) {
		members = appendLevels(members, levels[pos:pos+1], Declared)
	}
	if h.Has(Inherited) {
		members = appendLevels(members, levels[pos+1:], Inherited)
	}
	return members, nil
}

// embeddingChain walks base links from t to the root.
func embeddingChain(t reflect.Type) ([]chainLevel, error) {
	var levels []chainLevel
	var prefix []int
	for t != nil {
		d, err := Describe(t)
		if err != nil {
			return nil, err
		}
		levels = append(levels, chainLevel{desc: d, prefix: prefix})
		if d.Base == nil {
			break
		}
		prefix = append(slices.Clone(prefix), d.BaseIndex)
		t = d.Base
	}
	return levels, nil
}

func appendLevels(dst []Member, levels []chainLevel, partition Hierarchy) []Member {
	for _, l := range levels {
		for _, m := range l.desc.Members {
			m.Index = append(slices.Clone(l.prefix), m.Index...)
			m.Partition = partition
			dst = append(dst, m)
		}
	}
	return dst
}
