// Package analyzer reports clean struct tags that autoclean would reject or
// silently ignore.
package analyzer

import (
	"go/ast"
	"go/types"
	"reflect"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

var Analyzer = &analysis.Analyzer{
	Name:     "cleantag",
	Doc:      "check clean struct tags used by autoclean",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{(*ast.StructType)(nil)}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		checkStruct(pass, n.(*ast.StructType))
	})

	return nil, nil
}

// checkStruct проверяет теги всех полей одной структуры
func checkStruct(pass *analysis.Pass, st *ast.StructType) {
	var baseField *ast.Field

	for _, field := range st.Fields.List {
		tag, ok := cleanTag(pass, field)
		if !ok {
			continue
		}

		if tag.Base {
			// base допустим только на встроенной структуре
			switch {
			case len(field.Names) > 0:
				pass.Reportf(field.Pos(), "clean:\"base\" requires an embedded field")
			case !isStructValue(pass.TypesInfo.TypeOf(field.Type)):
				pass.Reportf(field.Pos(), "clean:\"base\" requires an embedded struct value")
			}
			if tag.Embed {
				pass.Reportf(field.Pos(), "clean options base and embed are mutually exclusive")
			}
			if baseField != nil {
				pass.Reportf(field.Pos(), "struct already has a base field at line %d",
					pass.Fset.Position(baseField.Pos()).Line)
			} else {
				baseField = field
			}
		}

		if tag.Property && tag.ReadOnly {
			pass.Reportf(field.Pos(), "clean option readonly has no effect on property fields")
		}
		if tag.Setter != 0 && !tag.Property {
			pass.Reportf(field.Pos(), "clean option set= requires property")
		}
		if tag.Embed && len(field.Names) > 0 {
			pass.Reportf(field.Pos(), "clean option embed has no effect on named fields")
		}
	}
}

// cleanTag разбирает тег clean поля. ok = false, если тега нет или он некорректен
func cleanTag(pass *analysis.Pass, field *ast.Field) (autoclean.Tag, bool) {
	if field.Tag == nil {
		return autoclean.Tag{}, false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return autoclean.Tag{}, false
	}
	value, ok := reflect.StructTag(raw).Lookup(autoclean.TagKey)
	if !ok {
		return autoclean.Tag{}, false
	}

	tag, err := autoclean.ParseTag(value)
	if err != nil {
		pass.Reportf(field.Tag.Pos(), "%v", err)
		return autoclean.Tag{}, false
	}
	return tag, true
}

// isStructValue проверяет, что тип является структурой, а не указателем на нее
func isStructValue(t types.Type) bool {
	if t == nil {
		return false
	}
	_, ok := t.Underlying().(*types.Struct)
	return ok
}
