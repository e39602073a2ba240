package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

const (
	marker          = "generate:autoclean"
	autocleanImport = "github.com/idudko/go-autoclean/pkg/autoclean"
)

// StructInfo хранит информацию о структуре для генерации
type StructInfo struct {
	Name     string
	FilePath string
	Marker   Marker
}

// Marker хранит параметры из комментария // generate:autoclean
type Marker struct {
	Hierarchy     autoclean.Hierarchy
	Visibility    autoclean.Visibility
	Options       autoclean.ResetOptions
	hasHierarchy  bool
	hasVisibility bool
	hasOptions    bool
}

// parseMarker разбирает строку комментария. ok = false, если маркера нет.
func parseMarker(text string) (m Marker, ok bool, err error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(text, "//"), " "))
	rest, found := strings.CutPrefix(text, marker)
	if !found {
		return Marker{}, false, nil
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Marker{}, false, nil
	}

	for _, arg := range strings.Fields(rest) {
		key, value, hasValue := strings.Cut(arg, "=")
		if !hasValue || value == "" {
			return Marker{}, true, fmt.Errorf("marker argument %q: expected key=value", arg)
		}
		switch key {
		case "hierarchy":
			m.Hierarchy, err = autoclean.ParseHierarchy(value)
			m.hasHierarchy = true
			if err == nil && m.Hierarchy == 0 {
				err = errors.New("empty hierarchy")
			}
		case "visibility":
			m.Visibility, err = autoclean.ParseVisibility(value)
			m.hasVisibility = true
			if err == nil && m.Visibility == 0 {
				err = errors.New("empty visibility")
			}
		case "options":
			m.Options, err = autoclean.ParseResetOptions(value)
			m.hasOptions = true
		default:
			err = fmt.Errorf("unknown marker argument %q", key)
		}
		if err != nil {
			return Marker{}, true, err
		}
	}
	return m, true, nil
}

// findMarker ищет маркер в документации объявления
func findMarker(doc *ast.CommentGroup) (Marker, bool, error) {
	if doc == nil {
		return Marker{}, false, nil
	}
	for _, comment := range doc.List {
		m, ok, err := parseMarker(comment.Text)
		if ok || err != nil {
			return m, ok, err
		}
	}
	return Marker{}, false, nil
}

// generateForPackage генерирует Reset методы для всех отмеченных структур
// пакета и возвращает их количество
func generateForPackage(pkgPath, output string) (int, error) {
	fset := token.NewFileSet()

	files, err := filepath.Glob(filepath.Join(pkgPath, "*.go"))
	if err != nil {
		return 0, fmt.Errorf("error listing files: %w", err)
	}

	var astFiles []*ast.File
	var pkgName string
	for _, file := range files {
		// Пропускаем тестовые и сгенерированные файлы
		if strings.HasSuffix(file, "_test.go") || strings.HasSuffix(file, ".gen.go") {
			continue
		}

		astFile, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
		if err != nil {
			return 0, fmt.Errorf("error parsing file %s: %w", file, err)
		}
		if pkgName == "" {
			pkgName = astFile.Name.Name
		}
		astFiles = append(astFiles, astFile)
	}

	if len(astFiles) == 0 {
		return 0, nil
	}

	existing := resetMethods(astFiles)

	var structs []*StructInfo
	for _, file := range astFiles {
		found, err := findMarkedStructs(fset, file)
		if err != nil {
			return 0, err
		}
		for _, st := range found {
			if existing[st.Name] {
				return 0, fmt.Errorf("%s: type %s already declares a Reset method", st.FilePath, st.Name)
			}
		}
		structs = append(structs, found...)
	}

	outputPath := filepath.Join(pkgPath, output)
	if len(structs) == 0 {
		// Удаляем устаревший файл, если маркеров больше нет
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			return 0, err
		}
		return 0, nil
	}

	code, err := generateCode(pkgName, structs)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outputPath, code, 0644); err != nil {
		return 0, err
	}
	return len(structs), nil
}

// findMarkedStructs находит структуры с комментарием // generate:autoclean
func findMarkedStructs(fset *token.FileSet, file *ast.File) ([]*StructInfo, error) {
	var structs []*StructInfo

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			// Маркер может стоять как над группой, так и над отдельным типом
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			m, marked, err := findMarker(doc)
			pos := fset.Position(typeSpec.Pos())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pos, err)
			}
			if !marked {
				continue
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("%s: %s is not a struct type", pos, typeSpec.Name.Name)
			}
			if typeSpec.TypeParams != nil {
				return nil, fmt.Errorf("%s: generic type %s is not supported", pos, typeSpec.Name.Name)
			}
			if err := validateTags(fset, structType); err != nil {
				return nil, err
			}

			structs = append(structs, &StructInfo{
				Name:     typeSpec.Name.Name,
				FilePath: pos.Filename,
				Marker:   m,
			})
		}
	}

	return structs, nil
}

// validateTags проверяет теги clean у полей структуры
func validateTags(fset *token.FileSet, st *ast.StructType) error {
	for _, field := range st.Fields.List {
		if field.Tag == nil {
			continue
		}
		raw, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", fset.Position(field.Tag.Pos()), err)
		}
		if _, err := autoclean.ParseTag(reflect.StructTag(raw).Get(autoclean.TagKey)); err != nil {
			return fmt.Errorf("%s: %w", fset.Position(field.Tag.Pos()), err)
		}
	}
	return nil
}

// resetMethods собирает типы, у которых уже есть метод Reset
func resetMethods(files []*ast.File) map[string]bool {
	methods := make(map[string]bool)
	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Name.Name != "Reset" || len(fn.Recv.List) == 0 {
				continue
			}
			expr := fn.Recv.List[0].Type
			if star, ok := expr.(*ast.StarExpr); ok {
				expr = star.X
			}
			if ident, ok := expr.(*ast.Ident); ok {
				methods[ident.Name] = true
			}
		}
	}
	return methods
}

// generateCode генерирует код для autoclean.gen.go
func generateCode(pkgName string, structs []*StructInfo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by cleangen; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import %q\n\n", autocleanImport)

	for _, st := range structs {
		generateResetMethod(&buf, st)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("error formatting code: %w", err)
	}
	return formatted, nil
}

// generateResetMethod генерирует метод Reset для структуры
func generateResetMethod(buf *bytes.Buffer, st *StructInfo) {
	fmt.Fprintf(buf, "// Reset resets the %s fields to their zero values.\n", st.Name)
	fmt.Fprintf(buf, "func (x *%s) Reset() error {\n", st.Name)
	fmt.Fprintf(buf, "\treturn autoclean.ResetAs[%s](x", st.Name)
	for _, opt := range optionExprs(st.Marker) {
		fmt.Fprintf(buf, ", %s", opt)
	}
	buf.WriteString(")\n}\n\n")
}

func optionExprs(m Marker) []string {
	var opts []string
	if m.hasHierarchy {
		opts = append(opts, "autoclean.WithHierarchy("+flagExpr(m.Hierarchy.String(), "AllHierarchy")+")")
	}
	if m.hasVisibility {
		opts = append(opts, "autoclean.WithVisibility("+flagExpr(m.Visibility.String(), "AllVisibility")+")")
	}
	if m.hasOptions && m.Options != autoclean.None {
		opts = append(opts, "autoclean.WithResetOptions("+flagExpr(m.Options.String(), "")+")")
	}
	return opts
}

// flagExpr превращает строковое представление флагов в выражение Go
func flagExpr(s, all string) string {
	if s == "All" {
		s = all
	}
	parts := strings.Split(s, "|")
	for i, p := range parts {
		parts[i] = "autoclean." + p
	}
	return strings.Join(parts, "|")
}
