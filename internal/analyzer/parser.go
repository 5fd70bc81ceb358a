package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"docgen/internal/model"
)

// ParseFile parses a single Python source file into a Module record.
func ParseFile(filePath, projectRoot string) (*model.Module, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("file %s is not valid UTF-8", filePath)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax error in %s", filePath)
	}

	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}

	m := &model.Module{
		Path:      abs,
		Name:      ModuleName(projectRoot, abs),
		Docstring: docstringOf(root, src),
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			m.Functions = append(m.Functions, parseFunction(child, src, false))
		case "class_definition":
			m.Classes = append(m.Classes, parseClass(child, src))
		case "decorated_definition":
			def := child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
			switch def.Type() {
			case "function_definition":
				m.Functions = append(m.Functions, parseFunction(def, src, false))
			case "class_definition":
				m.Classes = append(m.Classes, parseClass(def, src))
			}
		}
	}

	return m, nil
}

func parseClass(node *sitter.Node, src []byte) model.Class {
	c := model.Class{
		Name: nodeText(node.ChildByFieldName("name"), src),
		Line: int(node.StartPoint().Row + 1),
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return c
	}
	c.Docstring = docstringOf(body, src)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			c.Methods = append(c.Methods, parseFunction(child, src, true))
		case "decorated_definition":
			if def := child.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
				c.Methods = append(c.Methods, parseFunction(def, src, true))
			}
		}
	}
	return c
}

func parseFunction(node *sitter.Node, src []byte, isMethod bool) model.Function {
	f := model.Function{
		Name:     nodeText(node.ChildByFieldName("name"), src),
		Line:     int(node.StartPoint().Row + 1),
		Returns:  nodeText(node.ChildByFieldName("return_type"), src),
		IsMethod: isMethod,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		f.Docstring = docstringOf(body, src)
	}

	params := parseParameters(node.ChildByFieldName("parameters"), src)
	// Methods drop the implicit receiver by its conventional name.
	if isMethod && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	f.Params = params
	return f
}

// parseParameters walks the parameters node in declaration order. A bare
// "*" or a *args parameter flips every later named parameter to kwonly.
func parseParameters(node *sitter.Node, src []byte) []model.Parameter {
	if node == nil {
		return nil
	}

	var params []model.Parameter
	kind := model.KindPositional

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			params = append(params, model.Parameter{
				Name: nodeText(child, src),
				Kind: kind,
			})
		case "typed_parameter":
			p := model.Parameter{
				Annotation: nodeText(child.ChildByFieldName("type"), src),
				Kind:       kind,
			}
			switch inner := firstNamedChild(child); {
			case inner == nil:
			case inner.Type() == "list_splat_pattern":
				p.Name = splatName(inner, src)
				p.Kind = model.KindVararg
				kind = model.KindKwonly
			case inner.Type() == "dictionary_splat_pattern":
				p.Name = splatName(inner, src)
				p.Kind = model.KindVarkw
			default:
				p.Name = nodeText(inner, src)
			}
			params = append(params, p)
		case "default_parameter":
			params = append(params, model.Parameter{
				Name:       nodeText(child.ChildByFieldName("name"), src),
				HasDefault: true,
				Kind:       kind,
			})
		case "typed_default_parameter":
			params = append(params, model.Parameter{
				Name:       nodeText(child.ChildByFieldName("name"), src),
				Annotation: nodeText(child.ChildByFieldName("type"), src),
				HasDefault: true,
				Kind:       kind,
			})
		case "list_splat_pattern":
			params = append(params, model.Parameter{
				Name: splatName(child, src),
				Kind: model.KindVararg,
			})
			kind = model.KindKwonly
		case "dictionary_splat_pattern":
			params = append(params, model.Parameter{
				Name: splatName(child, src),
				Kind: model.KindVarkw,
			})
		case "keyword_separator":
			kind = model.KindKwonly
		case "positional_separator":
			// "/" closes the positional-only group; the role stays positional.
		}
	}
	return params
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}

func splatName(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "identifier" {
			return nodeText(child, src)
		}
	}
	return strings.TrimLeft(nodeText(node, src), "*")
}

func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(src)
}

// docstringOf returns the docstring of a module or block node: the string
// literal that forms its first statement, with quotes stripped and
// surrounding whitespace trimmed.
func docstringOf(body *sitter.Node, src []byte) string {
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	strNode := first.NamedChild(0)
	if strNode.Type() != "string" {
		return ""
	}
	return stringContent(nodeText(strNode, src))
}

// stringContent strips an optional literal prefix (r, b, u, f) and the
// surrounding quotes from a Python string literal.
func stringContent(raw string) string {
	trimmed := strings.TrimLeft(raw, "rRbBuUfF")
	if strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''") {
		quote := trimmed[:3]
		trimmed = strings.TrimPrefix(trimmed, quote)
		trimmed = strings.TrimSuffix(trimmed, quote)
	} else if len(trimmed) >= 2 && (trimmed[0] == '"' || trimmed[0] == '\'') {
		quote := trimmed[:1]
		trimmed = strings.TrimPrefix(trimmed, quote)
		trimmed = strings.TrimSuffix(trimmed, quote)
	}
	return strings.TrimSpace(trimmed)
}
