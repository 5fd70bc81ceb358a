package locator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Target addresses an entity inside the current contents of a file. It
// carries everything the span extractor and the rewriter need, so no live
// syntax tree has to survive past Locate.
type Target struct {
	Name       string
	StartLine  int // 1-based line of the def keyword
	EndLine    int // last line of the entity, 0 when unknown
	BodyStart  int // first body statement line when it sits on its own line, else 0
	BodyIndent string
	DeclIndent string
}

// Locate re-reads and re-parses filePath and returns the entity matching
// (name, line) at top level, or — when className is non-empty — the member
// of that class. An exact (name, line) hit wins; when earlier insertions
// into the same file have pushed the entity down, the first same-named
// entity at or below the requested line is accepted instead. A missing
// entity yields (nil, nil): nothing to extract, not a failure.
func Locate(filePath, name string, line int, className string, classLine int) (*Target, error) {
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
	lines := strings.Split(string(src), "\n")

	scope := root
	if className != "" {
		cls := findDefinition(root, src, "class_definition", className, classLine)
		if cls == nil {
			return nil, nil
		}
		scope = cls.ChildByFieldName("body")
		if scope == nil {
			return nil, nil
		}
	}

	fn := findDefinition(scope, src, "function_definition", name, line)
	if fn == nil {
		return nil, nil
	}
	return newTarget(fn, src, lines), nil
}

// findDefinition scans the direct children of scope for a definition of
// the given kind and name. Exact line match first; otherwise the first
// candidate at or below the requested line, since insertions only ever
// shift entities downwards.
func findDefinition(scope *sitter.Node, src []byte, kind, name string, line int) *sitter.Node {
	var drifted *sitter.Node
	for i := 0; i < int(scope.NamedChildCount()); i++ {
		def := unwrap(scope.NamedChild(i))
		if def == nil || def.Type() != kind {
			continue
		}
		if text(def.ChildByFieldName("name"), src) != name {
			continue
		}
		declLine := int(def.StartPoint().Row + 1)
		if declLine == line || line <= 0 {
			return def
		}
		if declLine > line && drifted == nil {
			drifted = def
		}
	}
	return drifted
}

// unwrap peels a decorated_definition down to the definition it wraps.
func unwrap(node *sitter.Node) *sitter.Node {
	if node != nil && node.Type() == "decorated_definition" {
		return node.ChildByFieldName("definition")
	}
	return node
}

func newTarget(fn *sitter.Node, src []byte, lines []string) *Target {
	t := &Target{
		Name:      text(fn.ChildByFieldName("name"), src),
		StartLine: int(fn.StartPoint().Row + 1),
		EndLine:   int(fn.EndPoint().Row + 1),
	}
	t.DeclIndent = leadingWhitespace(lines, t.StartLine)

	headerEnd := fn.StartPoint().Row
	if params := fn.ChildByFieldName("parameters"); params != nil {
		headerEnd = params.EndPoint().Row
	}
	if ret := fn.ChildByFieldName("return_type"); ret != nil {
		headerEnd = ret.EndPoint().Row
	}

	body := fn.ChildByFieldName("body")
	if body != nil && body.NamedChildCount() > 0 {
		first := body.NamedChild(0)
		// A body sharing the signature line (def f(): pass) leaves no line
		// to splice a docstring block in front of.
		if first.StartPoint().Row > headerEnd {
			t.BodyStart = int(first.StartPoint().Row + 1)
			t.BodyIndent = leadingWhitespace(lines, t.BodyStart)
		}
	}
	return t
}

func text(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(src)
}

func leadingWhitespace(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	s := lines[line-1]
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
