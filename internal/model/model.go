package model

// ParamKind classifies how a parameter is passed.
type ParamKind string

const (
	KindPositional ParamKind = "positional"
	KindVararg     ParamKind = "vararg" // *args
	KindKwonly     ParamKind = "kwonly"
	KindVarkw      ParamKind = "varkw" // **kwargs
)

// Parameter describes one formal parameter of a function or method.
// Kind is assigned once during analysis and never mutated afterwards.
type Parameter struct {
	Name       string    `json:"name"`
	Annotation string    `json:"annotation,omitempty"` // literal annotation text, "" when absent
	HasDefault bool      `json:"has_default"`
	Kind       ParamKind `json:"kind"`
}

// Function is the record of a single def as it looked at analysis time.
// Line is the 1-based line of the def keyword. For methods the implicit
// receiver parameter has already been stripped from Params.
type Function struct {
	Name      string      `json:"name"`
	Line      int         `json:"lineno"`
	Docstring string      `json:"docstring,omitempty"`
	Params    []Parameter `json:"parameters"`
	Returns   string      `json:"returns,omitempty"`
	IsMethod  bool        `json:"is_method"`
}

// Class holds a class declaration and its methods in declaration order.
type Class struct {
	Name      string     `json:"name"`
	Line      int        `json:"lineno"`
	Docstring string     `json:"docstring,omitempty"`
	Methods   []Function `json:"methods"`
}

// Module is one parsed source file. Name is the dotted module path relative
// to the project root; an __init__.py contributes no trailing segment.
type Module struct {
	Path      string     `json:"path"` // absolute file path
	Name      string     `json:"module"`
	Docstring string     `json:"docstring,omitempty"`
	Classes   []Class    `json:"classes"`
	Functions []Function `json:"functions"`
}

// Documented reports whether the function carried a docstring at analysis time.
func (f *Function) Documented() bool { return f.Docstring != "" }

// Documented reports whether the class carried a docstring at analysis time.
func (c *Class) Documented() bool { return c.Docstring != "" }
