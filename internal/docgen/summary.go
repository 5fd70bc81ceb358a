package docgen

import "docgen/internal/model"

// ModuleStat is a per-module row of the coverage summary.
type ModuleStat struct {
	Module    string `json:"module"`
	Path      string `json:"path"`
	Classes   int    `json:"classes"`
	Functions int    `json:"functions"`
	HasDoc    bool   `json:"has_doc"`
}

// Coverage summarizes documentation coverage across an analyzed project.
type Coverage struct {
	Modules             int          `json:"modules"`
	Classes             int          `json:"classes"`
	Functions           int          `json:"functions"`
	Methods             int          `json:"methods"`
	MissingModuleDocs   int          `json:"missing_module_docs"`
	MissingFunctionDocs int          `json:"missing_function_docs"`
	MissingMethodDocs   int          `json:"missing_method_docs"`
	TopModules          []ModuleStat `json:"top_modules"`
}

// Summarize computes coverage counters over the analyzed modules.
func Summarize(modules []*model.Module) *Coverage {
	cov := &Coverage{Modules: len(modules)}

	for _, m := range modules {
		cov.Classes += len(m.Classes)
		cov.Functions += len(m.Functions)
		if m.Docstring == "" {
			cov.MissingModuleDocs++
		}
		for i := range m.Functions {
			if !m.Functions[i].Documented() {
				cov.MissingFunctionDocs++
			}
		}
		for i := range m.Classes {
			cov.Methods += len(m.Classes[i].Methods)
			for j := range m.Classes[i].Methods {
				if !m.Classes[i].Methods[j].Documented() {
					cov.MissingMethodDocs++
				}
			}
		}
	}

	limit := len(modules)
	if limit > 10 {
		limit = 10
	}
	for _, m := range modules[:limit] {
		cov.TopModules = append(cov.TopModules, ModuleStat{
			Module:    m.Name,
			Path:      m.Path,
			Classes:   len(m.Classes),
			Functions: len(m.Functions),
			HasDoc:    m.Docstring != "",
		})
	}
	return cov
}
