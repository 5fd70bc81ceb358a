package docgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

// Result is one per-entity outcome of a run, in processing order.
type Result struct {
	Module    string `json:"module"`
	Path      string `json:"path"`
	Class     string `json:"class,omitempty"`
	Function  string `json:"function"`
	Line      int    `json:"lineno"`
	Signature string `json:"signature"`
	Docstring string `json:"generated_docstring"`
}

// Summary aggregates the run counters. Scanned always equals
// Generated + Skipped + Errors at run completion.
type Summary struct {
	Scanned   int `json:"scanned"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Report is the full record of one generation run.
type Report struct {
	TargetDir  string   `json:"target_dir"`
	StartedAt  string   `json:"started_at"`
	FinishedAt string   `json:"finished_at"`
	Summary    Summary  `json:"summary"`
	Results    []Result `json:"results"`
	LogPath    string   `json:"log_path,omitempty"`
	DryRun     bool     `json:"dry_run,omitempty"`
}

// SaveReport writes the report as JSON, validating it against the report
// schema when one is found next to the output path or under docs/.
func SaveReport(path string, r *Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}

	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if schemaPath := resolveReportSchemaPath(path); schemaPath != "" {
		schema, err := loadCompiledSchema(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to compile report schema: %w", err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("failed to normalize report for schema validation: %w", err)
		}
		if err := schema.Validate(v); err != nil {
			return fmt.Errorf("report schema validation failed: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func resolveReportSchemaPath(reportPath string) string {
	candidates := []string{
		filepath.Join(filepath.Dir(reportPath), "report.schema.json"),
		filepath.Join("docs", "report.schema.json"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func loadCompiledSchema(schemaPath string) (*jsonschema.Schema, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	if cached, ok := schemaCache[abs]; ok {
		schemaCacheMu.Unlock()
		return cached, nil
	}
	schemaCacheMu.Unlock()

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile("file://" + filepath.ToSlash(abs))
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	schemaCache[abs] = compiled
	schemaCacheMu.Unlock()
	return compiled, nil
}
