package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goapcore/goap/internal/catalogio"
	"github.com/goapcore/goap/internal/config"
)

// ValidationError is one field-scoped validation failure or warning,
// optionally carrying a suggested fix.
type ValidationError struct {
	Field   string
	Message string
	Fix     string
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Message)
	if e.Fix != "" {
		msg += fmt.Sprintf("\n  Fix: %s", e.Fix)
	}
	return msg
}

// ValidationResult accumulates errors (which block the operation) and
// warnings (which do not).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid reports whether no errors were recorded.
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError records a blocking validation failure.
func (v *ValidationResult) AddError(field, message, fix string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message, Fix: fix})
}

// AddWarning records a non-blocking validation warning.
func (v *ValidationResult) AddWarning(field, message, fix string) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Message: message, Fix: fix})
}

// ValidateConfig validates a PlannerConfig's fields.
func ValidateConfig(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	validHeuristics := map[string]bool{
		"zero": true, "mismatch": true, "domain_aware": true, "rpg_add": true,
	}
	if !validHeuristics[cfg.Heuristic.Name] {
		result.AddError("heuristic.name",
			fmt.Sprintf("invalid heuristic %q", cfg.Heuristic.Name),
			"use one of: zero, mismatch, domain_aware, rpg_add")
	}

	if cfg.Budget.MaxExpansions < 0 {
		result.AddError("budget.max_expansions",
			"cannot be negative",
			"set budget.max_expansions to a positive number or 0 for unbounded")
	}
	if cfg.Budget.TimeBudgetMs < 0 {
		result.AddError("budget.time_budget_ms",
			"cannot be negative",
			"set budget.time_budget_ms to a positive number or 0 for unbounded")
	}
	if cfg.Budget.MaxExpansions == 0 && cfg.Budget.TimeBudgetMs == 0 {
		result.AddWarning("budget",
			"both max_expansions and time_budget_ms are unbounded",
			"an infeasible goal over an unbounded catalog can run forever; set at least one")
	}

	if cfg.Catalog.Directory == "" {
		result.AddError("catalog.directory",
			"catalog directory not specified",
			"set catalog.directory in config")
	} else if err := ensureWritableDir(cfg.Catalog.Directory); err != nil {
		result.AddError("catalog.directory", err.Error(), fmt.Sprintf("ensure %s is writable", cfg.Catalog.Directory))
	}

	if cfg.Trace.Directory == "" {
		result.AddError("trace.directory",
			"trace directory not specified",
			"set trace.directory in config")
	} else if err := ensureWritableDir(cfg.Trace.Directory); err != nil {
		result.AddError("trace.directory", err.Error(), fmt.Sprintf("ensure %s is writable", cfg.Trace.Directory))
	}

	return result
}

// ValidateCatalogFile loads a catalog document and reports the same
// structured diagnostics calculate would raise, without running a
// search.
func ValidateCatalogFile(path string, strict bool) *ValidationResult {
	result := &ValidationResult{}

	if path == "" {
		result.AddError("catalog_file", "no catalog file provided", "provide a catalog .yaml file")
		return result
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddError("catalog_file", fmt.Sprintf("file not found: %s", path), "check the file path and try again")
		} else {
			result.AddError("catalog_file", fmt.Sprintf("cannot access file: %v", err), "check file permissions")
		}
		return result
	}
	if info.IsDir() {
		result.AddError("catalog_file", fmt.Sprintf("%s is a directory", path), "provide a file, not a directory")
		return result
	}
	if info.Size() == 0 {
		result.AddError("catalog_file", "file is empty", "add action entries to the catalog")
		return result
	}

	keys, catalog, err := catalogio.LoadCatalog(path, strict)
	if err != nil {
		result.AddError("catalog_file", err.Error(), "fix the action entry named in the error above")
		return result
	}
	if len(keys) == 0 {
		result.AddWarning("catalog_file.keys", "no keys declared", "declare the state-key universe under 'keys' for UnknownKey checking")
	}

	if _, err := catalog.Validate(); err != nil {
		result.AddError("catalog_file", err.Error(), "fix the action entry named in the error above")
	}

	return result
}

func ensureWritableDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	probe := filepath.Join(path, ".goapctl-write-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("cannot write to directory: %w", err)
	}
	os.Remove(probe)
	return nil
}

// PrintValidationResult prints validation results to stdout.
func PrintValidationResult(result *ValidationResult) {
	if len(result.Errors) > 0 {
		fmt.Println("validation errors:")
		for _, err := range result.Errors {
			fmt.Printf("  - %s\n", err.Error())
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Println("warnings:")
		for _, warn := range result.Warnings {
			fmt.Printf("  - %s: %s\n", warn.Field, warn.Message)
			if warn.Fix != "" {
				fmt.Printf("    suggestion: %s\n", warn.Fix)
			}
		}
		fmt.Println()
	}

	if result.IsValid() && len(result.Warnings) == 0 {
		fmt.Println("all validations passed")
	}
}
