// Command validate checks minepad server configuration files before
// deployment. It checks:
//   - JSON structure and field types
//   - Port ranges and the interface/socket port distinction
//   - Hostname presence and tick rate sanity
//   - That the static directory exists when given as a relative path
//
// Usage: validate [file ...]; with no arguments it checks config.json.
package main

import (
	"fmt"
	"os"

	"github.com/incognitojam/minepad/pad/config"
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateFile loads and validates one configuration file.
func validateFile(path string) ValidationResult {
	result := ValidationResult{File: path, Valid: true}

	cfg, err := config.Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("static_dir %q not found (checked relative to the working directory)", cfg.StaticDir))
		} else if !info.IsDir() {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("static_dir %q is not a directory", cfg.StaticDir))
		}
	}

	return result
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{config.DefaultPath}
	}

	failed := 0
	for _, path := range paths {
		result := validateFile(path)
		if result.Valid {
			fmt.Printf("OK   %s\n", result.File)
		} else {
			fmt.Printf("FAIL %s\n", result.File)
			failed++
		}
		for _, msg := range result.Errors {
			fmt.Printf("     %s\n", msg)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d files failed validation\n", failed, len(paths))
		os.Exit(1)
	}
}
