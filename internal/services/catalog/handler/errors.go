package handler

import (
	"fmt"
	"strings"

	"syntra-pos/internal/database/models"
)

var (
	ErrEmptyName       = fmt.Errorf("%w: product name is required", models.ErrValidation)
	ErrNegativePrice   = fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	ErrNegativeStock   = fmt.Errorf("%w: stock must not be negative", models.ErrValidation)
	ErrEmptyFile       = fmt.Errorf("%w: csv file is empty", models.ErrValidation)
	ErrProductNotFound = fmt.Errorf("product %w", models.ErrNotFound)
)

type RowError struct {
	Line int
	Name string
	Err  error
}

func (e RowError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Name, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ImportError lists every rejected row of an import; none of the file was committed.
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		parts = append(parts, r.Error())
	}
	return fmt.Sprintf("import rejected, %d invalid row(s): %s", len(e.Rows), strings.Join(parts, "; "))
}

func (e *ImportError) Unwrap() error {
	return models.ErrValidation
}
