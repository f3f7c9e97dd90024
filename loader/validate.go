package loader

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled library for consistency. Warnings go to
// stderr; any error fails the load.
func validate(lib *Library) error {
	ve := &ValidationError{}

	for id, def := range lib.Tables {
		var positive int
		for _, w := range def.Weights {
			if w > 0 {
				positive++
			} else if w < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"table %q has a negative weight", id))
				break
			}
		}
		if positive == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"table %q has no positive weights", id))
		}
		for i, label := range def.Labels {
			if label == "" {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"table %q entry %d has an empty label", id, i+1))
			}
		}
	}

	for id, def := range lib.Dice {
		for _, s := range def.Sides {
			if s < 1 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"dice %q has a die with %d sides", id, s))
				break
			}
		}
	}

	for id, c := range lib.Curves {
		if c.Len() < 2 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"curve %q has fewer than 2 keys; it evaluates as a constant", id))
		}
		if c.LastTime() <= c.FirstTime() && c.Len() >= 2 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"curve %q has a degenerate time domain", id))
		}
	}

	for id, def := range lib.Charsets {
		if def.Chars == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"charset %q is empty", id))
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
