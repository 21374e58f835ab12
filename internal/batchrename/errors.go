package batchrename

import (
	"fmt"

	"ripconsole/internal/services"
)

// Batch-level validation errors. All of them match services.ErrValidation.
var (
	ErrEmptySelection = fmt.Errorf("%w: no jobs selected", services.ErrValidation)
	ErrMissingName    = fmt.Errorf("%w: no series name or custom name provided", services.ErrValidation)
	ErrInvalidName    = fmt.Errorf("%w: name has no filename-safe characters", services.ErrValidation)
)
