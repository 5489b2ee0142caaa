package persist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // Where to write progress lines (defaults to os.Stdout)
}

// Execute validates every operation, then runs them in order. If one fails, the
// operations that already ran are undone in reverse order.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	if opts.DryRun {
		for _, op := range ops {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
		}
		return nil
	}

	for i, op := range ops {
		if err := op.Execute(ctx); err != nil {
			return errors.Join(fmt.Errorf("execution failed: %w", err), rollback(ops[:i]))
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}

func rollback(done []Operation) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].Undo(); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", done[i].Description(), err))
		}
	}
	return errors.Join(errs...)
}
