package indicator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/signalgrid/internal/ctxlog"
)

// Validate checks that every registered definition is internally
// consistent: it declares inputs and outputs, has a Compute function, and
// its default parameters satisfy its own rules.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Names() {
		def := r.defs[name]

		if def.Compute == nil {
			errs = append(errs, fmt.Sprintf("indicator '%s': no compute function", name))
		}
		if len(def.Inputs) == 0 {
			errs = append(errs, fmt.Sprintf("indicator '%s': declares no inputs", name))
		}
		if len(def.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("indicator '%s': declares no outputs", name))
		}

		seen := make(map[string]struct{})
		for _, port := range append(append([]string{}, def.Inputs...), def.Outputs...) {
			if _, dup := seen[port]; dup {
				errs = append(errs, fmt.Sprintf("indicator '%s': port '%s' declared twice", name, port))
			}
			seen[port] = struct{}{}
		}

		if _, err := def.Resolve(nil); err != nil {
			errs = append(errs, fmt.Sprintf("defaults rejected: %v", err))
		}

		logger.Debug("Indicator definition checked.", slog.String("indicator", name))
	}

	if len(errs) > 0 {
		return fmt.Errorf("indicator registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
