package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alpkeskin/gotoon"
)

// writeStructured prints v as JSON or Toon when one of the flags is set and
// reports whether it did.
func writeStructured(w io.Writer, v any, asJSON, asToon bool) (bool, error) {
	switch {
	case asJSON:
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return true, nil
	case asToon:
		output, err := gotoon.Encode(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(w, output)
		return true, nil
	}
	return false, nil
}
