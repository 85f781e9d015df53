package lint

import (
	"encoding/json"
	"fmt"
	"io"

	"cssnest/common"
)

// Formatter writes diagnostics in requested report format.
type Formatter struct {
	format common.OutputFmt
}

func NewFormatter(format common.OutputFmt) (*Formatter, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("unable to create formatter: %w", common.ErrInvalidOutputFmt)
	}
	return &Formatter{format: format}, nil
}

// Write outputs all diagnostics. Text format produces nothing for empty list,
// json always produces an array.
func (f *Formatter) Write(w io.Writer, diags []Diagnostic) error {
	switch f.format {
	case common.OutputFmtJson:
		if diags == nil {
			diags = []Diagnostic{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(diags); err != nil {
			return fmt.Errorf("unable to encode diagnostics: %w", err)
		}
	default:
		for _, d := range diags {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n", d.Source, d.Line, d.Column, d.Severity, d.Message, d.Rule); err != nil {
				return fmt.Errorf("unable to write diagnostics: %w", err)
			}
		}
	}
	return nil
}
