package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Report is the canonical structured diagnostic. Every error the checker
// raises is constructed as a Report and carried as an error via
// WrapReport, so a caller can recover the structured form with AsReport
// instead of parsing the message.
type Report struct {
	Schema  string         `json:"schema"` // always "ember.error/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"` // "resolve" | "instantiate" | "type" | "check" | "load"
	Module  string         `json:"module"`
	Line    int            `json:"line,omitempty"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report so it survives errors.As unwrapping.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown checker error"
	}
	loc := ""
	if e.Rep.Line > 0 {
		loc = fmt.Sprintf(":%d", e.Rep.Line)
	}
	return fmt.Sprintf("%s [%s] (module %s%s): %s", e.Rep.Code, e.Rep.Phase, e.Rep.Module, loc, e.Rep.Message)
}

// AsReport extracts a *Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Returns nil for a nil report so
// call sites can write `return WrapReport(r)` unconditionally.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report with the "ember.error/v1" schema.
func New(code, phase, module string, line int, format string, args ...any) *Report {
	return &Report{
		Schema:  "ember.error/v1",
		Code:    code,
		Phase:   phase,
		Module:  module,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Data:    map[string]any{},
	}
}

// ToJSON renders the Report deterministically for machine consumption.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
