package parsing

import (
	"errors"
	"fmt"
)

// ErrEmptyText is returned when there is no job description text to extract from
var ErrEmptyText = errors.New("job description is empty")

// ExtractionStage names the step of model extraction that failed
type ExtractionStage string

// Extraction stages
const (
	StageCall   ExtractionStage = "call"   // the model request itself
	StageDecode ExtractionStage = "decode" // the response was not the expected JSON
)

// ExtractionError reports a failed model extraction. LLMExtractor logs it
// and falls back to the heuristic when a fallback is set.
type ExtractionError struct {
	Stage ExtractionStage
	Model string
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("job entity extraction %s failed (%s): %v", e.Stage, e.Model, e.Cause)
	}
	return fmt.Sprintf("job entity extraction %s failed: %v", e.Stage, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
