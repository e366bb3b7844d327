// Package queue runs alignment scoring as a RabbitMQ worker: requests are
// consumed from a durable queue and results published to a topic exchange.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-aligner/internal/alignment"
	"github.com/jonathan/resume-aligner/internal/types"
)

// ErrMalformed marks a message that can never be processed
var ErrMalformed = errors.New("malformed alignment request")

// Request asks for one resume to be scored against a set of terms
type Request struct {
	ID         string         `json:"id"`
	ResumeText string         `json:"resume_text"`
	Terms      types.TermSets `json:"terms"`
}

// Result is published once a request has been scored
type Result struct {
	ID        string           `json:"id"`
	Alignment *types.Alignment `json:"alignment"`
	Coverage  types.Coverage   `json:"coverage"`
}

// DecodeRequest parses a message body. Bodies that are not JSON objects or
// carry no id wrap ErrMalformed.
func DecodeRequest(body []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	return &req, nil
}

// Process scores req with engine
func Process(ctx context.Context, engine *alignment.Engine, req *Request) (*Result, error) {
	a, err := engine.Compute(ctx, req.ResumeText, req.Terms)
	if err != nil {
		return nil, err
	}
	return &Result{
		ID:        req.ID,
		Alignment: a,
		Coverage:  alignment.CoverageScores(a, req.Terms.Required, req.Terms.Preferred),
	}, nil
}

// RoutingKey is the key results for id are published with
func RoutingKey(id string) string {
	return "alignment." + id
}
