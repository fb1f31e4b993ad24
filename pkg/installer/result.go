package installer

import (
	"github.com/arthur-debert/speculate/pkg/header"
	"github.com/arthur-debert/speculate/pkg/projector"
)

// State is the terminal state of an install run
type State string

const (
	Success State = "success"
	Failure State = "failure"
)

// HeaderResult records what happened to one instruction file
type HeaderResult struct {
	File   string
	Action header.Action
}

// StepError ties an error to the step that produced it
type StepError struct {
	Step string
	Err  error
}

// Result aggregates the outcome of an install run
type Result struct {
	State State
	// FailedStep names the first step that failed
	FailedStep string
	StepErrors []StepError

	Headers []HeaderResult
	// Rules is nil when the rules step failed
	Rules    *projector.Result
	Warnings []string
}

// Linked returns the number of rule links created
func (r *Result) Linked() int {
	if r.Rules == nil {
		return 0
	}
	return r.Rules.Linked()
}

// Skipped returns the number of rule files rejected by the filter
func (r *Result) Skipped() int {
	if r.Rules == nil {
		return 0
	}
	return r.Rules.SkippedCount()
}

// Created returns the number of instruction files created
func (r *Result) Created() int { return r.countHeaders(header.Created) }

// Updated returns the number of instruction files that received the header
func (r *Result) Updated() int { return r.countHeaders(header.Updated) }

// Unchanged returns the number of instruction files already configured
func (r *Result) Unchanged() int { return r.countHeaders(header.Unchanged) }

func (r *Result) countHeaders(action header.Action) int {
	n := 0
	for _, h := range r.Headers {
		if h.Action == action {
			n++
		}
	}
	return n
}
