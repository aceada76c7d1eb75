// Package form implements the multi-step signup and add-entity forms: a
// step machine with per-step validation gating forward navigation, a single
// visible error message at a time, and full re-validation on submit.
package form

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// StepValidator checks one step's fields, returning "" when valid or the
// first failing rule's message.
type StepValidator func() string

// Stepper drives sequential step navigation. Forward moves are gated by the
// current step's validator; backward moves are always allowed and never
// re-validate.
type Stepper struct {
	step       int
	validators []StepValidator
	errMsg     string
}

// NewStepper builds a stepper over the given per-step validators, starting
// on step 1.
func NewStepper(validators ...StepValidator) *Stepper {
	return &Stepper{step: 1, validators: validators}
}

// Step returns the current 1-based step.
func (s *Stepper) Step() int { return s.step }

// Steps returns the total step count.
func (s *Stepper) Steps() int { return len(s.validators) }

// Err returns the single visible error message, if any.
func (s *Stepper) Err() string { return s.errMsg }

// Next validates the current step. On success it advances and clears the
// message; on failure it stays put and shows exactly the first failing
// rule's message.
func (s *Stepper) Next() bool {
	if msg := s.validators[s.step-1](); msg != "" {
		s.errMsg = msg
		return false
	}
	s.errMsg = ""
	if s.step < len(s.validators) {
		s.step++
	}
	return true
}

// Prev moves back one step without validating.
func (s *Stepper) Prev() {
	if s.step > 1 {
		s.step--
	}
	s.errMsg = ""
}

// ValidateAll re-runs every step's validator in order and returns the first
// failure, regardless of which step is currently shown.
func (s *Stepper) ValidateAll() string {
	for _, validate := range s.validators {
		if msg := validate(); msg != "" {
			s.errMsg = msg
			return msg
		}
	}
	s.errMsg = ""
	return ""
}

// setErr surfaces a submit-time error through the same single-message slot.
func (s *Stepper) setErr(msg string) { s.errMsg = msg }

// firstMessage maps the first failing rule of a struct validation to its
// user-facing message. fieldOrder fixes which failure counts as "first";
// messages is keyed by "Field.tag" with a "Field" fallback.
func firstMessage(err error, fieldOrder []string, messages map[string]string) string {
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "please check the highlighted fields"
	}

	rank := make(map[string]int, len(fieldOrder))
	for i, f := range fieldOrder {
		rank[f] = i
	}
	sorted := make([]validator.FieldError, len(verrs))
	copy(sorted, verrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iok := rank[sorted[i].Field()]
		rj, jok := rank[sorted[j].Field()]
		if iok && jok {
			return ri < rj
		}
		return iok
	})

	first := sorted[0]
	if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[first.Field()]; ok {
		return msg
	}
	return "please check the highlighted fields"
}
