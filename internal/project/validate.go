package project

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError reports one document validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors aggregates all failures found in one document.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}

// Validate checks a decoded document against the CUE schema and the
// data model invariants. Returns nil if the document may be handed to
// the engine.
//
// Checks, in order:
//  1. CUE schema conformance (shape, required fields, number types)
//  2. Card ids unique and non-empty
//  3. Slot exclusivity: every input holds exactly one of value/ref
func Validate(doc *Document) error {
	var errs ValidationErrors

	if cueErrs := validateSchema(doc); len(cueErrs) > 0 {
		errs = append(errs, cueErrs...)
	}

	seen := make(map[string]bool, len(doc.Cards))
	for i, cd := range doc.Cards {
		field := fmt.Sprintf("cards[%d]", i)
		if cd.ID == "" {
			errs = append(errs, ValidationError{Field: field + ".id", Message: "card id is required"})
		} else if seen[cd.ID] {
			errs = append(errs, ValidationError{Field: field + ".id", Message: "duplicate card id: " + cd.ID})
		}
		seen[cd.ID] = true

		if cd.Type == "" {
			errs = append(errs, ValidationError{Field: field + ".type", Message: "card type is required"})
		}

		for key, slot := range cd.Inputs {
			slotField := fmt.Sprintf("%s.inputs[%s]", field, key)
			switch {
			case slot.Value != nil && slot.Ref != nil:
				errs = append(errs, ValidationError{Field: slotField, Message: "slot holds both a value and a ref"})
			case slot.Value == nil && slot.Ref == nil:
				errs = append(errs, ValidationError{Field: slotField, Message: "slot holds neither a value nor a ref"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateSchema unifies the document with the embedded #Document
// schema and collects CUE validation errors.
func validateSchema(doc *Document) ValidationErrors {
	data, err := json.Marshal(doc)
	if err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("marshal for validation: %v", err)}}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("compile schema: %v", err)}}
	}

	defn := schema.LookupPath(cue.ParsePath("#Document"))
	value := ctx.CompileBytes(data) // JSON is valid CUE
	if err := value.Err(); err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("compile document: %v", err)}}
	}

	unified := defn.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			errs = append(errs, ValidationError{
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
			})
		}
		return errs
	}
	return nil
}
