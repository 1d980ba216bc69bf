// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package scenario

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		// Report field names as they appear in scenario files.
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return structValidator
}

// ValidationError lists every problem found in a document.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidScenario, strings.Join(e.Problems, "; "))
}

// Is allows errors.Is to match ValidationError with ErrInvalidScenario.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidScenario
}

// Validate checks struct constraints, the version gate and the cross-field
// rules between steps, handlers and expectations.
func Validate(doc *Document) error {
	if doc == nil {
		return &ValidationError{Problems: []string{"document is empty"}}
	}

	var problems []string
	if err := getValidator().Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	if doc.Version != "" {
		if err := checkVersion(doc.Version); err != nil {
			return err
		}
	}

	declared := make(map[string]bool, len(doc.Handlers))
	for _, h := range doc.Handlers {
		declared[h.Name] = true
	}

	for i, step := range doc.Steps {
		problems = append(problems, checkStep(i, step, declared)...)
	}

	if doc.Expect != nil {
		names := make([]string, 0, len(doc.Expect.Calls))
		for name := range doc.Expect.Calls {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !declared[name] {
				problems = append(problems, fmt.Sprintf("expect.calls: %s %q", ErrUnknownHandler, name))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrInvalidScenario, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleVersion, version, SupportedVersions)
	}
	return nil
}

func checkStep(i int, step Step, declared map[string]bool) []string {
	var problems []string
	prefix := fmt.Sprintf("steps[%d] (%s)", i, step.Op)
	add := func(format string, args ...any) {
		problems = append(problems, prefix+": "+fmt.Sprintf(format, args...))
	}

	switch step.Op {
	case OpOn, OpOnce, OpOnAll, OpRemoveAll:
		if step.Handler == "" {
			add("handler is required")
		}
	case OpEmit:
		if step.Handler != "" {
			add("handler is not allowed")
		}
	}

	switch step.Op {
	case OpOnAll, OpRemoveAll:
		if step.Key != "" {
			add("key is not allowed")
		}
	}

	if step.Op != OpEmit && len(step.Args) > 0 {
		add("args are only allowed on emit")
	}

	if step.Handler != "" && !declared[step.Handler] {
		add("%s %q", ErrUnknownHandler, step.Handler)
	}
	return problems
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Document.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "unique":
		return fmt.Sprintf("%s must have unique %s values", field, strings.ToLower(fe.Param()))
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed '%s' validation", field, fe.Tag())
	}
}
