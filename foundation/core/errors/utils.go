// File: utils.go
// Title: Shared Error Handling Utilities
// Description: Provides the fluent error builder and the constructors every
//              numeric module uses for its failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of shared error utilities
// - 2025-07-26 v0.1.1: Enhanced OutOfRange function with "validation failed:" prefix
// - 2026-10-18 v0.2.0: Numeric constructors (NotSupported, ZeroDivision, Domain,
//                      InvalidContext, ReadOnly, Trap); removed reflection helpers

package errors

import (
	"fmt"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
)

// ErrorBuilder provides a fluent interface for building standardized errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	details   map[string]interface{}
	severity  mdwerror.Severity
	code      mdwerror.Code
	sevSet    bool
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:   module,
		details:  make(map[string]interface{}),
		severity: mdwerror.SeverityMedium,
	}
}

// Operation sets the operation name for the error
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause of the error
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Detail adds a detail key-value pair to the error
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Details sets multiple details at once
func (eb *ErrorBuilder) Details(details map[string]interface{}) *ErrorBuilder {
	for k, v := range details {
		eb.details[k] = v
	}
	return eb
}

// Severity sets the error severity
func (eb *ErrorBuilder) Severity(severity mdwerror.Severity) *ErrorBuilder {
	eb.severity = severity
	eb.sevSet = true
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code mdwerror.Code) *ErrorBuilder {
	eb.code = code
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() *mdwerror.Error {
	if eb.code == "" {
		eb.code = getModuleErrorCode(eb.module, eb.operation)
	}

	if eb.message == "" {
		if eb.operation != "" {
			eb.message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
		} else {
			eb.message = fmt.Sprintf("%s operation failed", eb.module)
		}
	}

	eb.details["module"] = eb.module
	if eb.operation != "" {
		eb.details["operation"] = eb.operation
	}

	var err *mdwerror.Error
	if eb.cause != nil {
		err = mdwerror.Wrap(eb.cause, eb.message)
	} else {
		err = mdwerror.New(eb.message)
	}

	severity := eb.severity
	if !eb.sevSet {
		severity = mdwerror.GetSeverityFromCode(eb.code)
	}

	return err.
		WithCode(eb.code).
		WithOperation(eb.operation).
		WithDetails(eb.details).
		WithSeverity(severity)
}

// =============================================================================
// STANDARD ERROR CREATION FUNCTIONS FOR THE NUMERIC MODULES
// =============================================================================

// NotSupported reports an operation that has no meaning for the given operand
// kinds, for example a floor division involving a complex value.
func NotSupported(module, operation string, kinds ...string) *mdwerror.Error {
	b := NewErrorBuilder(module).
		Operation(operation).
		Code(mdwerror.CodeNotSupported)
	switch len(kinds) {
	case 0:
		b.Messagef("unsupported operand for %s", operation)
	case 1:
		b.Messagef("unsupported operand type for %s: %s", operation, kinds[0]).Detail("kind", kinds[0])
	default:
		b.Messagef("unsupported operand types for %s: %s and %s", operation, kinds[0], kinds[1]).
			Detail("left", kinds[0]).
			Detail("right", kinds[1])
	}
	return b.Build()
}

// ZeroDivision reports an integer or rational division by zero
func ZeroDivision(module, operation string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("%s: division or modulo by zero", operation).
		Code(mdwerror.CodeZeroDivision).
		Build()
}

// Domain reports a value outside the domain of an operation
func Domain(module, operation, reason string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("%s: %s", operation, reason).
		Code(mdwerror.CodeDomain).
		Detail("reason", reason).
		Build()
}

// InvalidContext reports a context field that failed validation
func InvalidContext(field string, value interface{}, expected string) *mdwerror.Error {
	return NewErrorBuilder(ModulePrecision).
		Operation("validate").
		Messagef("invalid value for %s: %v (expected %s)", field, value, expected).
		Code(mdwerror.CodeInvalidContext).
		Detail("field", field).
		Detail("value", value).
		Detail("expected", expected).
		Build()
}

// ReadOnly reports an attempted mutation of a read-only context
func ReadOnly(field string) *mdwerror.Error {
	return NewErrorBuilder(ModulePrecision).
		Operation("set_"+field).
		Messagef("context is read-only: cannot set %s", field).
		Code(mdwerror.CodeReadOnlyContext).
		Detail("field", field).
		Build()
}

// Trap reports a trapped floating-point condition raised by an operation
func Trap(code mdwerror.Code, condition, operation string) *mdwerror.Error {
	return NewErrorBuilder(ModulePrecision).
		Operation(operation).
		Messagef("%s: trapped %s", operation, condition).
		Code(code).
		Detail("condition", condition).
		Build()
}

// InvalidInput creates a standardized invalid input error
func InvalidInput(module, operation string, input interface{}, expected string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("invalid input for %s.%s", module, operation)).
		Code(mdwerror.CodeInvalidInput).
		Detail("input", input).
		Detail("expected", expected).
		Build()
}

// InvalidFormat creates a standardized format error
func InvalidFormat(module string, input interface{}, expectedFormat string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation("parse").
		Message(fmt.Sprintf("invalid format in %s", module)).
		Code(mdwerror.CodeInvalidFormat).
		Detail("input", input).
		Detail("expected_format", expectedFormat).
		Build()
}

// Utility functions for error analysis

// ExtractDetails extracts all details from a structured error
func ExtractDetails(err error) map[string]interface{} {
	if mdwErr, ok := err.(*mdwerror.Error); ok {
		return mdwErr.Details()
	}
	return nil
}

// ExtractModule extracts the module name from an error
func ExtractModule(err error) string {
	if module, ok := ExtractDetails(err)["module"].(string); ok {
		return module
	}
	return ""
}

// ExtractOperation extracts the operation name from an error
func ExtractOperation(err error) string {
	if operation, ok := ExtractDetails(err)["operation"].(string); ok {
		return operation
	}
	return ""
}

// IsModuleOperation checks if error is from specific module and operation
func IsModuleOperation(err error, module, operation string) bool {
	return ExtractModule(err) == module && ExtractOperation(err) == operation
}
