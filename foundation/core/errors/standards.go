// File: standards.go
// Title: Error Standards for Numeric Modules
// Description: Module identifiers and the default code selection used when an
//              error is built without an explicit code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-10-18 v0.2.0: Numeric module identifiers, codes from the core error package

package errors

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleKernel    = "kernel"
	ModulePrecision = "precision"
	ModuleCoerce    = "coerce"
	ModuleDispatch  = "dispatch"
	ModuleConfig    = "config"
	ModuleMathx     = "mathx"
	ModuleCalc      = "calc"
)

// StandardError creates a standardized error with module context
func StandardError(module, operation, message string) *mdwerror.Error {
	return mdwerror.New(message).
		WithCode(getModuleErrorCode(module, operation)).
		WithDetails(map[string]interface{}{
			"module":    module,
			"operation": operation,
		})
}

// ModuleError creates an error specific to a module operation
func ModuleError(module, operation string, cause error, details map[string]interface{}) *mdwerror.Error {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["module"] = module
	details["operation"] = operation

	msg := fmt.Sprintf("%s.%s failed", module, operation)
	if cause != nil {
		err := mdwerror.Wrap(cause, msg).WithDetails(details)
		if mdwerror.GetCode(cause) == mdwerror.CodeUnknown {
			err.WithCode(getModuleErrorCode(module, operation))
		}
		return err
	}

	return mdwerror.New(msg).
		WithCode(getModuleErrorCode(module, operation)).
		WithDetails(details)
}

func getModuleErrorCode(module, operation string) mdwerror.Code {
	switch module {
	case ModuleConfig:
		return mdwerror.CodeConfigError
	case ModulePrecision:
		if strings.HasPrefix(operation, "set") {
			return mdwerror.CodeInvalidContext
		}
		return mdwerror.CodeInvalidOperation
	case ModuleDispatch, ModuleCoerce:
		switch {
		case strings.Contains(operation, "div") || strings.Contains(operation, "mod"):
			return mdwerror.CodeZeroDivision
		case strings.Contains(operation, "promote") || strings.Contains(operation, "classify"):
			return mdwerror.CodeNotSupported
		}
		return mdwerror.CodeInvalidOperation
	case ModuleMathx, ModuleCalc:
		if strings.Contains(operation, "parse") {
			return mdwerror.CodeInvalidFormat
		}
		return mdwerror.CodeInvalidInput
	default:
		return mdwerror.CodeInternal
	}
}
