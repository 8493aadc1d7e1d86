package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PrerequisiteError reports an environment requirement the provisioner cannot
// remediate itself (no supported package manager, insufficient privilege).
// It halts the run before any capability executes.
type PrerequisiteError struct {
	Requirement string
	Err         error
}

// NewPrerequisiteError constructs a PrerequisiteError.
func NewPrerequisiteError(requirement string, err error) error {
	return &PrerequisiteError{Requirement: requirement, Err: err}
}

func (e *PrerequisiteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("prerequisite not met: %s: %v", e.Requirement, e.Err)
	}
	return fmt.Sprintf("prerequisite not met: %s", e.Requirement)
}

// Unwrap exposes the underlying error.
func (e *PrerequisiteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InstallError represents a failed installation attempt: the external tool
// exited non-zero or the repository client returned an error.
type InstallError struct {
	Capability string
	Err        error
}

// NewInstallError constructs an InstallError for the given capability.
func NewInstallError(capability string, err error) error {
	return &InstallError{Capability: capability, Err: err}
}

func (e *InstallError) Error() string {
	if e == nil {
		return ""
	}
	if e.Capability != "" {
		return fmt.Sprintf("install failed for %s: %v", e.Capability, e.Err)
	}
	return fmt.Sprintf("install failed: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *InstallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// VerifyError signals that an installer reported success but the follow-up
// probe still found the capability unsatisfied. It is reported distinctly
// from InstallError so operators know the tool "succeeded" yet the machine
// is still not in the desired state.
type VerifyError struct {
	Capability string
	Detail     string
}

// NewVerifyError constructs a VerifyError.
func NewVerifyError(capability, detail string) error {
	return &VerifyError{Capability: capability, Detail: detail}
}

func (e *VerifyError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail != "" {
		return fmt.Sprintf("verification failed for %s: installer reported success but probe still unsatisfied (%s)", e.Capability, e.Detail)
	}
	return fmt.Sprintf("verification failed for %s: installer reported success but probe still unsatisfied", e.Capability)
}
