package domain

import (
	"fmt"
)

// ErrorCode represents the type of domain error
type ErrorCode string

const (
	// ErrCodeUnresolvableName indicates that the zone database rejected a zone name
	ErrCodeUnresolvableName ErrorCode = "UNRESOLVABLE_NAME"

	// ErrCodeUnknownAbbreviation indicates that an abbreviation is absent from the registry snapshot
	ErrCodeUnknownAbbreviation ErrorCode = "UNKNOWN_ABBREVIATION"

	// ErrCodeMissingMandatoryField indicates that an archive record lacks a required key
	ErrCodeMissingMandatoryField ErrorCode = "MISSING_MANDATORY_FIELD"

	// ErrCodeInvalidInput indicates that the input provided is invalid
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeRepository indicates a repository operation error
	ErrCodeRepository ErrorCode = "REPOSITORY_ERROR"

	// ErrCodeTimezone indicates a host timezone detection error
	ErrCodeTimezone ErrorCode = "TIMEZONE_ERROR"

	// ErrCodeArchiveFormat indicates bytes that are not a readable archive
	ErrCodeArchiveFormat ErrorCode = "ARCHIVE_FORMAT_ERROR"

	// ErrCodeCSVExport indicates a CSV export-related error
	ErrCodeCSVExport ErrorCode = "CSV_EXPORT_ERROR"

	// ErrCodeFileOperation indicates a file operation error
	ErrCodeFileOperation ErrorCode = "FILE_OPERATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error
func (e *DomainError) WithDetails(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// NewDomainErrorWithCause creates a new domain error with an underlying cause
func NewDomainErrorWithCause(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsErrorCode checks if an error, or any error it wraps, has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	for err != nil {
		if domainErr, ok := err.(*DomainError); ok {
			return domainErr.Code
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = unwrapper.Unwrap()
	}
	return ""
}

// Zone construction errors

// ErrUnresolvableName creates an error for a zone name the database cannot resolve
func ErrUnresolvableName(name string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeUnresolvableName, fmt.Sprintf("unresolvable time zone name: %q", name), err).
		WithDetails("name", name)
}

// ErrUnknownAbbreviation creates an error for an abbreviation missing from the registry
func ErrUnknownAbbreviation(abbreviation string) *DomainError {
	return NewDomainError(ErrCodeUnknownAbbreviation, fmt.Sprintf("unknown time zone abbreviation: %q", abbreviation)).
		WithDetails("abbreviation", abbreviation)
}

// ErrInvalidInput creates an invalid input error
func ErrInvalidInput(field string, reason string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithDetails("field", field).
		WithDetails("reason", reason)
}

// Archive errors

// ErrMissingMandatoryField creates an error for an archive record without a required key
func ErrMissingMandatoryField(field string) *DomainError {
	return NewDomainError(ErrCodeMissingMandatoryField, fmt.Sprintf("archive record is missing mandatory field %q", field)).
		WithDetails("field", field)
}

// ErrArchiveFormat creates an error for unreadable archive bytes
func ErrArchiveFormat(format string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeArchiveFormat, fmt.Sprintf("malformed %s archive", format), err).
		WithDetails("format", format)
}

// ErrRepository creates a repository error
func ErrRepository(operation string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeRepository, fmt.Sprintf("repository error in %s", operation), err).
		WithDetails("operation", operation)
}

// Timezone detection errors

// ErrTimezoneDetection creates a timezone detection error
func ErrTimezoneDetection(fallbackLocation string) *DomainError {
	return NewDomainError(ErrCodeTimezone, "failed to detect system timezone, using fallback").
		WithDetails("fallback", fallbackLocation)
}

// ErrTimezoneDetectionWithCause creates a timezone detection error with cause
func ErrTimezoneDetectionWithCause(source string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeTimezone, fmt.Sprintf("timezone detection via %s failed", source), err).
		WithDetails("source", source)
}

// CSV export errors

// ErrCSVExportWithCause creates a CSV export error with cause
func ErrCSVExportWithCause(operation string, reason string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeCSVExport, fmt.Sprintf("CSV export error in %s: %s", operation, reason), err).
		WithDetails("operation", operation).
		WithDetails("reason", reason)
}

// File operation errors

// ErrFileOperation creates a file operation error
func ErrFileOperation(operation string, path string, reason string) *DomainError {
	return NewDomainError(ErrCodeFileOperation, fmt.Sprintf("file operation error in %s: %s", operation, reason)).
		WithDetails("operation", operation).
		WithDetails("path", path).
		WithDetails("reason", reason)
}

// ErrFileOperationWithCause creates a file operation error with cause
func ErrFileOperationWithCause(operation string, path string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeFileOperation, fmt.Sprintf("file operation error in %s", operation), err).
		WithDetails("operation", operation).
		WithDetails("path", path)
}

// ErrPathTraversal creates a path traversal error
func ErrPathTraversal(path string) *DomainError {
	return NewDomainError(ErrCodeFileOperation, "path contains directory traversal").
		WithDetails("path", path).
		WithDetails("securityViolation", "directory_traversal")
}

// ErrSystemDirectory creates a system directory access error
func ErrSystemDirectory(path string) *DomainError {
	return NewDomainError(ErrCodeFileOperation, "cannot write to system directory").
		WithDetails("path", path).
		WithDetails("securityViolation", "system_directory")
}
