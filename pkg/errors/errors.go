package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeInvalidReq      = "INVALID_REQUEST"
	ErrCodeAIService       = "AI_SERVICE_ERROR"
	ErrCodeAnalysis        = "ANALYSIS_FAILED"
	ErrCodeStructure       = "STRUCTURE_DESIGN_FAILED"
	ErrCodeVisual          = "VISUAL_DESIGN_FAILED"
	ErrCodePPTBuild        = "PPT_BUILD_FAILED"
	ErrCodeExtraction      = "EXTRACTION_FAILED"
	ErrCodeInvalidFileType = "INVALID_FILE_TYPE"
	ErrCodeFileTooLarge    = "FILE_TOO_LARGE"
	ErrCodeStorage         = "STORAGE_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeNotFound        = "NOT_FOUND"
)

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is reports whether any AppError in err's chain carries code.
func Is(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code returns the code of the first AppError in err's chain, or
// ErrCodeInternal.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// UserMessage is the text safe to show across the API boundary: the
// AppError message without its cause chain.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
