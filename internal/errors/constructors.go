package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *NavError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *NavError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *NavError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// MalformedNode reports a sidebar element that is neither a document id nor a category.
func MalformedNode(location, reason string) *NavError {
	return New(CategoryConfig, SeverityFatal, "malformed sidebar node").
		WithContext("location", location).
		WithContext("reason", reason)
}

// Content and output errors

func ContentScanFailed(dir string, cause error) *NavError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content scan failed").
		WithContext("dir", dir)
}

func RenderFailed(file string, cause error) *NavError {
	return Wrap(cause, CategoryRender, SeverityFatal, "render failed").
		WithContext("file", file)
}

// Internal errors

func InternalError(message string, cause error) *NavError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
