package build

import "errors"

// Sentinel errors used to classify high-level run failures.
// They should always be wrapped with contextual information at the call site.
var (
	ErrContent = errors.New("docnav: content error")
	ErrLint    = errors.New("docnav: lint errors")
	ErrRender  = errors.New("docnav: render error")
)
