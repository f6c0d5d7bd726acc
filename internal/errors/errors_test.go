package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NavError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestNavError_WithContext(t *testing.T) {
	err := MalformedNode("qaSidebar[0]", "expected string or mapping")

	assert.Equal(t, "qaSidebar[0]", err.Context["location"])
	assert.Equal(t, "expected string or mapping", err.Context["reason"])
}

func TestIsCategory_Wrapped(t *testing.T) {
	base := ConfigNotFound("docnav.yaml")
	wrapped := fmt.Errorf("load: %w", base)

	assert.True(t, IsCategory(wrapped, CategoryConfig))
	assert.False(t, IsCategory(wrapped, CategoryRender))
	assert.False(t, IsCategory(stdErrors.New("plain"), CategoryConfig))
	assert.Equal(t, CategoryInternal, GetCategory(stdErrors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := RenderFailed("sidebars.js", cause)

	assert.ErrorIs(t, err, cause)
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 7, a.ExitCodeFor(ConfigNotFound("x")))
	assert.Equal(t, 2, a.ExitCodeFor(ValidationFailed("site.title", "required")))
	assert.Equal(t, 11, a.ExitCodeFor(ContentScanFailed("content", stdErrors.New("boom"))))
	assert.Equal(t, 10, a.ExitCodeFor(InternalError("oops", nil)))
	assert.Equal(t, 1, a.ExitCodeFor(stdErrors.New("plain")))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, "configuration file not found (path=docnav.yaml)", a.FormatError(ConfigNotFound("docnav.yaml")))
	assert.Equal(t, "render: render failed (file=site.json)", a.FormatError(RenderFailed("site.json", stdErrors.New("x"))))
	assert.Equal(t, "Error: plain", a.FormatError(stdErrors.New("plain")))

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Equal(t, "config (fatal): configuration file not found", verbose.FormatError(ConfigNotFound("docnav.yaml")))
}
