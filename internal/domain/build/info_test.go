package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithModuleFallbackKeepsReleaseVersion(t *testing.T) {
	info := Info{Version: "1.4.0", Commit: "abc123"}
	assert.Equal(t, info, info.WithModuleFallback())
}

func TestWithModuleFallbackLeavesOtherFields(t *testing.T) {
	info := Info{Version: "dev", Commit: "abc123"}.WithModuleFallback()
	assert.Equal(t, "abc123", info.Commit)
	assert.NotEmpty(t, info.Version)
}
