package chrome

import (
	"embed"
	"fmt"
)

//go:embed scripts/*.js
var scriptFS embed.FS

// Script names. Page scripts run in the page's global scope; element scripts
// run with this bound to the element.
const (
	scriptUpsertStyle      = "upsert_style.js"
	scriptRemoveStyle      = "remove_style.js"
	scriptComputedFontSize = "computed_font_size.js"
	scriptSetFontSize      = "set_font_size.js"
	scriptSetAttribute     = "set_attribute.js"
	scriptRemoveAttribute  = "remove_attribute.js"

	scriptApplyFontSizeDelta = "apply_font_size_delta.js"
	scriptResetFontSizeDelta = "reset_font_size_delta.js"
)

var scripts = mustLoadScripts(
	scriptUpsertStyle,
	scriptRemoveStyle,
	scriptComputedFontSize,
	scriptSetFontSize,
	scriptSetAttribute,
	scriptRemoveAttribute,
	scriptApplyFontSizeDelta,
	scriptResetFontSizeDelta,
)

func mustLoadScripts(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		src, err := scriptFS.ReadFile("scripts/" + name)
		if err != nil {
			panic(fmt.Sprintf("chrome: missing embedded script %s: %v", name, err))
		}
		out[name] = string(src)
	}
	return out
}

func script(name string) string {
	return scripts[name]
}
