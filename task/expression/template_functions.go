package expression

import (
	"encoding/base64"
	"strings"
	"text/template"
)

// templateFuncs is the set of functions available to
// template expressions. Keep this list small; heavy
// transformation belongs in the orchestrator, not here.
var templateFuncs = map[string]func(string) string{
	"getAsBase64": getAsBase64,
	"toUpper":     strings.ToUpper,
	"trimSpace":   strings.TrimSpace,
}

// TemplateFunctions returns the template function map used
// when evaluating template expressions.
func TemplateFunctions() template.FuncMap {
	funcs := make(template.FuncMap, len(templateFuncs))
	for name, fn := range templateFuncs {
		funcs[name] = fn
	}
	return funcs
}

func getAsBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
