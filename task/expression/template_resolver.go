package expression

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/greenscreen-io/go-cobol-task/task/common"
)

const (
	delimStart = "<{"
	delimEnd   = "}>"
)

// templateResolver evaluates template expressions in task
// data with the resolved secrets as context.
type templateResolver struct {
	data map[string]any
}

func newTemplateResolver(secrets []*common.Secret) *templateResolver {
	return &templateResolver{data: common.SecretsToMap(secrets)}
}

// Resolve evaluates all template expressions in data.
// Expressions may be nested. The innermost expression is
// evaluated first and its result substituted into the
// enclosing expression before that is evaluated.
func (r *templateResolver) Resolve(data []byte) ([]byte, error) {
	s := string(data)
	for {
		start, end, ok := innermost(s)
		if !ok {
			break
		}
		out, err := r.eval(s[start+len(delimStart) : end])
		if err != nil {
			return nil, err
		}
		s = s[:start] + out + s[end+len(delimEnd):]
	}
	return []byte(s), nil
}

// innermost locates the innermost delimited expression in s.
// The first closing delimiter is matched with the closest
// opening delimiter before it.
func innermost(s string) (start, end int, ok bool) {
	end = strings.Index(s, delimEnd)
	if end < 0 {
		return 0, 0, false
	}
	start = strings.LastIndex(s[:end], delimStart)
	if start < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// eval evaluates a single expression. An expression ending
// in a pipe to a known template function applies the function
// to the raw text on its left, so the output of a nested
// expression can be piped without quoting. Field references
// and anything else are evaluated as a template with the
// secrets as context.
func (r *templateResolver) eval(expr string) (string, error) {
	expr = strings.TrimSpace(expr)

	if i := strings.LastIndex(expr, "|"); i >= 0 {
		name := strings.TrimSpace(expr[i+1:])
		arg := strings.TrimSpace(expr[:i])
		if fn, ok := templateFuncs[name]; ok && !strings.HasPrefix(arg, ".") {
			if unquoted, err := strconv.Unquote(arg); err == nil {
				arg = unquoted
			}
			return fn(arg), nil
		}
	}

	tmpl, err := template.New("expression").
		Funcs(TemplateFunctions()).
		Parse("{{" + expr + "}}")
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, r.data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResolveWithTemplateFunctions evaluates template expressions
// in data without any secret context. It is intended for
// callers that use template functions only.
func ResolveWithTemplateFunctions(data []byte) ([]byte, error) {
	return newTemplateResolver(nil).Resolve(data)
}
