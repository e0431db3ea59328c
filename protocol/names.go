package protocol

import "strings"

// SeparateDisplayNameAndHOCs splits a display name of the form
// "withRouter(Connect(App))" into the bare name "App" and the wrapper names
// ["withRouter", "Connect"], outer to inner.
//
// Only element types for which HasHOCNames is true are split, all other
// names are returned unchanged with a nil wrapper list. A name without any
// non-parenthesis segment is returned unchanged as well.
func SeparateDisplayNameAndHOCs(name string, t ElementType) (string, []string) {
	if !t.HasHOCNames() || !strings.Contains(name, "(") {
		return name, nil
	}
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '(' || r == ')'
	})
	if len(segments) == 0 {
		return name, nil
	}
	last := len(segments) - 1
	hocs := make([]string, last)
	copy(hocs, segments[:last])
	return segments[last], hocs
}
