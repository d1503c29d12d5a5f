package template

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractAgentVariables projects the template's external references onto
// agent names. With a known set of sanitized agent identifiers, a reference
// counts as an agent reference when its dotted-path head is in the set. With
// no known set every non-system head is a candidate. The result is
// ordered-unique by first appearance.
func ExtractAgentVariables(tpl string, known []string) []string {
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, ref := range ExtractVariables(tpl) {
		h := head(ref)
		if known != nil {
			if !knownSet[h] {
				continue
			}
		} else if systemHeads[h] {
			continue
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	if out == nil {
		return []string{}
	}
	return out
}

// ReplaceAgentReferences rewrites old as new wherever it appears as an agent
// reference: the exact {{old}} form, the {{old.path}} head, and dotted-path
// heads inside {% for %}, {% if %}, {% elif %}, and {% set %} tags. Longer
// identifiers merely sharing the prefix are left alone.
func ReplaceAgentReferences(tpl, oldName, newName string) string {
	if oldName == "" || oldName == newName {
		return tpl
	}
	q := regexp.QuoteMeta(oldName)

	exact := regexp.MustCompile(`\{\{(\s*)` + q + `(\s*)\}\}`)
	tpl = exact.ReplaceAllString(tpl, `{{${1}`+newName+`${2}}}`)

	dotted := regexp.MustCompile(`\{\{(\s*)` + q + `\.`)
	tpl = dotted.ReplaceAllString(tpl, `{{${1}`+newName+`.`)

	// Inside tags the name must be the head of its dotted path: not preceded
	// by a '.' (mid-path segment) or a word character (longer identifier).
	inTag := regexp.MustCompile(`(^|[^.\w])` + q + `\.`)
	var b strings.Builder
	for _, tok := range Tokenize(tpl) {
		if tok.Kind == TokenTag && renamableTag(tok.Content) {
			b.WriteString(inTag.ReplaceAllString(tok.Raw, `${1}`+newName+"."))
			continue
		}
		b.WriteString(tok.Raw)
	}
	return b.String()
}

func renamableTag(content string) bool {
	switch keyword(content) {
	case "for", "if", "elif", "set":
		return true
	}
	return false
}

// HasAgentReferences reports whether the template references the given agent
// name, either as a whole {{name}} expression, as a {{name. dotted path, or
// as a dotted-path head inside a statement tag.
func HasAgentReferences(tpl, name string) bool {
	if name == "" {
		return false
	}
	q := regexp.QuoteMeta(name)
	patterns := []string{
		`\{\{\s*` + q + `\s*\}\}`,
		`\{\{\s*` + q + `\.`,
		`\{%[^%]*[^.\w]` + q + `\.`,
	}
	for _, p := range patterns {
		if regexp.MustCompile(p).MatchString(tpl) {
			return true
		}
	}
	return false
}

// SanitizeAgentName normalizes an agent display name into the identifier
// form used as a dotted-path head: lower snake_case with a leading letter.
func SanitizeAgentName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteByte('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "agent"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = fmt.Sprintf("agent_%s", s)
	}
	return s
}
