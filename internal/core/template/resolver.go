package template

import (
	"regexp"
	"strings"
)

// Reserved dotted-path heads that never name an agent.
var systemHeads = map[string]bool{
	"turn":    true,
	"cast":    true,
	"session": true,
	"flow":    true,
	"card":    true,
}

// Function-like keywords excluded from {{ }} expression extraction.
var exprKeywords = map[string]bool{
	"range": true,
	"dict":  true,
	"list":  true,
	"tuple": true,
	"set":   true,
}

// Literal keywords excluded from {% if %} condition extraction,
// matched case-insensitively.
var condKeywords = map[string]bool{
	"true": true, "false": true, "none": true, "null": true,
	"and": true, "or": true, "not": true, "in": true, "is": true,
}

var (
	dottedPathRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`)
	forTagRe     = regexp.MustCompile(`^for\s+([A-Za-z_]\w*)(?:\s*,\s*([A-Za-z_]\w*))?\s+in\s+(.+)$`)
	setTagRe     = regexp.MustCompile(`^set\s+([A-Za-z_]\w*)\s*=\s*(.+)$`)
	quotedRe     = regexp.MustCompile(`"[^"]*"|'[^']*'`)
)

// extractor walks the token stream once in document order, accumulating
// external references while tracking loop and set bindings. For-loop
// bindings are scoped to their block; set bindings, matching the macro
// language as shipped, stay bound to the end of the template.
type extractor struct {
	locals map[string]int
	frames [][]string // one frame per open {% for %}
	seen   map[string]bool
	refs   []string
}

func newExtractor() *extractor {
	return &extractor{
		locals: make(map[string]int),
		seen:   make(map[string]bool),
	}
}

// ExtractVariables returns the ordered-unique external variable references of
// a template, dotted paths preserved. Loop variables, set targets, and
// reserved keywords are excluded.
func ExtractVariables(tpl string) []string {
	ex := newExtractor()
	for _, tok := range Tokenize(tpl) {
		switch tok.Kind {
		case TokenExpr:
			ex.expression(tok.Content)
		case TokenTag:
			ex.tag(tok.Content)
		}
	}
	if ex.refs == nil {
		return []string{}
	}
	return ex.refs
}

func (ex *extractor) tag(content string) {
	switch keyword(content) {
	case "for":
		ex.forTag(content)
	case "set":
		ex.setTag(content)
	case "if", "elif":
		ex.condition(content)
	case "endfor":
		ex.popFrame()
	}
}

func keyword(content string) string {
	if i := strings.IndexAny(content, " \t"); i >= 0 {
		return content[:i]
	}
	return content
}

// forTag handles `{% for x[, y] in expr %}`: x and y become loop-local for
// the block, the iterated collection is itself a variable usage.
func (ex *extractor) forTag(content string) {
	m := forTagRe.FindStringSubmatch(content)
	if m == nil {
		return
	}
	ex.collect(stripFilters(m[3]), exprKeywords)

	frame := []string{m[1]}
	ex.bind(m[1])
	if m[2] != "" {
		frame = append(frame, m[2])
		ex.bind(m[2])
	}
	ex.frames = append(ex.frames, frame)
}

// setTag handles `{% set x = expr %}`: the right-hand side is extracted
// (trailing pipe filters stripped) before x shadows further references.
func (ex *extractor) setTag(content string) {
	m := setTagRe.FindStringSubmatch(content)
	if m == nil {
		return
	}
	rhs := stripFilters(m[2])
	ex.collect(rhs, exprKeywords)
	ex.bind(m[1])
}

// condition handles `{% if expr %}` and `{% elif expr %}`.
func (ex *extractor) condition(content string) {
	_, cond, found := strings.Cut(content, " ")
	if !found {
		return
	}
	ex.collectCond(cond)
}

// expression handles `{{ expr }}`. Expressions touching the reserved history
// namespace are internal and skipped wholesale.
func (ex *extractor) expression(content string) {
	if strings.Contains(content, "history") {
		return
	}
	ex.collect(stripFilters(content), exprKeywords)
}

// collect extracts every dotted-path identifier of expr that is not
// loop-local, not in the keyword set, and not a call target.
func (ex *extractor) collect(expr string, keywords map[string]bool) {
	ex.walk(expr, func(path string) bool {
		return !keywords[path] && !keywords[head(path)]
	})
}

// collectCond is collect with case-insensitive literal keywords.
func (ex *extractor) collectCond(cond string) {
	ex.walk(cond, func(path string) bool {
		return !condKeywords[strings.ToLower(path)]
	})
}

func (ex *extractor) walk(expr string, keep func(string) bool) {
	expr = quotedRe.ReplaceAllString(expr, "")
	for _, loc := range dottedPathRe.FindAllStringIndex(expr, -1) {
		path := expr[loc[0]:loc[1]]
		// Identifier immediately followed by '(' is a call, not a variable.
		if loc[1] < len(expr) && expr[loc[1]] == '(' {
			continue
		}
		if ex.locals[head(path)] > 0 {
			continue
		}
		if !keep(path) {
			continue
		}
		ex.add(path)
	}
}

func (ex *extractor) add(path string) {
	if ex.seen[path] {
		return
	}
	ex.seen[path] = true
	ex.refs = append(ex.refs, path)
}

func (ex *extractor) bind(name string) {
	ex.locals[name]++
}

func (ex *extractor) popFrame() {
	if len(ex.frames) == 0 {
		return
	}
	frame := ex.frames[len(ex.frames)-1]
	ex.frames = ex.frames[:len(ex.frames)-1]
	for _, name := range frame {
		if ex.locals[name] > 0 {
			ex.locals[name]--
		}
	}
}

// stripFilters drops everything from the first top-level pipe onward.
func stripFilters(expr string) string {
	if i := strings.IndexByte(expr, '|'); i >= 0 {
		expr = expr[:i]
	}
	return strings.TrimSpace(expr)
}

// head returns the first segment of a dotted path.
func head(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}
