package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want []string
	}{
		{
			name: "simple expression",
			tpl:  "{{ user.name }}",
			want: []string{"user.name"},
		},
		{
			name: "loop variable is excluded",
			tpl:  "{% for npc in cast.inactive %}{{ npc.name }}{% endfor %}",
			want: []string{"cast.inactive"},
		},
		{
			name: "set target is excluded but rhs is extracted",
			tpl:  "{% set total = score | default(0) %}{{ total }}",
			want: []string{"score"},
		},
		{
			name: "key value loop binds both names",
			tpl:  "{% for k, v in session.vars %}{{ k }}: {{ v.label }}{% endfor %}",
			want: []string{"session.vars"},
		},
		{
			name: "loop variable rebinds after endfor",
			tpl:  "{% for npc in cast.all %}{{ npc.name }}{% endfor %}{{ npc.mood }}",
			want: []string{"cast.all", "npc.mood"},
		},
		{
			name: "conditional references",
			tpl:  "{% if turn.count > 3 and not flags.done %}x{% elif flags.retry %}y{% endif %}",
			want: []string{"turn.count", "flags.done", "flags.retry"},
		},
		{
			name: "condition keywords are excluded case-insensitively",
			tpl:  "{% if alice.mood is None or TRUE %}x{% endif %}",
			want: []string{"alice.mood"},
		},
		{
			name: "history expressions are skipped",
			tpl:  "{{ history.last }}{{ turn.history }}{{ user.name }}",
			want: []string{"user.name"},
		},
		{
			name: "pipe filters are stripped",
			tpl:  "{{ cast.active | join(', ') }}",
			want: []string{"cast.active"},
		},
		{
			name: "function-like keywords are excluded",
			tpl:  "{% for i in range(10) %}{{ i }}{% endfor %}{{ dict }}",
			want: []string{},
		},
		{
			name: "string literals are not variables",
			tpl:  `{% if state.mode == "combat ready" %}x{% endif %}`,
			want: []string{"state.mode"},
		},
		{
			name: "duplicates collapse in first-appearance order",
			tpl:  "{{ alice.mood }} {{ bob.mood }} {{ alice.mood }}",
			want: []string{"alice.mood", "bob.mood"},
		},
		{
			name: "malformed constructs are skipped",
			tpl:  "{{ unterminated and {% for broken %}{{ ok.ref }}",
			want: []string{"ok.ref"},
		},
		{
			name: "empty template",
			tpl:  "",
			want: []string{},
		},
		{
			name: "plain text only",
			tpl:  "once upon a time { not a tag }",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVariables(tt.tpl))
		})
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize("hello {{ user.name }}, {% if x %}hi{% endif %}")

	var kinds []TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokenText, TokenExpr, TokenText, TokenTag, TokenText, TokenTag}, kinds)
	assert.Equal(t, "user.name", toks[1].Content)
	assert.Equal(t, "if x", toks[3].Content)
	assert.Equal(t, "{% if x %}", toks[3].Raw)
}

func TestTokenize_UnterminatedConstruct(t *testing.T) {
	toks := Tokenize("before {{ user.name")
	// The dangling open swallows nothing, the remainder is plain text.
	for _, tok := range toks {
		assert.Equal(t, TokenText, tok.Kind)
	}
}
