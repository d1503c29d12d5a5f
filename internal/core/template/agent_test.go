package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAgentVariables(t *testing.T) {
	tpl := "{{ alice.mood }} {{ cast.active }} {{ bob.reply }} {{ session.id }}"

	t.Run("with known agent set", func(t *testing.T) {
		got := ExtractAgentVariables(tpl, []string{"alice", "carol"})
		assert.Equal(t, []string{"alice"}, got)
	})

	t.Run("without known set every non-system head is a candidate", func(t *testing.T) {
		got := ExtractAgentVariables(tpl, nil)
		assert.Equal(t, []string{"alice", "bob"}, got)
	})

	t.Run("empty template", func(t *testing.T) {
		assert.Empty(t, ExtractAgentVariables("", nil))
	})

	t.Run("loop locals never become agents", func(t *testing.T) {
		got := ExtractAgentVariables("{% for npc in cast.all %}{{ npc.name }}{% endfor %}", nil)
		assert.Empty(t, got)
	})
}

func TestReplaceAgentReferences(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{
			name: "dotted and exact forms",
			tpl:  "{{alice.mood}} and {{alice}}",
			want: "{{bob.mood}} and {{bob}}",
		},
		{
			name: "internal whitespace preserved",
			tpl:  "{{ alice.mood }} / {{  alice  }}",
			want: "{{ bob.mood }} / {{  bob  }}",
		},
		{
			name: "longer identifiers untouched",
			tpl:  "{{alicex.mood}} {{malice.plan}}",
			want: "{{alicex.mood}} {{malice.plan}}",
		},
		{
			name: "inside statement tags",
			tpl:  "{% if alice.mood == 'grim' %}{% for x in alice.memories %}{{ x }}{% endfor %}{% endif %}",
			want: "{% if bob.mood == 'grim' %}{% for x in bob.memories %}{{ x }}{% endfor %}{% endif %}",
		},
		{
			name: "set statements",
			tpl:  "{% set m = alice.mood %}",
			want: "{% set m = bob.mood %}",
		},
		{
			name: "bare name in tag without dot untouched",
			tpl:  "{% if alice %}x{% endif %}",
			want: "{% if alice %}x{% endif %}",
		},
		{
			name: "mid-path segment in tag untouched",
			tpl:  "{% if turn.alice.mood == 'grim' %}x{% endif %}",
			want: "{% if turn.alice.mood == 'grim' %}x{% endif %}",
		},
		{
			name: "head rewritten but mid-path kept in one tag",
			tpl:  "{% if alice.knows and session.alice.seen %}x{% endif %}",
			want: "{% if bob.knows and session.alice.seen %}x{% endif %}",
		},
		{
			name: "plain text untouched",
			tpl:  "alice went home. alice.mood was low.",
			want: "alice went home. alice.mood was low.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceAgentReferences(tt.tpl, "alice", "bob"))
		})
	}

	t.Run("noop cases", func(t *testing.T) {
		assert.Equal(t, "{{alice}}", ReplaceAgentReferences("{{alice}}", "", "bob"))
		assert.Equal(t, "{{alice}}", ReplaceAgentReferences("{{alice}}", "alice", "alice"))
	})
}

func TestHasAgentReferences(t *testing.T) {
	tests := []struct {
		tpl  string
		name string
		want bool
	}{
		{"{{alice.mood}}", "alice", true},
		{"{{ alice }}", "alice", true},
		{"{{alicex.mood}}", "alice", false},
		{"{% if alice.mood %}x{% endif %}", "alice", true},
		{"{% for x in alice.memories %}{% endfor %}", "alice", true},
		{"{% if turn.alice.mood %}x{% endif %}", "alice", false},
		{"alice.mood outside any construct", "alice", false},
		{"{{ bob.mood }}", "alice", false},
		{"", "alice", false},
		{"{{alice.mood}}", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasAgentReferences(tt.tpl, tt.name), "tpl=%q name=%q", tt.tpl, tt.name)
	}
}

func TestSanitizeAgentName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"Game Master", "game_master"},
		{"  NPC-2 ", "npc_2"},
		{"9lives", "agent_9lives"},
		{"***", "agent"},
		{"story.judge", "story_judge"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeAgentName(tt.in), "in=%q", tt.in)
	}
}
