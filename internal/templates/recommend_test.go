package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IsValid(t *testing.T) {
	for _, kind := range Kinds() {
		assert.True(t, kind.IsValid(), kind)
	}
	assert.False(t, Kind("chore").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"bug", Bug},
		{"fix", Bug},
		{"bugfix", Bug},
		{"hotfix", Bug},
		{"feature", Feature},
		{"feat", Feature},
		{"enhancement", Feature},
		{"docs", Docs},
		{"doc", Docs},
		{"documentation", Docs},
		{"refactor", Refactor},
		{"refactoring", Refactor},
		{"cleanup", Refactor},
		{"test", Test},
		{"tests", Test},
		{"testing", Test},
		{"performance", Performance},
		{"perf", Performance},
		{"optimization", Performance},
		{"security", Security},
		{"vulnerability", Security},
		{"FIX", Bug},
		{"  Optimization ", Performance},
		{"chore", Feature},
		{"", Feature},
		{"   ", Feature},
		{"closest-to-bug", Feature},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.input))
		})
	}
}

func TestSynonymsCoverEveryKind(t *testing.T) {
	covered := map[Kind]bool{}
	for label, kind := range synonyms {
		require.True(t, kind.IsValid(), "synonym %q maps to unknown kind %q", label, kind)
		covered[kind] = true
	}
	for _, kind := range Kinds() {
		assert.True(t, covered[kind], "no synonym for %s", kind)
		got, ok := LookupKind(kind.String())
		assert.True(t, ok)
		assert.Equal(t, kind, got, "canonical id must map to itself")
	}
}

func TestLookupKind_Unknown(t *testing.T) {
	_, ok := LookupKind("chore")
	assert.False(t, ok)
}

func TestRecommend(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	t.Run("optimization picks performance", func(t *testing.T) {
		rec := catalog.Recommend("added caching layer", "optimization")

		assert.Equal(t, "performance.md", rec.Template.Filename)
		assert.Equal(t, "Performance", rec.Template.Type)
		assert.Contains(t, rec.Reasoning, "optimization change")
		assert.Contains(t, rec.Reasoning, "'added caching layer'")
		assert.Equal(t, rec.Template.Content, rec.TemplateContent)
		assert.Equal(t, UsageHint, rec.UsageHint)
	})

	t.Run("fix and bug agree", func(t *testing.T) {
		fix := catalog.Recommend("x", "fix")
		bug := catalog.Recommend("x", "bug")
		assert.Equal(t, bug.Template.Filename, fix.Template.Filename)
		assert.Equal(t, "bug.md", fix.Template.Filename)
	})

	t.Run("empty type falls back to feature", func(t *testing.T) {
		rec := catalog.Recommend("something", "")
		assert.Equal(t, "feature.md", rec.Template.Filename)
	})

	t.Run("unknown type falls back to feature and keeps caller label", func(t *testing.T) {
		rec := catalog.Recommend("bump deps", "Chore")
		assert.Equal(t, "feature.md", rec.Template.Filename)
		assert.Contains(t, rec.Reasoning, "a Chore change")
	})

	t.Run("fallback is stable", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			assert.Equal(t, "feature.md", catalog.Recommend("s", "mystery").Template.Filename)
		}
	})
}

func TestRecommend_ZeroCatalogNeverFails(t *testing.T) {
	rec := (&Catalog{}).Recommend("summary", "fix")
	assert.Equal(t, "feature.md", rec.Template.Filename)
	assert.Empty(t, rec.TemplateContent)
}
