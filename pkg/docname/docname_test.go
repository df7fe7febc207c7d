package docname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvention_Parse(t *testing.T) {
	conv := DefaultConvention()

	t.Run("valid name", func(t *testing.T) {
		n, err := conv.Parse("sprint-03-dashboard-data.md")
		require.NoError(t, err)
		assert.Equal(t, "sprint", n.Prefix)
		assert.Equal(t, 3, n.ID)
		assert.Equal(t, "dashboard-data", n.Slug)
		assert.Equal(t, ".md", n.Extension)
		assert.Equal(t, "sprint-03-dashboard-data.md", n.String())
	})

	t.Run("id wider than padding", func(t *testing.T) {
		n, err := conv.Parse("sprint-123-wrap-up.md")
		require.NoError(t, err)
		assert.Equal(t, 123, n.ID)
		assert.Equal(t, "sprint-123-wrap-up.md", n.String())
	})

	tests := []struct {
		name     string
		filename string
	}{
		{"wrong prefix", "epic-03-dashboard.md"},
		{"wrong extension", "sprint-03-dashboard.txt"},
		{"missing slug", "sprint-03.md"},
		{"non numeric id", "sprint-ab-dashboard.md"},
		{"under padded id", "sprint-3-dashboard.md"},
		{"over padded id", "sprint-003-dashboard.md"},
		{"empty slug", "sprint-03-.md"},
		{"staging name", StagingName("sprint-03-dashboard.md")},
		{"tilde in slug", "sprint-03-dash~board.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conv.Parse(tt.filename)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotConforming)
			assert.False(t, conv.Matches(tt.filename))
		})
	}
}

func TestConvention_Format(t *testing.T) {
	conv := DefaultConvention()
	assert.Equal(t, "sprint-07-dashboard-data.md", conv.Format(7, "dashboard-data"))
	assert.Equal(t, "sprint-45-ui-polish.md", conv.Format(45, "ui-polish"))

	conv.Width = 3
	assert.Equal(t, "sprint-007-dashboard-data.md", conv.Format(7, "dashboard-data"))
}

func TestConvention_HeaderLabel(t *testing.T) {
	conv := DefaultConvention()
	assert.Equal(t, "Sprint", conv.HeaderLabel())

	conv.Label = "Iteration"
	assert.Equal(t, "Iteration", conv.HeaderLabel())
}

func TestConvention_Validate(t *testing.T) {
	require.NoError(t, DefaultConvention().Validate())

	tests := []struct {
		name string
		conv Convention
	}{
		{"empty prefix", Convention{Extension: ".md", Width: 2}},
		{"uppercase prefix", Convention{Prefix: "Sprint", Extension: ".md", Width: 2}},
		{"extension without dot", Convention{Prefix: "sprint", Extension: "md", Width: 2}},
		{"zero width", Convention{Prefix: "sprint", Extension: ".md"}},
		{"width too large", Convention{Prefix: "sprint", Extension: ".md", Width: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.conv.Validate())
		})
	}
}

func TestStagingNames(t *testing.T) {
	staged := StagingName("sprint-07-dashboard-data.md")
	assert.Equal(t, ".sprintctl~sprint-07-dashboard-data.md", staged)
	assert.True(t, IsStaging(staged))
	assert.False(t, IsStaging("sprint-07-dashboard-data.md"))

	target, ok := FromStaging(staged)
	require.True(t, ok)
	assert.Equal(t, "sprint-07-dashboard-data.md", target)

	_, ok = FromStaging("sprint-07-dashboard-data.md")
	assert.False(t, ok)
}
