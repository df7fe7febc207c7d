package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
)

func TestNew(t *testing.T) {
	conv := docname.DefaultConvention()

	t.Run("valid permutation", func(t *testing.T) {
		table, err := New(conv,
			Entry{Old: "sprint-03-dashboard-data.md", New: "sprint-04-dashboard-data.md"},
			Entry{Old: "sprint-04-payments.md", New: "sprint-03-payments.md"},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())

		newName, ok := table.Lookup("sprint-03-dashboard-data.md")
		require.True(t, ok)
		assert.Equal(t, "sprint-04-dashboard-data.md", newName)

		old, ok := table.Source("sprint-03-payments.md")
		require.True(t, ok)
		assert.Equal(t, "sprint-04-payments.md", old)

		_, ok = table.Lookup("sprint-09-missing.md")
		assert.False(t, ok)
	})

	t.Run("entries keep definition order", func(t *testing.T) {
		table, err := New(conv,
			Entry{Old: "sprint-02-b.md", New: "sprint-01-b.md"},
			Entry{Old: "sprint-01-a.md", New: "sprint-02-a.md"},
		)
		require.NoError(t, err)
		entries := table.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "sprint-02-b.md", entries[0].Old)
		assert.Equal(t, "sprint-01-a.md", entries[1].Old)

		// Mutating the returned slice must not affect the table.
		entries[0].New = "sprint-99-x.md"
		newName, _ := table.Lookup("sprint-02-b.md")
		assert.Equal(t, "sprint-01-b.md", newName)
	})

	t.Run("identity entry allowed", func(t *testing.T) {
		table, err := New(conv, Entry{Old: "sprint-01-a.md", New: "sprint-01-a.md"})
		require.NoError(t, err)
		assert.True(t, table.Entries()[0].IsIdentity())
	})

	t.Run("duplicate old name", func(t *testing.T) {
		_, err := New(conv,
			Entry{Old: "sprint-01-a.md", New: "sprint-02-a.md"},
			Entry{Old: "sprint-01-a.md", New: "sprint-03-a.md"},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "old name already mapped")
	})

	t.Run("duplicate new name", func(t *testing.T) {
		_, err := New(conv,
			Entry{Old: "sprint-01-a.md", New: "sprint-03-a.md"},
			Entry{Old: "sprint-02-a.md", New: "sprint-03-a.md"},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "new name already targeted")
	})

	t.Run("all problems reported", func(t *testing.T) {
		_, err := New(conv,
			Entry{Old: "", New: "sprint-03-a.md"},
			Entry{Old: "notes.md", New: "sprint-04-a.md"},
			Entry{Old: "sprint-05-a.md", New: docname.StagingName("sprint-06-a.md")},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 0")
		assert.Contains(t, err.Error(), "entry 1")
		assert.Contains(t, err.Error(), "entry 2")
	})
}

func TestTable_Fingerprint(t *testing.T) {
	conv := docname.DefaultConvention()
	a, err := New(conv, Entry{Old: "sprint-01-a.md", New: "sprint-02-a.md"})
	require.NoError(t, err)
	b, err := New(conv, Entry{Old: "sprint-01-a.md", New: "sprint-02-a.md"})
	require.NoError(t, err)
	c, err := New(conv, Entry{Old: "sprint-01-a.md", New: "sprint-03-a.md"})
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}

func TestLoadFile(t *testing.T) {
	conv := docname.DefaultConvention()

	t.Run("hcl", func(t *testing.T) {
		path := writeTemp(t, "mapping.hcl", `
mapping "sprint-03-dashboard-data.md" {
  to = "sprint-07-dashboard-data.md"
}

mapping "sprint-07-payments.md" {
  to = "sprint-03-payments.md"
}
`)
		table, err := LoadFile(path, conv)
		require.NoError(t, err)
		require.Equal(t, 2, table.Len())
		newName, ok := table.Lookup("sprint-07-payments.md")
		require.True(t, ok)
		assert.Equal(t, "sprint-03-payments.md", newName)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTemp(t, "mapping.yaml", `
mappings:
  - old: sprint-03-dashboard-data.md
    new: sprint-07-dashboard-data.md
`)
		table, err := LoadFile(path, conv)
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadFile("/nonexistent/mapping.hcl", conv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mapping file not found")
	})

	t.Run("empty filename", func(t *testing.T) {
		_, err := LoadFile("", conv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mapping file path is required")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTemp(t, "mapping.json", `{}`)
		_, err := LoadFile(path, conv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported mapping file extension")
	})

	t.Run("no mappings", func(t *testing.T) {
		path := writeTemp(t, "mapping.yaml", "mappings: []\n")
		_, err := LoadFile(path, conv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "defines no mappings")
	})

	t.Run("invalid hcl", func(t *testing.T) {
		path := writeTemp(t, "mapping.hcl", `mapping {`)
		_, err := LoadFile(path, conv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse mapping file")
	})
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
