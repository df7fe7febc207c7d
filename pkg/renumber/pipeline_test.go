package renumber

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
)

type recordCommand struct {
	name string
	log  *[]string
	err  error
	stop bool
}

func (c *recordCommand) Name() string { return c.name }

func (c *recordCommand) Execute(ctx context.Context, run *RunContext) error {
	*c.log = append(*c.log, c.name)
	if c.stop {
		run.Done = true
	}
	return c.err
}

func testTable(t *testing.T) *mapping.Table {
	t.Helper()
	tbl, err := mapping.New(docname.DefaultConvention(),
		mapping.Entry{Old: "sprint-01-a.md", New: "sprint-02-a.md"},
		mapping.Entry{Old: "sprint-02-b.md", New: "sprint-01-b.md"},
	)
	require.NoError(t, err)
	return tbl
}

func TestPipeline_Execute(t *testing.T) {
	t.Run("runs commands in order", func(t *testing.T) {
		var log []string
		p := &Pipeline{Name: "test", Commands: []Command{
			&recordCommand{name: "a", log: &log},
			&recordCommand{name: "b", log: &log},
		}}
		require.NoError(t, p.Execute(context.Background(), NewRunContext("/d", testTable(t))))
		assert.Equal(t, []string{"a", "b"}, log)
	})

	t.Run("stops at first error", func(t *testing.T) {
		var log []string
		boom := errors.New("boom")
		p := &Pipeline{Name: "test", Commands: []Command{
			&recordCommand{name: "a", log: &log, err: boom},
			&recordCommand{name: "b", log: &log},
		}}
		err := p.Execute(context.Background(), NewRunContext("/d", testTable(t)))
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "command a failed")
		assert.Equal(t, []string{"a"}, log)
	})

	t.Run("done stops without error", func(t *testing.T) {
		var log []string
		p := &Pipeline{Name: "test", Commands: []Command{
			&recordCommand{name: "a", log: &log, stop: true},
			&recordCommand{name: "b", log: &log},
		}}
		require.NoError(t, p.Execute(context.Background(), NewRunContext("/d", testTable(t))))
		assert.Equal(t, []string{"a"}, log)
	})
}

func TestRunContext(t *testing.T) {
	run := NewRunContext("/d", testTable(t))
	require.Len(t, run.Documents, 2)

	dc, ok := run.ByOld("sprint-02-b.md")
	require.True(t, ok)
	assert.Equal(t, "sprint-01-b.md", dc.Entry.New)

	dc2, ok := run.ByNew("sprint-01-b.md")
	require.True(t, ok)
	assert.Same(t, dc, dc2)

	_, ok = run.ByOld("sprint-09-z.md")
	assert.False(t, ok)
}

func TestDocumentContext_Advance(t *testing.T) {
	dc := &DocumentContext{}
	assert.Equal(t, StateOriginal, dc.State)

	dc.Advance(StateRenamed)
	assert.Equal(t, StateRenamed, dc.State)

	dc.Advance(StateStaged)
	assert.Equal(t, StateRenamed, dc.State, "state never moves backwards")

	dc.Advance(StateHeaderSynced)
	assert.Equal(t, "header-synced", dc.State.String())
}

func TestNewOrchestrator(t *testing.T) {
	p := &Pipeline{Name: "noop"}

	_, err := NewOrchestrator(WithPipeline(p))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filesystem is required")

	_, err = NewOrchestrator(WithFs(afero.NewMemMapFs()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline is required")

	_, err = NewOrchestrator(WithFs(afero.NewMemMapFs()), WithPipeline(p),
		WithConvention(docname.Convention{Prefix: "Bad Prefix"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid naming convention")
}

func TestOrchestrator_Run(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/file.txt", []byte("x"), 0o644))

	o, err := NewOrchestrator(WithFs(fs), WithPipeline(&Pipeline{Name: "noop"}))
	require.NoError(t, err)

	_, err = o.Run(context.Background(), "", testTable(t))
	assert.ErrorContains(t, err, "documents directory is required")

	_, err = o.Run(context.Background(), "/docs/file.txt", testTable(t))
	assert.ErrorContains(t, err, "is not a directory")

	_, err = o.Run(context.Background(), "/missing", testTable(t))
	assert.Error(t, err)

	summary, err := o.Run(context.Background(), "/docs", testTable(t))
	require.NoError(t, err)
	assert.False(t, summary.DryRun)
}
