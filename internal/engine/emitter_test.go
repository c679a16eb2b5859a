package engine_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheet2sql/internal/dialect"
	"sheet2sql/internal/engine"
	"sheet2sql/internal/schema"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layout: <root>/create_database.sql (shared) and <root>/db/images/
func newLayout(t *testing.T) (root, dbDir string) {
	t.Helper()
	root = t.TempDir()
	dbDir = filepath.Join(root, "db", "images")
	require.NoError(t, os.MkdirAll(dbDir, 0755))
	return root, dbDir
}

func sampleTable(dbDir string) *schema.Table {
	table := schema.NewTable(filepath.Join(dbDir, "images - raw.csv"))
	table.Add(&schema.Field{Name: "id", SQLType: schema.TypeInteger, IsPrimaryKey: true})
	table.Add(&schema.Field{Name: "val", SQLType: schema.TypeVarchar})
	return table
}

func TestEmit_EmptyTableWritesNothing(t *testing.T) {
	_, dbDir := newLayout(t)
	logger, _ := test.NewNullLogger()
	e := engine.NewEmitter(&dialect.PostgresDialect{}, engine.EmitterConfig{}, logger)

	table := schema.NewTable(filepath.Join(dbDir, "images - raw.csv"))
	out, err := e.Emit(table)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	_, statErr := os.Stat(e.OutputPath(table))
	assert.True(t, os.IsNotExist(statErr), "output file should not exist")
}

func TestEmit_PreambleOnceAndAppend(t *testing.T) {
	root, dbDir := newLayout(t)
	tpl := "CREATE DATABASE $DatabaseName$   \nWITH OWNER = postgres;\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, engine.TemplateFile), []byte(tpl), 0644))

	logger, _ := test.NewNullLogger()
	e := engine.NewEmitter(&dialect.PostgresDialect{}, engine.EmitterConfig{}, logger)

	table := sampleTable(dbDir)
	out, err := e.Emit(table)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dbDir, "__images.sql"), out)

	_, err = e.Emit(table)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)

	assert.Equal(t, 1, strings.Count(text, "CREATE DATABASE images\n"))
	assert.Equal(t, 2, strings.Count(text, "CREATE TABLE public.raw ("))
	assert.Contains(t, text, "  id INTEGER NOT NULL,\n")
	assert.Contains(t, text, "  val VARCHAR,\n")
	assert.Contains(t, text, "CONSTRAINT raw_pkey PRIMARY KEY(id)")
	assert.True(t, strings.HasPrefix(text, "\n--\n-- Automatic Generated File by sheet2sql\n"))
	assert.Less(t, strings.Index(text, "CREATE DATABASE"), strings.Index(text, "CREATE TABLE"))
}

func TestEmit_FolderTemplateWins(t *testing.T) {
	root, dbDir := newLayout(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, engine.TemplateFile), []byte("-- shared\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, engine.TemplateFile), []byte("-- local $DatabaseName$\n"), 0644))

	logger, _ := test.NewNullLogger()
	e := engine.NewEmitter(&dialect.PostgresDialect{}, engine.EmitterConfig{}, logger)
	assert.Equal(t, filepath.Join(dbDir, engine.TemplateFile), e.TemplatePath(filepath.Join(dbDir, "images - raw.csv")))

	out, err := e.Emit(sampleTable(dbDir))
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- local images\n")
	assert.NotContains(t, string(data), "-- shared")
}

func TestEmit_TemplateMissing(t *testing.T) {
	_, dbDir := newLayout(t)
	logger, hook := test.NewNullLogger()
	e := engine.NewEmitter(&dialect.PostgresDialect{}, engine.EmitterConfig{}, logger)

	out, err := e.Emit(sampleTable(dbDir))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Automatic Generated File")
	assert.Contains(t, string(data), "CREATE TABLE public.raw (")

	var warned bool
	for _, entry := range hook.AllEntries() {
		if strings.Contains(entry.Message, "database definition file not found") {
			warned = true
		}
	}
	assert.True(t, warned, "expected a template warning")
}

func TestEmit_OutputRoot(t *testing.T) {
	_, dbDir := newLayout(t)
	outDir := filepath.Join(t.TempDir(), "out", "sql")

	logger, _ := test.NewNullLogger()
	e := engine.NewEmitter(&dialect.PostgresDialect{}, engine.EmitterConfig{OutputRoot: outDir}, logger)

	out, err := e.Emit(sampleTable(dbDir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "__images.sql"), out)
	assert.FileExists(t, out)
}

func TestEmit_OutputOpenFailure(t *testing.T) {
	_, dbDir := newLayout(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	logger, _ := test.NewNullLogger()
	// a regular file where the output folder should be
	e := engine.NewEmitter(&dialect.PostgresDialect{}, engine.EmitterConfig{OutputRoot: blocker}, logger)

	_, err := e.Emit(sampleTable(dbDir))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrOutputOpen)
}
