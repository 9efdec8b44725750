package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wapgraph/internal/service"
	"github.com/roach88/wapgraph/internal/testutil"
	"github.com/roach88/wapgraph/internal/waperr"
)

const root = "http://localhost:8080/wap/"

const notesText = `_:a <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/oa#Annotation> .
_:a <http://www.w3.org/ns/oa#hasTarget> <http://example.org/map1> .
_:b <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/oa#Annotation> .
_:b <http://www.w3.org/ns/oa#hasTarget> <http://example.org/map2> .
`

const mapsText = `_:c <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/ldp#BasicContainer> .
_:c <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/activitystreams#OrderedCollection> .
_:c <http://www.w3.org/2000/01/rdf-schema#label> "maps" .
`

type response[T any] struct {
	Status string    `json:"status"`
	Data   T         `json:"data"`
	Error  *CLIError `json:"error"`
}

// workspace is a temporary database plus deterministic identities that
// persist across command runs.
type workspace struct {
	dir string
	db  string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	serviceOptions = []service.Option{
		service.WithClock(testutil.NewStepClock(testutil.Epoch, time.Second)),
		service.WithIdentityGenerator(testutil.NewSequenceGenerator("a")),
	}
	t.Cleanup(func() { serviceOptions = nil })
	dir := t.TempDir()
	return &workspace{dir: dir, db: filepath.Join(dir, "wap.db")}
}

func (w *workspace) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(w.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (w *workspace) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, w.db, args...)
}

// execute runs the root command. A non-empty db is passed as --db.
func execute(t *testing.T, db string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if db != "" {
		args = append([]string{"--db", db}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decode[T any](t *testing.T, out string) response[T] {
	t.Helper()
	var resp response[T]
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestInit(t *testing.T) {
	w := newWorkspace(t)

	out, _, err := w.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "created root container "+root)

	out, _, err = w.run(t, "--format", "json", "init")
	require.NoError(t, err)
	resp := decode[InitResult](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Data.Created)
	assert.Equal(t, w.db, resp.Data.Database)
}

func TestAnnotationLifecycle(t *testing.T) {
	w := newWorkspace(t)
	notes := w.file(t, "notes.nq", notesText)

	out, _, err := w.run(t, "--format", "json", "annotation", "post", root, notes)
	require.NoError(t, err)
	posted := decode[PostResult](t, out)
	require.Len(t, posted.Data.Annotations, 2)
	assert.Equal(t, root+"a1", posted.Data.Annotations[0].IRI)
	assert.Equal(t, root+"a2", posted.Data.Annotations[1].IRI)

	// root order within one payload is not fixed; find the map1 annotation
	first, other := posted.Data.Annotations[0], posted.Data.Annotations[1]
	if !strings.Contains(first.Body, "map1") {
		first, other = other, first
	}

	out, _, err = w.run(t, "annotation", "get", first.IRI)
	require.NoError(t, err)
	assert.Contains(t, out, "<"+first.IRI+">")
	assert.Contains(t, out, "<http://example.org/map1>")

	out, _, err = w.run(t, "page", root, "0", "--iris")
	require.NoError(t, err)
	assert.Contains(t, out, "<"+root+"a1>")
	assert.Contains(t, out, "<"+root+"a2>")

	out, _, err = w.run(t, "query", "--target", "http://example.org/map1")
	require.NoError(t, err)
	assert.Contains(t, out, "<"+first.IRI+">")
	assert.NotContains(t, out, "<"+other.IRI+">")

	out, _, err = w.run(t, "annotation", "delete", first.IRI, "--etag", `"stale"`)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error ["+string(waperr.CodeETagMismatch)+"]")

	_, _, err = w.run(t, "annotation", "delete", first.IRI, "--etag", first.ETag)
	require.NoError(t, err)

	out, _, err = w.run(t, "--format", "json", "annotation", "get", first.IRI)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode[any](t, out)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, string(waperr.CodeNotExistent), resp.Error.Code)
	assert.Equal(t, first.IRI, resp.Error.Identity)
}

func TestAnnotationPost_FromStdin(t *testing.T) {
	w := newWorkspace(t)

	cmd := NewRootCommand()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(notesText))
	cmd.SetArgs([]string{"--db", w.db, "annotation", "post", root, "-", "--input-format", "nquads"})
	require.NoError(t, cmd.Execute())

	assert.True(t, strings.HasPrefix(stdout.String(), root+"a1 \""), stdout.String())
}

func TestAnnotationPost_Errors(t *testing.T) {
	w := newWorkspace(t)
	notes := w.file(t, "notes.nq", notesText)

	out, _, err := w.run(t, "annotation", "post", root+"missing/", notes)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeNotExistent))

	out, _, err = w.run(t, "annotation", "post", root, notes, "--input-format", "turtle")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeFormat))

	out, _, err = w.run(t, "annotation", "post", root, filepath.Join(w.dir, "absent.nq"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeCommand)
}

func TestContainerCreateAndGet(t *testing.T) {
	w := newWorkspace(t)
	maps := w.file(t, "maps.nq", mapsText)

	out, _, err := w.run(t, "--format", "json", "container", "create", root, maps, "--slug", "maps")
	require.NoError(t, err)
	created := decode[Document](t, out)
	assert.Equal(t, root+"maps/", created.Data.IRI)
	assert.NotEmpty(t, created.Data.ETag)

	out, _, err = w.run(t, "container", "get", root)
	require.NoError(t, err)
	assert.Contains(t, out, "<"+root+"?iris=0> <http://www.w3.org/ns/ldp#contains> <"+root+"maps/>")

	out, _, err = w.run(t, "container", "get", root, "--minimal", "--iris")
	require.NoError(t, err)
	assert.NotContains(t, out, "ldp#contains")
	assert.Contains(t, out, "<"+root+"?iris=1>")

	out, _, err = w.run(t, "container", "create", root, maps, "--slug", "maps")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeInvalidRequest))
}

func TestPage_Errors(t *testing.T) {
	w := newWorkspace(t)

	_, _, err := w.run(t, "page", root, "first")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, _, err := w.run(t, "page", root, "1")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeNotExistent))

	out, _, err = w.run(t, "page", root, "0")
	require.NoError(t, err)
	assert.Contains(t, out, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#nil>")
}

func TestQuery_ContractViolations(t *testing.T) {
	w := newWorkspace(t)

	out, _, err := w.run(t, "query")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeNoFilterProvided))

	out, _, err = w.run(t, "query", "--body", "river", "--body-contains", "riv")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeConflictingMatchType))

	out, _, err = w.run(t, "query", "--creator", "nobody")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(waperr.CodeInvalidRequest))
}

func TestQuery_Explain(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "query", "--target-contains", "map", "--explain")
	require.NoError(t, err)

	resp := decode[Explanation](t, out)
	assert.Contains(t, resp.Data.SPARQL, "SELECT DISTINCT ?g")
	assert.Contains(t, resp.Data.SQL, "EXISTS")
	assert.Contains(t, resp.Data.Params, "map")
	assert.Equal(t, `target contains "map"`, resp.Data.Filters)
}

func TestFormats(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "formats")
	require.NoError(t, err)

	resp := decode[[]map[string]any](t, out)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "jsonld", resp.Data[0]["Name"])

	out, _, err = execute(t, "", "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "application/n-quads")
}

func TestConfigFile(t *testing.T) {
	w := newWorkspace(t)
	cfg := w.file(t, "wapgraph.cue", `pageSize: 1
baseIRI: "http://example.org/notes/"
backend: "graph"
`)
	notes := w.file(t, "notes.nq", notesText)

	_, _, err := w.run(t, "--config", cfg, "annotation", "post", "http://example.org/notes/", notes)
	require.NoError(t, err)

	out, _, err := w.run(t, "--config", cfg, "page", "http://example.org/notes/", "1", "--iris")
	require.NoError(t, err)
	assert.Contains(t, out, "<http://example.org/notes/a2>")
	assert.NotContains(t, out, "<http://example.org/notes/a1>")
}

func TestConfigFile_Invalid(t *testing.T) {
	w := newWorkspace(t)
	cfg := w.file(t, "bad.cue", "pageSize: 0\n")

	out, _, err := w.run(t, "--config", cfg, "init")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "pageSize")
}

func TestMetricsFlag(t *testing.T) {
	w := newWorkspace(t)

	_, stderr, err := w.run(t, "--metrics", "init")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wapgraph_service_operations_total")
	assert.Contains(t, stderr, `operation="init_root"`)
}
