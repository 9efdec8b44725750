package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario_Valid(t *testing.T) {
	scenario, err := ParseScenario([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "minimal", scenario.Name)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, OpPostAnnotation, scenario.Steps[0].Op)
	assert.Contains(t, scenario.Payloads["note"], "oa#Annotation")
	assert.Nil(t, scenario.Steps[0].Expect)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\nsteps:\n  - op: query\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\nsteps:\n  - op: query\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "unknown field",
			yaml:    "name: n\ndescription: d\nstep:\n  - op: query\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "unknown op",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: patch\n",
			wantErr: `unknown op "patch"`,
		},
		{
			name:    "unknown payload",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: post_annotation\n    container: c\n    payload: x\n",
			wantErr: `unknown payload "x"`,
		},
		{
			name:    "page without container",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: get_page\n",
			wantErr: "container is required for get_page",
		},
		{
			name:    "delete without iri",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: delete_annotation\n",
			wantErr: "iri is required for delete_annotation",
		},
		{
			name:    "bad match type",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: query\n    filters:\n      - {property: body, value: v, match: fuzzy}\n",
			wantErr: "match must be exact or contains",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: query\nassertions:\n  - type: trace_count\n",
			wantErr: `unknown assertion type "trace_count"`,
		},
		{
			name:    "assertion without container",
			yaml:    "name: n\ndescription: d\nsteps:\n  - op: query\nassertions:\n  - type: container_total\n",
			wantErr: "container is required for container_total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", scenario.Name)
}
