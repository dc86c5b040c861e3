package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mapper-planner/internal/plan"
)

const personYAML = `
types:
  - name: example.com/shop.Person
    properties:
      - name: string
      - age: int
  - name: example.com/shop.PersonDto
    properties:
      - fullName: string
      - age: string
      - nickname: string
mapper:
  name: PersonMapper
  methods:
    - name: toDto
      params: [{p: Person}]
      returns: PersonDto
      mappings:
        - {target: fullName, source: name}
    - name: fromDto
      params: [{d: PersonDto}]
      returns: Person
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))

	err := cmd.Execute()

	return out.String(), err
}

func TestPlan(t *testing.T) {
	out, err := execute(t, "plan", writeFile(t, "mapper.yaml", personYAML))
	require.NoError(t, err)

	var doc plan.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc), out)

	require.Len(t, doc.Methods, 2)
	assert.Equal(t, "toDto", doc.Methods[0].Name)
	assert.Equal(t, "bean", doc.Methods[0].Kind)
	assert.Equal(t, []plan.LinkDocument{{Method: "fromDto", Reverse: "toDto"}}, doc.Links)
	assert.Equal(t, []string{"example.com/shop", "fmt", "strconv"}, doc.Imports)
}

func TestPlan_Strict(t *testing.T) {
	out, err := execute(t, "plan", "--strict", writeFile(t, "mapper.yaml", personYAML))
	require.ErrorContains(t, err, "strict mode: planning reported 0 errors and 1 warnings")
	assert.Contains(t, out, "name: toDto", "the plan is printed before failing")
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "mapper.yaml", personYAML)

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: [toDto] nickname: [unmapped_property] unmapped property: nickname")
	assert.Contains(t, out, "info: [fromDto]: [reverse_configuration]")
	assert.Contains(t, out, "2 methods, 0 errors, 1 warnings")

	_, err = execute(t, "check", "--strict", path)
	require.ErrorIs(t, err, errCheckFailed)

	out, err = execute(t, "check", "--unmapped", "error", path)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "error: [toDto] nickname: [unmapped_property]")
}

func TestCheck_Config(t *testing.T) {
	path := writeFile(t, "mapper.yaml", personYAML)
	cfg := writeFile(t, "config.yaml", "planning:\n  unmapped_target_policy: ignore\n  parallelism: 2\n")

	out, err := execute(t, "check", "--config", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 methods, 0 errors, 0 warnings")

	out, err = execute(t, "check", "--config", cfg, "--unmapped", "warn", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 errors, 1 warnings", "flags override the configuration file")
}

func TestLinks(t *testing.T) {
	out, err := execute(t, "links", writeFile(t, "mapper.yaml", personYAML))
	require.NoError(t, err)
	assert.Equal(t, "fromDto <- toDto\n", out)

	out, err = execute(t, "links", writeFile(t, "mapper.yaml", `
types:
  - {name: example.com/shop.Person, properties: [{name: string}]}
mapper:
  name: M
  methods:
    - {name: copy, params: [{p: Person}], returns: Person}
`))
	require.NoError(t, err)
	assert.Equal(t, "No reverse links.\n", out)
}

func TestConversions(t *testing.T) {
	out, err := execute(t, "conversions")
	require.NoError(t, err)
	assert.Contains(t, out, "int -> string (text_number)\n")
	assert.NotContains(t, out, "(numeric_bool)")

	out, err = execute(t, "conversions", "--category", "numeric_bool")
	require.NoError(t, err)
	assert.Contains(t, out, "(numeric_bool)")
	assert.NotContains(t, out, "(text_number)")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"plan", filepath.Join(t.TempDir(), "missing.yaml")}, "failed to read declaration file"},
		{"invalid declaration", []string{"check", writeFile(t, "bad.yaml", "mapper: {name: M, methods: [{name: m, params: [{o: Nope}]}]}")}, "type Nope not found"},
		{"policy flag", []string{"check", "--unmapped", "loud", "x.yaml"}, `unknown unmapped target policy "loud"`},
		{"parallelism", []string{"conversions", "--parallelism", "0"}, "planning.parallelism: must be at least 1"},
		{"config file", []string{"conversions", "--config", writeFile(t, "c.yaml", "planning: {conversions: [magic]}")}, "unknown conversion category"},
		{"arguments", []string{"plan"}, "accepts 1 arg(s), received 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
