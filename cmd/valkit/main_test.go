package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/valkit/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheck(t *testing.T) {
	t.Setenv("VALIDATOR_LOG_LEVEL", "error")
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", `
name: required|alpha
age: integer|between:18,120
email: required|email
`)

	t.Run("all valid", func(t *testing.T) {
		values := writeFile(t, dir, "ok.json", `{"name": "Alice", "age": 30, "email": "alice@example.com"}`)
		out, _, err := execute(t, "", "check", "--rules", rules, "--values", values)
		require.NoError(t, err)
		assert.Equal(t, "OK\n", out)
	})

	t.Run("failures", func(t *testing.T) {
		values := writeFile(t, dir, "bad.json", `{"name": "R2D2", "age": 12}`)
		out, _, err := execute(t, "", "check", "--rules", rules, "--values", values)
		require.ErrorIs(t, err, errValidationFailed)
		assert.Equal(t, strings.Join([]string{
			"age: The age must be between 18 and 120.",
			"email: The email field is required.",
			"email: The email must be a valid email address.",
			"name: The name may only contain letters.",
		}, "\n")+"\n", out)
	})

	t.Run("json output from stdin with negotiated locale", func(t *testing.T) {
		dict := t.TempDir()
		writeFile(t, dict, "de.yaml", "de:\n  required: \"%{field} ist erforderlich.\"\n")

		out, _, err := execute(t, `{"name": "", "age": 20, "email": "a@b.co"}`,
			"check", "--rules", rules, "--values", "-",
			"--dictionary", dict, "--locale", "de-CH,de;q=0.9,en;q=0.5", "--format", "json")
		require.ErrorIs(t, err, errValidationFailed)

		var rep report
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.False(t, rep.Valid)
		assert.NotEmpty(t, rep.RunID)
		assert.Equal(t, "de", rep.Locale)
		assert.Equal(t, map[string][]string{
			"name": {"name ist erforderlich.", "The name may only contain letters."},
		}, rep.Errors)
	})

	t.Run("metrics", func(t *testing.T) {
		values := writeFile(t, dir, "m.json", `{"name": "Bob", "age": 40, "email": "bob@example.com"}`)
		_, stderr, err := execute(t, "", "check", "--rules", rules, "--values", values, "--metrics")
		require.NoError(t, err)
		assert.Contains(t, stderr, `valkit_rule_evaluations_total{deferred="false",result="pass",rule="email"} 1`)
	})

	t.Run("unknown rule is a configuration error", func(t *testing.T) {
		bad := writeFile(t, dir, "bad-rules.yaml", "name: required|nope\n")
		values := writeFile(t, dir, "v.json", `{"name": "x"}`)
		_, _, err := execute(t, "", "check", "--rules", bad, "--values", values)
		require.Error(t, err)
		assert.NotErrorIs(t, err, errValidationFailed)
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := execute(t, "", "check", "--rules", rules, "--values", rules, "--format", "xml")
		assert.Error(t, err)
	})

	t.Run("missing flags", func(t *testing.T) {
		_, _, err := execute(t, "", "check")
		assert.Error(t, err)
	})
}

func TestCheck_EnvFile(t *testing.T) {
	// godotenv only fills unset variables; t.Setenv restores them afterwards.
	for _, key := range []string{"VALIDATOR_LOCALE", "VALIDATOR_DICTIONARY_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("VALIDATOR_LOG_LEVEL", "debug")
	t.Setenv("VALIDATOR_LOG_FORMAT", "json")

	dir := t.TempDir()
	dict := t.TempDir()
	writeFile(t, dict, "de.yaml", "de:\n  required: \"%{field} ist erforderlich.\"\n")
	envFile := writeFile(t, dir, "test.env", "VALIDATOR_LOCALE=de\nVALIDATOR_DICTIONARY_DIR="+dict+"\n")
	rules := writeFile(t, dir, "rules.yaml", "name: required\n")

	out, stderr, err := execute(t, `{}`, "check", "--env-file", envFile,
		"--rules", rules, "--values", "-", "--format", "json")
	require.ErrorIs(t, err, errValidationFailed)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "de", rep.Locale)
	assert.Equal(t, map[string][]string{"name": {"name ist erforderlich."}}, rep.Errors)

	require.NotEmpty(t, rep.RunID)
	assert.Contains(t, stderr, `"run_id":"`+rep.RunID+`"`)
	assert.Contains(t, stderr, `"command":"check"`)
}

func TestCheck_Redis(t *testing.T) {
	t.Setenv("VALIDATOR_LOG_LEVEL", "error")
	mr := miniredis.RunT(t)
	_, err := mr.SAdd("countries", "DE", "PL")
	require.NoError(t, err)
	t.Setenv("VALIDATOR_REDIS_URL", "redis://"+mr.Addr()+"/0")

	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", "country: exists:countries|required\n")
	values := writeFile(t, dir, "values.yaml", "country: FR\n")

	out, _, err := execute(t, "", "check", "--rules", rules, "--values", values, "--redis")
	require.ErrorIs(t, err, errValidationFailed)
	assert.Equal(t, "country: The selected country is invalid.\n", out)
}

func TestRulesCommand(t *testing.T) {
	out, _, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "required     The :field field is required.")
	assert.Contains(t, out, "uuid")
}
