package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestModelsCmd(t *testing.T) {
	out, _, err := execute(t, "", "models", "--model", "vitals")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, out, "registration")
	assert.Contains(t, out, "vitals *")
	assert.Contains(t, out, "PatientVitals")
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		out, _, err := execute(t, "", "validate", "testdata/patient.json", "--lang", "en")
		require.NoError(t, err)
		assert.Equal(t, "PatientRegistration is valid\n", out)
	})

	t.Run("reports every error", func(t *testing.T) {
		out, errOut, err := execute(t, "", "validate", "testdata/invalid.json", "--lang", "en")
		require.ErrorIs(t, err, errValidationFailed)
		assert.Empty(t, out)
		assert.Equal(t, `3 validation errors for PatientRegistration
  age: must be a valid integer
  email: must be a valid email address
  contact_info: field is required
`, errOut)
	})

	t.Run("translated messages", func(t *testing.T) {
		_, errOut, err := execute(t, "", "validate", "testdata/invalid.json", "--lang", "es_ES.UTF-8")
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, errOut, "3 errores de validación en PatientRegistration")
		assert.Contains(t, errOut, "  email: debe ser una dirección de correo válida")
		assert.Contains(t, errOut, "  contact_info: el campo es obligatorio")
	})

	t.Run("extra translations override built-in messages", func(t *testing.T) {
		_, errOut, err := execute(t, "", "validate", "testdata/invalid.json", "--lang", "en", "--locales", "testdata/locales")
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, errOut, "  contact_info: cannot be left blank")
		assert.Contains(t, errOut, "  email: must be a valid email address")
	})

	t.Run("record rule", func(t *testing.T) {
		_, errOut, err := execute(t, "", "validate", "testdata/senior.yaml", "--model", "eligibility", "--lang", "en")
		require.ErrorIs(t, err, errValidationFailed)
		assert.Equal(t, `1 validation error for EligibilityPatient
  patients aged 60 and above must have an emergency number
`, errOut)
	})

	t.Run("nested yaml from stdin", func(t *testing.T) {
		stdin := "name: Ali\nage: 25\ngender: male\naddress:\n  city: Karachi\n  state: Sindh\n  zip: abc\n"
		_, errOut, err := execute(t, stdin, "validate", "-", "--model", "resident", "--lang", "en")
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, errOut, "  address.zip: must be a valid integer")
	})

	t.Run("json from stdin", func(t *testing.T) {
		out, _, err := execute(t, `{"city": "Karachi", "state": "Sindh", "zip": 75850}`, "validate", "-", "-m", "address", "--lang", "en")
		require.NoError(t, err)
		assert.Equal(t, "Address is valid\n", out)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, _, err := execute(t, "", "validate", "testdata/broken.json")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errValidationFailed)
		assert.Contains(t, err.Error(), "testdata/broken.json")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "validate", "testdata/nope.json")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errValidationFailed)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, _, err := execute(t, "", "validate", "testdata/patient.json", "--model", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model")
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := execute(t, "", "validate", "testdata/patient.json", "--log-level", "loud")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("logs outcome as json", func(t *testing.T) {
		_, errOut, err := execute(t, "", "validate", "testdata/patient.json", "--log-level", "info", "--log-format", "json")
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(errOut)), &entry))
		assert.Equal(t, "payload is valid", entry["msg"])
		assert.Equal(t, "testdata/patient.json", entry["source"])
		assert.Equal(t, "PatientRegistration", entry["model"])
	})
}

func TestDumpCmd(t *testing.T) {
	t.Run("json with computed field", func(t *testing.T) {
		out, _, err := execute(t, "", "dump", "testdata/vitals.json", "--model", "vitals", "--exclude-nil")
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"name": "Ali",
			"age": 60,
			"height": 1.72,
			"weight": 55,
			"email": "sam@gmail.com",
			"contact_info": {"phone": "22334455", "emergency": "22222"},
			"bmi": 18.59
		}`, out)
		assert.True(t, strings.HasPrefix(out, "{\n  \"name\": \"Ali\""))
	})

	t.Run("include", func(t *testing.T) {
		out, _, err := execute(t, "", "dump", "testdata/resident.yaml", "-m", "resident", "--include", "name,age", "--indent", "0")
		require.NoError(t, err)
		assert.Equal(t, "{\"name\":\"Ali\",\"age\":25}\n", out)
	})

	t.Run("nested exclude as yaml", func(t *testing.T) {
		out, _, err := execute(t, "", "dump", "testdata/resident.yaml", "-m", "resident", "-e", "name", "-e", "address.state", "-o", "yaml")
		require.NoError(t, err)
		assert.Equal(t, "age: 25\ngender: male\naddress:\n  city: Karachi\n  zip: 75850\n", out)

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
		assert.NotContains(t, decoded, "name")
	})

	t.Run("include and exclude conflict", func(t *testing.T) {
		_, _, err := execute(t, "", "dump", "testdata/resident.yaml", "-m", "resident", "-i", "name", "-e", "age")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "include")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := execute(t, "", "dump", "testdata/resident.yaml", "-m", "resident", "-i", "address.country")
		require.Error(t, err)
	})

	t.Run("invalid output", func(t *testing.T) {
		_, _, err := execute(t, "", "dump", "testdata/resident.yaml", "-m", "resident", "-o", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output format")
	})

	t.Run("invalid payload", func(t *testing.T) {
		out, errOut, err := execute(t, "", "dump", "testdata/invalid.json", "--lang", "en")
		require.ErrorIs(t, err, errValidationFailed)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "3 validation errors")
	})
}

func TestSchemaCmd(t *testing.T) {
	out, _, err := execute(t, "", "schema", "-m", "resident", "--check")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Resident", doc["title"])
	assert.Equal(t, "object", doc["type"])
	assert.Contains(t, doc["$defs"], "Address")
	assert.Equal(t, []any{"name", "age", "gender", "address"}, doc["required"])
}

func TestEnvFile(t *testing.T) {
	t.Cleanup(func() {
		_ = os.Unsetenv("SCHEMAKIT_MODEL")
		_ = os.Unsetenv("SCHEMAKIT_LOG_LEVEL")
		config.ResetCache()
	})
	out, _, err := execute(t, "", "models", "--env-file", "testdata/app.env")
	require.NoError(t, err)
	assert.Contains(t, out, "address *")
}
