package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"molweight"}, args...))
	return out.String(), err
}

func TestRunArgs(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"CH4", "(NH4)2SO4"}, "CH4\t16.043\n(NH4)2SO4\t132.134\n"},
		{"places", []string{"--places", "2", "(NH4)2SO4"}, "(NH4)2SO4\t132.13\n"},
		{"sig", []string{"--sig", "2", "(NH4)2SO4"}, "(NH4)2SO4\t130\n"},
		{"fmt", []string{"--fmt", "%.1f", "C"}, "C\t12.0\n"},
		{"noise", []string{"H-O-H"}, "HOH\t18.015\n"},
		{"adjacent-counts", []string{"SO4 2"}, "SO4 2\t160.052\n"},
		{"composition", []string{"-c", "H2O"}, "H2O\t18.015\n\tH2O\n\tH\t2\t11.19%\n\tO\t1\t88.81%\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := runApp(t, "", c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestRunStdin(t *testing.T) {
	out, err := runApp(t, "H2O\n\n  NaCl \r\n")
	require.NoError(t, err)
	assert.Equal(t, "H2O\t18.015\nNaCl\t58.44\n", out)
}

func TestRunFailures(t *testing.T) {
	out, err := runApp(t, "", "CH4", "Xx", "(NH4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Equal(t, "CH4\t16.043\n", out)

	_, err = runApp(t, "", "--sig", "0", "C")
	assert.Error(t, err)

	out, err = runApp(t, "", "--sig", "2", "--places", "1", "C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--places")
	assert.Empty(t, out)
}

func TestRunStrictStdin(t *testing.T) {
	logs := memory.New()
	prev := log.Log.(*log.Logger).Handler
	log.SetHandler(logs)
	defer log.SetHandler(prev)

	out, err := runApp(t, "H2O+x\r\nCO2\n", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, "CO2\t44.009\n", out)
	require.Len(t, logs.Entries, 1)
	assert.Equal(t, "H2O+x", logs.Entries[0].Fields["formula"])
	assert.Equal(t, 4, logs.Entries[0].Fields["col"])
}

func TestRunTable(t *testing.T) {
	name := filepath.Join(t.TempDir(), "isotopes.yaml")
	require.NoError(t, os.WriteFile(name, []byte("D: 2.014\nT: 3.016\n"), 0o644))

	out, err := runApp(t, "", "--table", name, "D2O", "T2O")
	require.NoError(t, err)
	assert.Equal(t, "D2O\t20.027\nT2O\t22.031\n", out)

	out, err = runApp(t, "", "--table", name, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Oganesson")
	assert.Regexp(t, `(?m)^-\s+D\s+2\.014$`, out)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("d: 2.014\n"), 0o644))
	_, err = runApp(t, "", "--table", bad, "D2O")
	assert.Error(t, err)

	_, err = runApp(t, "", "--table", filepath.Join(t.TempDir(), "missing.yaml"), "C")
	assert.Error(t, err)
}

func TestRunList(t *testing.T) {
	out, err := runApp(t, "", "--list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 119)
	assert.Regexp(t, `^1\s+H\s+Hydrogen\s+1\.008$`, lines[1])
}
