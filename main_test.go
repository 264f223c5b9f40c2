package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/icbindgen/naming"
)

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		report(&stderr, err)
	}

	return stdout.String(), stderr.String(), err
}

func TestModes(t *testing.T) {
	for _, mode := range []string{"ic", "lib"} {
		t.Run(mode, func(t *testing.T) {
			stdout, stderr, err := execute(mode)
			require.NoError(t, err)
			assert.Empty(t, stderr)
			assert.True(t, strings.HasPrefix(stdout, "// Code generated by icbindgen. DO NOT EDIT.\n"))
		})
	}
}

func TestLibOutput(t *testing.T) {
	stdout, _, err := execute("lib")
	require.NoError(t, err)

	assert.Contains(t, stdout, "pub mod ic;\n")
	assert.Contains(t, stdout, "pub mod p4 {\n")
	assert.Contains(t, stdout, "pub mod bit {\n")
	assert.Contains(t, stdout, "pub fn pack32(input: &[u32], output: &mut [u8]) -> usize {")
	assert.Contains(t, stdout, "pub fn d1unpack16(input: &[u8], output_len: usize, output: &mut [u16]) -> usize {")
	assert.True(t, strings.HasSuffix(stdout, "#[cfg(test)]\nmod test;\n"))
}

func TestBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no mode", nil},
		{"unknown mode", []string{"rs"}},
		{"two modes", []string{"ic", "lib"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(tt.args...)
			require.Error(t, err)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage:")
			assert.Contains(t, stderr, "icbindgen <ic|lib>")
		})
	}
}

func TestUnmatched(t *testing.T) {
	for _, mode := range []string{"ic", "lib"} {
		t.Run(mode, func(t *testing.T) {
			stdout, stderr, err := execute(mode, "--headers", filepath.Join("testdata", "unmatched"))
			require.Error(t, err)

			var ue *naming.UnmatchedError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, []string{"p4nxenc32"}, ue.Names)

			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "p4nxenc32 not identified\n")
		})
	}
}

func TestMalformedHeader(t *testing.T) {
	stdout, stderr, err := execute("ic", "--headers", filepath.Join("testdata", "bad"))
	require.Error(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, filepath.Join("testdata", "bad", "broken.h")+":3")
}

func TestAxesFile(t *testing.T) {
	headers := filepath.Join("testdata", "headers")

	_, _, err := execute("ic", "--headers", headers)
	var ue *naming.UnmatchedError
	require.ErrorAs(t, err, &ue, "the default axes do not cover the scanned headers")

	stdout, stderr, err := execute("ic", "--headers", headers, "--axes", filepath.Join("testdata", "axes", "full.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "    // vsimple.h\n")
	assert.Contains(t, stderr, "level=WARN", "key parameters are flagged")

	_, _, err = execute("ic", "--headers", headers, "--axes", filepath.Join("testdata", "axes", "full.yaml"), "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need review")
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ic.rs")

	stdout, stderr, err := execute("ic", "-o", path, "--lib", "turbopfor")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "msg=generated")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `#[link(name = "turbopfor", kind = "static")]`)
}

func TestVerbose(t *testing.T) {
	_, stderr, err := execute("ic", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "functions=132")
	assert.Contains(t, stderr, "tuples=360")
}

func TestPrintAxesSchema(t *testing.T) {
	stdout, _, err := execute("--print-axes-schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Contains(t, doc, "properties")

	_, _, err = execute("--print-axes-schema", "ic")
	require.Error(t, err)
}
