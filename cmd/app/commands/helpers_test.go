package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIO(input string) (IOTuple, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return IOTuple{Reader: strings.NewReader(input), Writer: out}, out
}

func TestPrompter_Line(t *testing.T) {
	t.Run("reads lines in order", func(t *testing.T) {
		tio, out := testIO("first\r\nsecond")
		p := newPrompter(tio)

		first, err := p.line("A: ")
		require.NoError(t, err)
		second, err := p.line("B: ")
		require.NoError(t, err)

		assert.Equal(t, "first", first)
		assert.Equal(t, "second", second)
		assert.Equal(t, "A: B: ", out.String())
	})

	t.Run("eof", func(t *testing.T) {
		tio, _ := testIO("")
		_, err := newPrompter(tio).line("A: ")
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestPrompter_ConfirmedSecret(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		tio, _ := testIO("secret\nsecret\n")
		value, err := newPrompter(tio).confirmedSecret("P: ", "C: ")
		require.NoError(t, err)
		assert.Equal(t, "secret", value)
	})

	t.Run("mismatch", func(t *testing.T) {
		tio, _ := testIO("secret\nother\n")
		_, err := newPrompter(tio).confirmedSecret("P: ", "C: ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not match")
	})
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: " YES \n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			tio, out := testIO(tt.input)
			ok, err := newPrompter(tio).confirm("Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Continue? [y/N]: ", out.String())
		})
	}
}

func TestReadSource(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		data, err := readSource("-", strings.NewReader("piped"))
		require.NoError(t, err)
		assert.Equal(t, "piped", string(data))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

		data, err := readSource(path, strings.NewReader("ignored"))
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readSource(filepath.Join(t.TempDir(), "missing.json"), nil)
		assert.Error(t, err)
	})
}

func TestWriteOutput(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, writeOutput("", []byte("<html>"), out))
		assert.Equal(t, "<html>", out.String())
	})

	t.Run("file is owner only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "print.html")
		out := &bytes.Buffer{}
		require.NoError(t, writeOutput(path, []byte("<html>"), out))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		assert.Empty(t, out.String())
	})
}

func TestNewDestinationChooser(t *testing.T) {
	ctx := context.Background()

	t.Run("output flag", func(t *testing.T) {
		tio, out := testIO("")
		path, ok, err := newDestinationChooser("/tmp/out.html", newPrompter(tio))(ctx, "suggested.html")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/tmp/out.html", path)
		assert.Empty(t, out.String())
	})

	t.Run("blank answer keeps suggestion", func(t *testing.T) {
		tio, out := testIO("\n")
		path, ok, err := newDestinationChooser("", newPrompter(tio))(ctx, "suggested.html")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "suggested.html", path)
		assert.Contains(t, out.String(), "Save as [suggested.html]")
	})

	t.Run("typed path", func(t *testing.T) {
		tio, _ := testIO("  family.html \n")
		path, ok, err := newDestinationChooser("", newPrompter(tio))(ctx, "suggested.html")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "family.html", path)
	})

	t.Run("closed input declines", func(t *testing.T) {
		tio, _ := testIO("")
		_, ok, err := newDestinationChooser("", newPrompter(tio))(ctx, "suggested.html")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
