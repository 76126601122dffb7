package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_plainWhenNotTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Info("Generating with %s...", "mistral-nemo")
	p.Error("failed")
	assert.Equal(t, "Generating with mistral-nemo...\nfailed\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_Candidates(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Candidates("Option", []string{"only"})
	assert.Equal(t, "only\n", buf.String())

	buf.Reset()
	p.Candidates("Option", []string{"A", "B"})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Option 1:\nA\n"))
	assert.Contains(t, out, "Option 2:\nB\n")
}

func TestConsole_ReadLine(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("  first \nlast-without-newline"), NewPrinter(&out))

	got, err := c.ReadLine("Choice:")
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, "Choice: ", out.String())

	got, err = c.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "last-without-newline", got)

	_, err = c.ReadLine("")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_Confirm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"yep\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		c := NewConsole(strings.NewReader(tt.input), NewPrinter(io.Discard))
		got, err := c.Confirm("Commit with this message?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	c := NewConsole(strings.NewReader(""), NewPrinter(io.Discard))
	_, err := c.Confirm("Stage everything?")
	assert.ErrorIs(t, err, io.EOF)
}

func TestSpinner_disabledOffTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	got := Wrap(&buf, "Generating", func() int { return 42 })
	assert.Equal(t, 42, got)
	assert.Empty(t, buf.String())

	s := NewSpinner(&buf, "unused")
	s.Stop() // never started
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0 B", Size(-1))
	assert.Equal(t, "12 kB", Size(12000))
}

func TestIsTerminal_nonFile(t *testing.T) {
	t.Parallel()
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(strings.NewReader("")))
}
