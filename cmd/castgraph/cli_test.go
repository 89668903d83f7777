package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/castgraph/cmd/castgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"load", "extract", "reset", "stats"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_LoadFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"--store", "neo4j", "--uri", "bolt://localhost:7687",
		"load", "dump.xml", "-c", "4", "--rate", "50", "--timeout", "5s",
		"-C", "Category:A", "-C", "Category:B", "--keep", "--dedupe",
	})
	require.NoError(t, err)

	assert.Equal(t, "neo4j", cli.Store)
	assert.Equal(t, "bolt://localhost:7687", cli.URI)
	assert.Equal(t, "dump.xml", cli.Load.Dump)
	assert.Equal(t, 4, cli.Load.Concurrency)
	assert.InDelta(t, 50.0, cli.Load.Rate, 0.001)
	assert.Equal(t, "5s", cli.Load.Timeout.String())
	assert.Equal(t, []string{"Category:A", "Category:B"}, cli.Load.Category)
	assert.True(t, cli.Load.Keep)
	assert.True(t, cli.Load.Dedupe)
}

func TestCLI_LoadDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"load", "dump.xml"})
	require.NoError(t, err)

	assert.Equal(t, 1, cli.Load.Concurrency)
	assert.Equal(t, "30s", cli.Load.Timeout.String())
	assert.False(t, cli.Load.Keep)
}
