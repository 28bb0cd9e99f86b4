package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd scene  stonehenge ")
	assert.True(t, ok)
	assert.Equal(t, []string{"scene", "stonehenge"}, args)

	args, ok = Parse("cmd")
	assert.True(t, ok)
	assert.Empty(t, args)

	_, ok = Parse("hello there")
	assert.False(t, ok)
}

func TestExecuteWithFlags(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("grid")
	on := fs.Bool("on", false, "show grid")
	var got []bool
	r.Register("grid", "toggle the grid", fs, func(args []string) (string, error) {
		got = append(got, *on)
		return "", nil
	})

	_, err := r.Execute([]string{"grid", "--on"})
	require.NoError(t, err)
	_, err = r.Execute([]string{"grid"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, got, "flags reset between runs")

	_, err = r.Execute([]string{"grid", "--bogus"})
	assert.Error(t, err)
}

func TestExecutePositional(t *testing.T) {
	r := NewRegistry()
	r.Register("scene", "switch scene", nil, func(args []string) (string, error) {
		if len(args) != 1 {
			return "", errors.New("usage: cmd scene <name>")
		}
		return "loading " + args[0], nil
	})

	out, err := r.Execute([]string{"scene", "eiffel"})
	require.NoError(t, err)
	assert.Equal(t, "loading eiffel", out)

	_, err = r.Execute([]string{"scene"})
	assert.EqualError(t, err, "usage: cmd scene <name>")
}

func TestExecuteUnknownAndEmpty(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute([]string{"fly"})
	assert.ErrorIs(t, err, ErrUnknown)
	_, err = r.Execute(nil)
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	r := NewRegistry()
	r.Register("scenes", "list scenes", nil, func([]string) (string, error) { return "", nil })
	assert.Equal(t, []string{"help", "scenes"}, r.Names())

	out, err := r.Execute([]string{"help"})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"cmd help - list commands", "cmd scenes - list scenes"}, lines)
}
