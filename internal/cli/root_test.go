package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered under %q", name, parent.Name())
	return nil
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd(&App{})

	for _, name := range []string{"clock", "entry", "report", "aggregate", "import", "status"} {
		findCommand(t, root, name)
	}
}

func TestClockCmd_PunchSubcommands(t *testing.T) {
	root := NewRootCmd(&App{})
	clock := findCommand(t, root, "clock")

	for _, name := range []string{"in", "break", "resume", "out"} {
		sub := findCommand(t, clock, name)
		assert.NotNil(t, sub.Flags().Lookup("at"), "%s misses --at", name)
		assert.NotNil(t, sub.Flags().Lookup("comment"), "%s misses --comment", name)
		assert.NotNil(t, sub.Flags().Lookup("contract"), "%s misses --contract", name)
	}

	out := findCommand(t, clock, "out")
	require.NotNil(t, out.Flags().Lookup("force"))
	in := findCommand(t, clock, "in")
	assert.Nil(t, in.Flags().Lookup("force"), "only clock out may force")
}

func TestEntryRemoveCmd_RequiresReason(t *testing.T) {
	root := NewRootCmd(&App{})
	remove := findCommand(t, findCommand(t, root, "entry"), "remove")

	err := remove.ValidateRequiredFlags()
	assert.Error(t, err)
}
