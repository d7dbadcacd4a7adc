package root_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmori/kessan-cli/cmd/root"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "kessan", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "accounting")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	root.Init()
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("db"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("delimiter"))
}
