package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rileyhilliard/ptop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateCompletion(t *testing.T, shell string) string {
	t.Helper()
	cmd := newRootCmd(config.NewViper())
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"completion", shell})

	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestCompletionBashGeneration(t *testing.T) {
	output := generateCompletion(t, "bash")

	assert.Contains(t, output, "# bash completion for ptop")
	assert.Contains(t, output, "__ptop_debug")
	assert.Contains(t, output, "__start_ptop")
}

func TestCompletionZshGeneration(t *testing.T) {
	output := generateCompletion(t, "zsh")

	assert.Contains(t, output, "#compdef ptop")
	assert.Contains(t, output, "_ptop()")
}

func TestCompletionFishGeneration(t *testing.T) {
	output := generateCompletion(t, "fish")

	assert.Contains(t, output, "fish completion for ptop")
	assert.Contains(t, output, "complete -c ptop")
}

func TestCompletionPowershellGeneration(t *testing.T) {
	output := generateCompletion(t, "powershell")

	assert.Contains(t, strings.ToLower(output), "powershell completion")
	assert.Contains(t, output, "Register-ArgumentCompleter")
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	cmd := newRootCmd(config.NewViper())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"completion", "tcsh"})

	assert.Error(t, cmd.Execute())
}

func TestDefaultCompletionCommandDisabled(t *testing.T) {
	cmd := newRootCmd(config.NewViper())

	count := 0
	for _, c := range cmd.Commands() {
		if c.Name() == "completion" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
