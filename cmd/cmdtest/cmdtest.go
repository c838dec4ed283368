// Package cmdtest runs commands in tests.
package cmdtest

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// Run executes the command with the given arguments and returns its
// standard output. It fails the test if the command fails.
func Run(t *testing.T, cmd *cobra.Command, args []string) []byte {
	t.Helper()
	out, err := Execute(cmd, args)
	if err != nil {
		t.Fatalf("%v %v: %v", cmd.Name(), args, err)
	}
	return out
}

// Execute executes the command with the given arguments and returns its
// standard output and error.
func Execute(cmd *cobra.Command, args []string) ([]byte, error) {
	var out, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return out.Bytes(), err
}
