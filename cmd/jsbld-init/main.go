// Command jsbld-init bootstraps and maintains the .jsbld build directory of a
// JavaScript project.
//
//	go run github.com/fredrikaverpil/jsbld/cmd/jsbld-init@latest init
//	go run github.com/fredrikaverpil/jsbld/cmd/jsbld-init@latest update
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/fredrikaverpil/jsbld"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jsbld-init",
	Short: "Bootstrap and update jsbld in a JavaScript project",
	Long: `jsbld-init creates a .jsbld build module next to package.json and a
./jsbld wrapper script that runs it. Tasks are then run with ./jsbld <task>.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}

// projectRoot returns the directory holding package.json, starting at the
// working directory.
func projectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return jsbld.FindRoot(cwd), nil
}

// runCommand runs name in dir, streaming its output to w.
func runCommand(ctx context.Context, w io.Writer, dir, name string, args ...string) error {
	cmd := jsbld.Command(ctx, dir, name, args...)
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}
