package main

import (
	"fmt"
	"path/filepath"

	"github.com/fredrikaverpil/jsbld/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the jsbld dependency, main.go and the wrapper script",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fsys := afero.NewOsFs()

	root, err := projectRoot()
	if err != nil {
		return err
	}
	dir := filepath.Join(root, scaffold.Dir)
	if ok, _ := afero.DirExists(fsys, dir); !ok {
		return fmt.Errorf("%s/ not found - run 'jsbld-init init' first", scaffold.Dir)
	}

	before, err := scaffold.RequiredVersion(fsys, dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Updating jsbld...")
	fmt.Fprintf(out, "  Updating %s@latest\n", scaffold.ModulePath)
	if err := runCommand(ctx, out, dir, "go", "get", "-u", scaffold.ModulePath+"@latest"); err != nil {
		return fmt.Errorf("go get -u: %w", err)
	}

	fmt.Fprintln(out, "  Running go mod tidy")
	if err := runCommand(ctx, out, dir, "go", "mod", "tidy"); err != nil {
		return fmt.Errorf("go mod tidy: %w", err)
	}

	fmt.Fprintf(out, "  Regenerating %s/main.go\n", scaffold.Dir)
	if err := scaffold.RegenerateMain(fsys, dir); err != nil {
		return err
	}

	fmt.Fprintf(out, "  Updating ./%s (wrapper script)\n", scaffold.WrapperName)
	if err := scaffold.WriteWrapper(fsys, root); err != nil {
		return err
	}

	after, err := scaffold.RequiredVersion(fsys, dir)
	if err != nil {
		return err
	}
	if after == before {
		fmt.Fprintf(out, "Done! Already at %s\n", after)
	} else {
		fmt.Fprintf(out, "Done! %s -> %s\n", before, after)
	}
	return nil
}
