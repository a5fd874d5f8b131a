package main

import (
	"fmt"
	"path/filepath"

	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .jsbld/ and the ./jsbld wrapper in the project root",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fsys := afero.NewOsFs()

	root, err := projectRoot()
	if err != nil {
		return err
	}
	manifest, err := afero.ReadFile(fsys, filepath.Join(root, jsbld.ManifestName))
	if err != nil {
		return fmt.Errorf("not a JavaScript project (no %s found): %w", jsbld.ManifestName, err)
	}

	dir := filepath.Join(root, scaffold.Dir)
	if ok, _ := afero.DirExists(fsys, dir); ok {
		return fmt.Errorf("%s/ already exists", scaffold.Dir)
	}

	fmt.Fprintln(out, "Initializing jsbld...")
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s/: %w", scaffold.Dir, err)
	}

	buildModule := scaffold.BuildModule(manifest)
	fmt.Fprintf(out, "  Creating %s/go.mod (%s)\n", scaffold.Dir, buildModule)
	if err := runCommand(ctx, out, dir, "go", "mod", "init", buildModule); err != nil {
		return fmt.Errorf("go mod init: %w", err)
	}

	deps := []string{
		scaffold.ModulePath + "@latest",
		"github.com/goyek/goyek/v3@latest",
		"github.com/goyek/x@latest",
	}
	for _, dep := range deps {
		fmt.Fprintf(out, "  Adding %s\n", dep)
		if err := runCommand(ctx, out, dir, "go", "get", dep); err != nil {
			return fmt.Errorf("go get %s: %w", dep, err)
		}
	}

	fmt.Fprintf(out, "  Creating %s/config.go, main.go and .gitignore\n", scaffold.Dir)
	if err := scaffold.GenerateAll(fsys, dir); err != nil {
		return err
	}

	fmt.Fprintln(out, "  Running go mod tidy")
	if err := runCommand(ctx, out, dir, "go", "mod", "tidy"); err != nil {
		return fmt.Errorf("go mod tidy: %w", err)
	}

	fmt.Fprintf(out, "  Creating ./%s (wrapper script)\n", scaffold.WrapperName)
	if err := scaffold.WriteWrapper(fsys, root); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! You can now run:")
	fmt.Fprintln(out, "  ./jsbld -h              # list available tasks")
	fmt.Fprintln(out, "  ./jsbld eslint          # lint sources")
	fmt.Fprintln(out, "  ./jsbld jspm-bundle     # build bundles")
	return nil
}
