package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/internal/settings"
	"github.com/fredrikaverpil/jsbld/tasks"
	"github.com/goyek/goyek/v3"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the task categories, tasks and npm modules found for the project",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	flags := listCmd.Flags()
	flags.String(settings.KeyRoot, "", "project root containing package.json")
	flags.String(settings.KeyImport, "", "comma separated task categories to load")
	flags.String(settings.KeyExclude, "", "comma separated task categories to skip")
	flags.String(settings.KeyConfigDir, "", "directory holding task config files")
	flags.Bool(settings.KeyTravis, false, "CI mode")
	flags.BoolP(settings.KeyVerbose, "v", false, "print registration diagnostics")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	v, err := settings.New(cwd)
	if err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg := &jsbld.Config{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	settings.Apply(v, cwd, cfg)

	flow := &goyek.Flow{}
	tasks.Register(flow, cfg)
	printSummary(cmd.OutOrStdout(), flow, cfg)
	return nil
}

func printSummary(w io.Writer, flow *goyek.Flow, cfg *jsbld.Config) {
	fmt.Fprintln(w, headerStyle.Render("Root"))
	fmt.Fprintf(w, "  %s\n\n", cfg.RootPath)

	fmt.Fprintln(w, headerStyle.Render("Categories"))
	for _, cat := range jsbld.AllCategories() {
		if cfg.Active(cat) {
			fmt.Fprintf(w, "  %s\n", nameStyle.Render(string(cat)))
		} else {
			fmt.Fprintf(w, "  %s\n", dimStyle.Render(string(cat)+" (inactive)"))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("Tasks"))
	width := 0
	for _, name := range cfg.LoadedTasks {
		width = max(width, len(name))
	}
	for _, name := range cfg.LoadedTasks {
		usage := ""
		if t := jsbld.Lookup(flow, name); t != nil {
			usage = t.Usage()
		}
		pad := strings.Repeat(" ", width-len(name))
		fmt.Fprintf(w, "  %s%s  %s\n", nameStyle.Render(name), pad, dimStyle.Render(usage))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("Modules"))
	if len(cfg.TopLevelModules) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  none"))
		return
	}
	names := make([]string, 0, len(cfg.TopLevelModules))
	for name := range cfg.TopLevelModules {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", name, dimStyle.Render(cfg.TopLevelModules[name]))
	}
}
