// Package tasks provides the unified task entry point for jsbld.
// It probes the project environment and registers the tasks of every
// active category on a goyek flow.
package tasks

import (
	"context"
	"fmt"

	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/tasks/electron"
	"github.com/fredrikaverpil/jsbld/tasks/esdoc"
	"github.com/fredrikaverpil/jsbld/tasks/eslint"
	"github.com/fredrikaverpil/jsbld/tasks/git"
	"github.com/fredrikaverpil/jsbld/tasks/jspm"
	"github.com/fredrikaverpil/jsbld/tasks/jspmtest"
	"github.com/fredrikaverpil/jsbld/tasks/npm"
	"github.com/fredrikaverpil/jsbld/tasks/npmscripts"
	"github.com/fredrikaverpil/jsbld/tasks/test"
	"github.com/goyek/goyek/v3"
)

// groups maps each known category to the function producing its tasks.
var groups = map[jsbld.Category]jsbld.TaskGroup{
	jsbld.Electron:   electron.Tasks,
	jsbld.ESDoc:      esdoc.Tasks,
	jsbld.ESLint:     eslint.Tasks,
	jsbld.Git:        git.Tasks,
	jsbld.JSPM:       jspm.Tasks,
	jsbld.JSPMTest:   jspmtest.Tasks,
	jsbld.NPM:        npm.Tasks,
	jsbld.NPMScripts: npmscripts.Tasks,
	jsbld.Test:       test.Tasks,
}

// Register probes the environment and defines the tasks of every active
// category on f. On a fatal configuration error it prints the error and
// terminates through cfg.Exit without defining any task.
//
// Example usage:
//
//	func main() {
//	    tasks.Register(goyek.DefaultFlow, &jsbld.Config{RootPath: ".", SrcGlob: []string{"src/**/*.js"}})
//	    boot.Main()
//	}
//
// cli.Main does the same after resolving the Config from jsbld.yaml, the
// environment and flags.
func Register(f jsbld.Flow, cfg *jsbld.Config) {
	if err := register(context.Background(), f, cfg); err != nil {
		cfg.Fatal(err)
	}
}

func register(ctx context.Context, f jsbld.Flow, cfg *jsbld.Config) error {
	cfg.ApplyDefaults()

	cfg.ActiveTasks = jsbld.Subtract(cfg.Imports(), cfg.ExcludeTasks)
	cfg.ActiveTasks = probe(ctx, cfg, cfg.ActiveTasks)
	cfg.TopLevelModules = listModules(ctx, cfg)

	var ops []jsbld.Operation
	for _, cat := range cfg.ActiveTasks {
		group, ok := groups[cat]
		if !ok {
			cfg.Debugf("ignoring unknown task category %q", cat)
			continue
		}
		catOps, err := group(cfg)
		if err != nil {
			if jsbld.IsMissingConfig(err) && !cfg.Explicit() {
				cfg.Debugf("hiding %s tasks: %v", cat, err)
				cfg.ActiveTasks = jsbld.Without(cfg.ActiveTasks, cat)
				continue
			}
			return fmt.Errorf("load %s tasks: %w", cat, err)
		}
		ops = append(ops, catOps...)
	}

	define(f, cfg, ops)
	return nil
}

// probe removes the categories whose external tool is not installed.
func probe(ctx context.Context, cfg *jsbld.Config, active []jsbld.Category) []jsbld.Category {
	if _, err := cfg.Probe(ctx, "git", "--version"); err != nil {
		cfg.Debugf("git not available: %v", err)
		active = jsbld.Without(active, jsbld.Git)
	}
	if _, err := cfg.Probe(ctx, "npm", "version"); err != nil {
		cfg.Debugf("npm not available: %v", err)
		active = jsbld.Without(active, jsbld.NPM, jsbld.NPMScripts)
	}
	return active
}

// listModules returns the installed top-level npm modules. npm exits non-zero
// when the tree has missing or extraneous packages, so the output is parsed
// regardless of the error.
func listModules(ctx context.Context, cfg *jsbld.Config) map[string]string {
	out, err := cfg.Probe(ctx, "npm", "list", "--depth=0")
	if err != nil {
		cfg.Debugf("npm list: %v", err)
	}
	if out == "" {
		return map[string]string{}
	}
	return jsbld.ParseModuleList(out)
}

// define registers ops on f so that every dependency is defined before the
// task that needs it. A task whose dependency is neither among ops nor
// already on f is skipped. Existing tasks with the same name are replaced.
func define(f jsbld.Flow, cfg *jsbld.Config, ops []jsbld.Operation) {
	byName := make(map[string]jsbld.Operation, len(ops))
	for _, op := range ops {
		byName[op.Name] = op
	}

	defined := make(map[string]*goyek.DefinedTask, len(ops))
	visiting := make(map[string]bool)
	failed := make(map[string]bool)

	var visit func(name string) *goyek.DefinedTask
	visit = func(name string) *goyek.DefinedTask {
		if t, ok := defined[name]; ok {
			return t
		}
		op, ok := byName[name]
		if !ok {
			return jsbld.Lookup(f, name)
		}
		if failed[name] || visiting[name] {
			return nil
		}
		visiting[name] = true
		defer delete(visiting, name)

		deps := make(goyek.Deps, 0, len(op.Deps))
		for _, dep := range op.Deps {
			t := visit(dep)
			if t == nil {
				cfg.Debugf("skipping task %q: dependency %q is not available", name, dep)
				failed[name] = true
				return nil
			}
			deps = append(deps, t)
		}

		if old := jsbld.Lookup(f, name); old != nil {
			f.Undefine(old)
		}
		t := f.Define(goyek.Task{
			Name:   op.Name,
			Usage:  op.Usage,
			Deps:   deps,
			Action: op.Action,
		})
		defined[name] = t
		cfg.LoadedTasks = append(cfg.LoadedTasks, name)
		return t
	}

	for _, op := range ops {
		visit(op.Name)
	}
}
