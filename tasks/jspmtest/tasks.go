// Package jspmtest provides JSPM smoke-test tasks.
package jspmtest

import (
	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/tasks/jspm"
)

// Tasks returns jspm-test-basic and, when git tasks are active,
// jspm-test-basic-git-push. Nothing is returned unless eslint and jspm
// tasks are both active.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	if !cfg.Active(jsbld.ESLint) || !cfg.Active(jsbld.JSPM) {
		return nil, nil
	}
	ops := []jsbld.Operation{{
		Name:   "jspm-test-basic",
		Usage:  "run eslint, then an in-memory CI bundle",
		Deps:   []string{"eslint"},
		Action: jspm.BundleAction(cfg, true),
	}}
	if cfg.Active(jsbld.Git) {
		ops = append(ops, jsbld.Operation{
			Name:   "jspm-test-basic-git-push",
			Usage:  "run jspm-test-basic, then git push",
			Deps:   []string{"jspm-test-basic"},
			Action: cfg.RunAction("git", "push"),
		})
	}
	return ops, nil
}
