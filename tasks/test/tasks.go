// Package test provides the composite smoke-test task.
package test

import (
	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/tasks/jspm"
)

// Tasks returns test-basic, which lints and then runs an in-memory CI bundle.
// It requires both eslint and jspm tasks to be active.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	if !cfg.Active(jsbld.ESLint) || !cfg.Active(jsbld.JSPM) {
		return nil, nil
	}
	return []jsbld.Operation{{
		Name:   "test-basic",
		Usage:  "run eslint, then an in-memory CI bundle",
		Deps:   []string{"eslint"},
		Action: jspm.BundleAction(cfg, true),
	}}, nil
}
