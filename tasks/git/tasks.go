// Package git provides version-control tasks.
package git

import "github.com/fredrikaverpil/jsbld"

// Tasks returns the git-push task, which runs after test-basic succeeds.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	return []jsbld.Operation{{
		Name:   "git-push",
		Usage:  "run test-basic, then git push",
		Deps:   []string{"test-basic"},
		Action: cfg.RunAction("git", "push"),
	}}, nil
}
