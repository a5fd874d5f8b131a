// Package jspm provides tasks for the JSPM CLI and SystemJS Builder.
package jspm

import (
	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
)

// Tasks returns the JSPM tasks. jspm-clear-config-git-push is only added when
// git tasks are active.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	ops := []jsbld.Operation{
		{
			Name:   "jspm-bundle",
			Usage:  "bundle the project with SystemJS Builder",
			Action: BundleAction(cfg, false),
		},
		{
			Name:  "jspm-clear-config",
			Usage: "clear map and paths from the JSPM config and commit it",
			Action: jsbld.Action(func(a *goyek.A) error {
				return ClearConfig(a.Context(), a.Output(), cfg)
			}),
		},
	}
	if cfg.Active(jsbld.Git) {
		ops = append(ops, jsbld.Operation{
			Name:  "jspm-clear-config-git-push",
			Usage: "run test-basic, clear the JSPM config, then git push",
			Deps:  []string{"test-basic", "jspm-clear-config", "git-push"},
		})
	}
	return append(ops,
		jsbld.Operation{Name: "jspm-dl-loader", Usage: "run jspm dl-loader", Action: cfg.RunAction("jspm", "dl-loader")},
		jsbld.Operation{Name: "jspm-inspect", Usage: "run jspm inspect", Action: cfg.RunAction("jspm", "inspect")},
		jsbld.Operation{Name: "jspm-install", Usage: "run jspm install", Action: cfg.RunAction("jspm", "install")},
	), nil
}
