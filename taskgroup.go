package jsbld

import "github.com/goyek/goyek/v3"

// Flow is the task runner that operations are registered with.
// *goyek.Flow implements it.
type Flow interface {
	Define(task goyek.Task) *goyek.DefinedTask
	Undefine(task *goyek.DefinedTask)
	Tasks() []*goyek.DefinedTask
}

// Operation is a named task produced by a task group before it is defined on
// a Flow. Deps are names of operations that must complete successfully first;
// they are resolved when the operation is defined.
type Operation struct {
	Name   string
	Usage  string
	Deps   []string
	Action func(a *goyek.A)
}

// TaskGroup returns the operations for one category.
// Returning a *ConfigError for a missing file hides the category when it was
// not explicitly imported; any other error is fatal.
type TaskGroup func(cfg *Config) ([]Operation, error)

// Lookup returns the task with the given name defined on f, or nil.
func Lookup(f Flow, name string) *goyek.DefinedTask {
	for _, t := range f.Tasks() {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Action adapts fn into a goyek action that fails the task when fn returns an error.
func Action(fn func(a *goyek.A) error) func(a *goyek.A) {
	return func(a *goyek.A) {
		if err := fn(a); err != nil {
			a.Fatal(err)
		}
	}
}

// RunAction returns an action that runs name with args in the project root.
func (c *Config) RunAction(name string, args ...string) func(a *goyek.A) {
	return Action(func(a *goyek.A) error {
		return c.Run(a.Context(), a.Output(), name, args...)
	})
}
