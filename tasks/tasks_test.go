package tasks

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/internal/jsbldtest"
	"github.com/goyek/goyek/v3"
)

const moduleList = `app@1.0.0 /proj
├── eslint@2.13.1
├── jspm@0.16.53
└── @babel/core@7.24.0
`

// project writes the config files every category needs.
func project(t *testing.T, cfg *jsbld.Config) {
	t.Helper()
	jsbldtest.WriteFile(t, cfg.Fs, "/proj/.eslintrc", "{}")
	jsbldtest.WriteFile(t, cfg.Fs, "/proj/.esdocrc", "{}")
	jsbldtest.WriteFile(t, cfg.Fs, "/proj/package.json", `{"name": "app", "scripts": {"start": "node ."}}`)
}

func taskNames(f jsbld.Flow) []string {
	var names []string
	for _, t := range f.Tasks() {
		names = append(names, t.Name())
	}
	slices.Sort(names)
	return names
}

func depNames(t *goyek.DefinedTask) []string {
	var names []string
	for _, d := range t.Deps() {
		names = append(names, d.Name())
	}
	return names
}

func TestRegister_DefaultSet(t *testing.T) {
	cfg, _, exit := jsbldtest.NewConfig(t)
	project(t, cfg)
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if len(exit.Codes) != 0 {
		t.Fatalf("exit codes = %v, stderr = %s", exit.Codes, cfg.Stderr)
	}
	want := []string{
		"esdoc", "eslint", "git-push",
		"jspm-bundle", "jspm-clear-config", "jspm-clear-config-git-push",
		"jspm-dl-loader", "jspm-inspect", "jspm-install",
		"jspm-test-basic", "jspm-test-basic-git-push",
		"npm-install", "npm-list-depth-0", "npm-outdated", "npm-run-start", "npm-uninstall",
		"test-basic",
	}
	if got := taskNames(flow); !slices.Equal(got, want) {
		t.Errorf("tasks = %v, want %v", got, want)
	}
	loaded := slices.Sorted(slices.Values(cfg.LoadedTasks))
	if !slices.Equal(loaded, want) {
		t.Errorf("LoadedTasks = %v, want %v", loaded, want)
	}
	if !slices.Equal(cfg.ActiveTasks, jsbld.AllCategories()) {
		t.Errorf("ActiveTasks = %v", cfg.ActiveTasks)
	}
}

func TestRegister_Dependencies(t *testing.T) {
	cfg, _, _ := jsbldtest.NewConfig(t)
	project(t, cfg)
	flow := &goyek.Flow{}

	Register(flow, cfg)

	tests := map[string][]string{
		"git-push":                   {"test-basic"},
		"test-basic":                 {"eslint"},
		"jspm-clear-config-git-push": {"test-basic", "jspm-clear-config", "git-push"},
		"jspm-test-basic":            {"eslint"},
		"jspm-test-basic-git-push":   {"jspm-test-basic"},
		"eslint":                     nil,
	}
	for name, want := range tests {
		task := jsbld.Lookup(flow, name)
		if task == nil {
			t.Errorf("task %s not defined", name)
			continue
		}
		if got := depNames(task); !slices.Equal(got, want) {
			t.Errorf("%s deps = %v, want %v", name, got, want)
		}
	}

	// Dependencies are always defined before their dependents.
	pos := make(map[string]int)
	for i, name := range cfg.LoadedTasks {
		pos[name] = i
	}
	for name, deps := range tests {
		for _, dep := range deps {
			if pos[dep] > pos[name] {
				t.Errorf("%s defined after its dependent %s", dep, name)
			}
		}
	}
}

func TestRegister_Exclusion(t *testing.T) {
	tests := []struct {
		name    string
		include []jsbld.Category
		exclude []jsbld.Category
		want    []jsbld.Category
	}{
		{
			name:    "preserves order",
			include: []jsbld.Category{jsbld.NPM, jsbld.ESLint, jsbld.Git},
			exclude: []jsbld.Category{jsbld.ESLint},
			want:    []jsbld.Category{jsbld.NPM, jsbld.Git},
		},
		{
			name:    "exclude everything",
			include: []jsbld.Category{jsbld.Git},
			exclude: []jsbld.Category{jsbld.Git, jsbld.NPM},
			want:    []jsbld.Category{},
		},
		{
			name:    "default set",
			exclude: []jsbld.Category{jsbld.Electron, jsbld.ESDoc, jsbld.ESLint, jsbld.JSPM, jsbld.JSPMTest, jsbld.Test},
			want:    []jsbld.Category{jsbld.Git, jsbld.NPM, jsbld.NPMScripts},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, _ := jsbldtest.NewConfig(t)
			project(t, cfg)
			cfg.ImportTasks = tt.include
			cfg.ExcludeTasks = tt.exclude

			Register(&goyek.Flow{}, cfg)

			if !slices.Equal(cfg.ActiveTasks, tt.want) {
				t.Errorf("ActiveTasks = %v, want %v", cfg.ActiveTasks, tt.want)
			}
		})
	}
}

func TestRegister_GitProbeFails(t *testing.T) {
	cfg, rec, _ := jsbldtest.NewConfig(t)
	project(t, cfg)
	rec.Set("git --version", jsbldtest.Result{Err: errors.New("executable file not found")})
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if cfg.Active(jsbld.Git) {
		t.Error("git still active")
	}
	for _, name := range taskNames(flow) {
		if strings.Contains(name, "git") {
			t.Errorf("git task %s registered", name)
		}
	}
	if jsbld.Lookup(flow, "test-basic") == nil {
		t.Error("test-basic missing")
	}
}

func TestRegister_NPMProbeFails(t *testing.T) {
	cfg, rec, _ := jsbldtest.NewConfig(t)
	project(t, cfg)
	rec.Set("npm version", jsbldtest.Result{Err: errors.New("executable file not found")})
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if cfg.Active(jsbld.NPM) || cfg.Active(jsbld.NPMScripts) {
		t.Errorf("ActiveTasks = %v, want npm and npm-scripts pruned", cfg.ActiveTasks)
	}
	for _, name := range taskNames(flow) {
		if strings.HasPrefix(name, "npm-") {
			t.Errorf("npm task %s registered", name)
		}
	}
}

func TestRegister_ProbesOnlyPrune(t *testing.T) {
	cfg, _, _ := jsbldtest.NewConfig(t)
	project(t, cfg)
	cfg.ImportTasks = []jsbld.Category{jsbld.ESLint}

	Register(&goyek.Flow{}, cfg)

	if !slices.Equal(cfg.ActiveTasks, []jsbld.Category{jsbld.ESLint}) {
		t.Errorf("ActiveTasks = %v, want [eslint]", cfg.ActiveTasks)
	}
}

func TestRegister_TopLevelModules(t *testing.T) {
	for _, listErr := range []error{nil, errors.New("exit status 1")} {
		cfg, rec, _ := jsbldtest.NewConfig(t)
		cfg.ImportTasks = []jsbld.Category{}
		rec.Set("npm list --depth=0", jsbldtest.Result{Stdout: moduleList, Err: listErr})

		Register(&goyek.Flow{}, cfg)

		want := map[string]string{"eslint": "2.13.1", "jspm": "0.16.53", "@babel/core": "7.24.0"}
		if !maps.Equal(cfg.TopLevelModules, want) {
			t.Errorf("npm list error %v: TopLevelModules = %v, want %v", listErr, cfg.TopLevelModules, want)
		}
	}
}

func TestRegister_ProbesRunInRoot(t *testing.T) {
	cfg, rec, _ := jsbldtest.NewConfig(t)
	cfg.ImportTasks = []jsbld.Category{}

	Register(&goyek.Flow{}, cfg)

	want := []string{"git --version", "npm version", "npm list --depth=0"}
	if got := rec.Lines(); !slices.Equal(got, want) {
		t.Errorf("probes = %v, want %v", got, want)
	}
	for _, c := range rec.Calls() {
		if c.Dir != jsbldtest.Root {
			t.Errorf("%s ran in %s", c, c.Dir)
		}
	}
}

func TestRegister_MissingExplicitConfig(t *testing.T) {
	cfg, _, exit := jsbldtest.NewConfig(t)
	cfg.ImportTasks = []jsbld.Category{jsbld.ESLint}
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if !slices.Equal(exit.Codes, []int{1}) {
		t.Errorf("exit codes = %v, want [1]", exit.Codes)
	}
	stderr := cfg.Stderr.(interface{ String() string }).String()
	if !strings.Contains(stderr, "/proj/.eslintrc") {
		t.Errorf("stderr %q does not name /proj/.eslintrc", stderr)
	}
	if n := len(flow.Tasks()); n != 0 {
		t.Errorf("%d tasks registered, want none", n)
	}
}

func TestRegister_MissingDefaultConfigHides(t *testing.T) {
	cfg, _, exit := jsbldtest.NewConfig(t)
	jsbldtest.WriteFile(t, cfg.Fs, "/proj/package.json", `{}`)
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if len(exit.Codes) != 0 {
		t.Fatalf("exit codes = %v", exit.Codes)
	}
	if cfg.Active(jsbld.ESLint) || cfg.Active(jsbld.ESDoc) {
		t.Errorf("ActiveTasks = %v, want eslint and esdoc hidden", cfg.ActiveTasks)
	}
	for _, name := range []string{"eslint", "esdoc", "test-basic", "git-push", "jspm-clear-config-git-push"} {
		if jsbld.Lookup(flow, name) != nil {
			t.Errorf("task %s registered", name)
		}
	}
	if jsbld.Lookup(flow, "jspm-bundle") == nil {
		t.Error("jspm-bundle missing")
	}
}

func TestRegister_UnresolvedDependency(t *testing.T) {
	cfg, _, _ := jsbldtest.NewConfig(t)
	cfg.ImportTasks = []jsbld.Category{jsbld.Git}
	cfg.Verbose = true
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if n := len(flow.Tasks()); n != 0 {
		t.Errorf("tasks = %v, want none", taskNames(flow))
	}
	if len(cfg.LoadedTasks) != 0 {
		t.Errorf("LoadedTasks = %v", cfg.LoadedTasks)
	}
	stdout := cfg.Stdout.(interface{ String() string }).String()
	if !strings.Contains(stdout, `dependency "test-basic"`) {
		t.Errorf("verbose output %q does not report the missing dependency", stdout)
	}
}

func TestRegister_ExistingDependency(t *testing.T) {
	cfg, _, _ := jsbldtest.NewConfig(t)
	cfg.ImportTasks = []jsbld.Category{jsbld.Git}
	flow := &goyek.Flow{}
	flow.Define(goyek.Task{Name: "test-basic", Usage: "custom"})

	Register(flow, cfg)

	push := jsbld.Lookup(flow, "git-push")
	if push == nil {
		t.Fatal("git-push not registered")
	}
	if deps := depNames(push); !slices.Equal(deps, []string{"test-basic"}) {
		t.Errorf("git-push deps = %v, want [test-basic]", deps)
	}
	if usage := jsbld.Lookup(flow, "test-basic").Usage(); usage != "custom" {
		t.Errorf("existing test-basic was replaced (usage %q)", usage)
	}
}

func TestRegister_Twice(t *testing.T) {
	cfg, _, _ := jsbldtest.NewConfig(t)
	project(t, cfg)
	flow := &goyek.Flow{}

	Register(flow, cfg)
	first := taskNames(flow)
	Register(flow, cfg)

	if got := taskNames(flow); !slices.Equal(got, first) {
		t.Errorf("tasks after second registration = %v, want %v", got, first)
	}
	if len(cfg.LoadedTasks) != len(first) {
		t.Errorf("LoadedTasks = %v, want %d entries", cfg.LoadedTasks, len(first))
	}
	if deps := depNames(jsbld.Lookup(flow, "git-push")); !slices.Equal(deps, []string{"test-basic"}) {
		t.Errorf("git-push deps after re-registration = %v", deps)
	}
}

func TestRegister_UnknownCategory(t *testing.T) {
	cfg, _, exit := jsbldtest.NewConfig(t)
	project(t, cfg)
	cfg.ImportTasks = []jsbld.Category{"docs", jsbld.ESLint}
	flow := &goyek.Flow{}

	Register(flow, cfg)

	if len(exit.Codes) != 0 {
		t.Errorf("exit codes = %v", exit.Codes)
	}
	if got := taskNames(flow); !slices.Equal(got, []string{"eslint"}) {
		t.Errorf("tasks = %v, want [eslint]", got)
	}
}

func TestProbe_Timeout(t *testing.T) {
	cfg, _, _ := jsbldtest.NewConfig(t)
	cfg.ApplyDefaults()
	cfg.ImportTasks = []jsbld.Category{jsbld.Git, jsbld.NPM}
	cfg.Exec = func(ctx context.Context, _, _ string, _ ...string) ([]byte, []byte, error) {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	cfg.ProbeTimeout = 1

	active := probe(context.Background(), cfg, cfg.ImportTasks)
	if len(active) != 0 {
		t.Errorf("active = %v, want all pruned after timeouts", active)
	}
}
