package scaffold

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestGenerateAll(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()

	if err := GenerateAll(fsys, "/proj/.jsbld"); err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	for _, name := range []string{"config.go", "main.go", ".gitignore"} {
		if ok, _ := afero.Exists(fsys, "/proj/.jsbld/"+name); !ok {
			t.Errorf("%s not created", name)
		}
	}
	main, _ := afero.ReadFile(fsys, "/proj/.jsbld/main.go")
	if !strings.Contains(string(main), "cli.Main(Config)") {
		t.Errorf("main.go = %s", main)
	}
}

func TestGenerateAll_KeepsConfig(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	const custom = "package main\n\n// custom\n"
	if err := afero.WriteFile(fsys, "/proj/.jsbld/config.go", []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/proj/.jsbld/main.go", []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := GenerateAll(fsys, "/proj/.jsbld"); err != nil {
		t.Fatal(err)
	}

	got, _ := afero.ReadFile(fsys, "/proj/.jsbld/config.go")
	if string(got) != custom {
		t.Errorf("config.go overwritten: %s", got)
	}
	got, _ = afero.ReadFile(fsys, "/proj/.jsbld/main.go")
	if string(got) == "stale" {
		t.Error("main.go not regenerated")
	}
}

func TestWriteWrapper(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	if err := WriteWrapper(fsys, "/proj"); err != nil {
		t.Fatal(err)
	}
	info, err := fsys.Stat("/proj/jsbld")
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("wrapper mode = %v, want executable", info.Mode())
	}
	data, _ := afero.ReadFile(fsys, "/proj/jsbld")
	if !strings.Contains(string(data), "go run -C .jsbld .") {
		t.Errorf("wrapper = %s", data)
	}
}

func TestBuildModule(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		json string
		want string
	}{
		{"plain", `{"name":"my-app"}`, "my-app-build"},
		{"scoped", `{"name":"@acme/widgets"}`, "acme/widgets-build"},
		{"missing", `{}`, "jsbld-build"},
		{"invalid", `{"name":"my app"}`, "jsbld-build"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BuildModule([]byte(tt.json)); got != tt.want {
				t.Errorf("BuildModule() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequiredVersion(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	gomod := `module my-app-build

go 1.25.5

require (
	github.com/fredrikaverpil/jsbld v0.3.0
	github.com/goyek/goyek/v3 v3.0.1
)
`
	if err := afero.WriteFile(fsys, "/proj/.jsbld/go.mod", []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := RequiredVersion(fsys, "/proj/.jsbld")
	if err != nil {
		t.Fatalf("RequiredVersion() error = %v", err)
	}
	if got != "v0.3.0" {
		t.Errorf("RequiredVersion() = %q, want v0.3.0", got)
	}

	if _, err := RequiredVersion(fsys, "/other"); err == nil {
		t.Error("expected error for missing go.mod")
	}
}
