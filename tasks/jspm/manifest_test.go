package jspm

import (
	"testing"

	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/internal/jsbldtest"
	"github.com/spf13/afero"
)

func TestParseManifest(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(`{"entryPoints": [
		{"src": "src/a.js", "formats": ["amd", "cjs"], "destBaseDir": "./dist", "destFilename": "a.js", "mangle": false},
		{"buildType": "bundle", "inMemoryBuild": true, "src": "src/b.js", "formats": ["umd"],
		 "builderOptions": {"globalDeps": {"underscore": "_"}}}
	]}`))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if len(m.EntryPoints) != 2 {
		t.Fatalf("got %d entry points, want 2", len(m.EntryPoints))
	}

	a, b := m.EntryPoints[0], m.EntryPoints[1]
	if a.BuildType != BuildStatic {
		t.Errorf("default buildType = %q, want %q", a.BuildType, BuildStatic)
	}
	if string(a.Mangle) != "false" || a.Minify != nil {
		t.Errorf("mangle = %s, minify = %s", a.Mangle, a.Minify)
	}
	if len(a.Formats) != 2 || a.Formats[1] != "cjs" {
		t.Errorf("formats = %v", a.Formats)
	}
	if b.BuildType != BuildBundle || !b.InMemoryBuild {
		t.Errorf("entry b = %+v", b)
	}
	if string(b.BuilderOptions) != `{"globalDeps": {"underscore": "_"}}` {
		t.Errorf("builderOptions = %s", b.BuilderOptions)
	}
}

func TestParseManifest_ExtraConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		extra string
		want  []ExtraConfig
	}{
		{"absent", `null`, nil},
		{"path", `"config/extra.js"`, []ExtraConfig{{Path: "config/extra.js"}}},
		{"inline", `{"meta": {"jquery": {"build": false}}}`, []ExtraConfig{{Inline: []byte(`{"meta": {"jquery": {"build": false}}}`)}}},
		{"list", `["a.js", {"b": 1}, "c.js"]`, []ExtraConfig{{Path: "a.js"}, {Inline: []byte(`{"b": 1}`)}, {Path: "c.js"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseManifest([]byte(`{"entryPoints": [{"src": "s.js", "extraConfig": ` + tt.extra + `}]}`))
			if err != nil {
				t.Fatalf("ParseManifest() error = %v", err)
			}
			got := m.EntryPoints[0].ExtraConfig
			if len(got) != len(tt.want) {
				t.Fatalf("extraConfig = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i].Path != tt.want[i].Path || string(got[i].Inline) != string(tt.want[i].Inline) {
					t.Errorf("extraConfig[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseManifest_Errors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		`not json`,
		`{}`,
		`{"entryPoints": {}}`,
		`{"entryPoints": [1]}`,
		`{"entryPoints": [{"extraConfig": 3}]}`,
	} {
		if _, err := ParseManifest([]byte(src)); err == nil {
			t.Errorf("ParseManifest(%s) succeeded, want error", src)
		}
	}
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()

	if _, err := LoadManifest(fsys, "/proj/config/bundle-config.json"); !jsbld.IsMissingConfig(err) {
		t.Errorf("missing manifest: error = %v, want missing config", err)
	}

	jsbldtest.WriteFile(t, fsys, "/proj/config/bundle-config.json", `{
  // only one entry
  "entryPoints": [{"src": "src/index.js", "formats": ["amd"],}],
}`)
	m, err := LoadManifest(fsys, "/proj/config/bundle-config.json")
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if len(m.EntryPoints) != 1 || m.EntryPoints[0].Src != "src/index.js" {
		t.Errorf("manifest = %+v", m)
	}
}
