package jspm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fredrikaverpil/jsbld"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// BuildType selects the SystemJS Builder method used for an entry point.
type BuildType string

// Supported build types.
const (
	// BuildBundle produces a bundle that still needs the SystemJS loader.
	BuildBundle BuildType = "bundle"
	// BuildStatic produces a self-executing bundle.
	BuildStatic BuildType = "buildStatic"
)

// Valid reports whether t is a supported build type.
func (t BuildType) Valid() bool {
	return t == BuildBundle || t == BuildStatic
}

// ExtraConfig is one additional JSPM config applied to the builder after the
// project config is loaded. Exactly one of Path and Inline is set: Path names a
// file styled like config.js, Inline is a config object applied directly.
type ExtraConfig struct {
	Path   string          `json:"path,omitempty"`
	Inline json.RawMessage `json:"inline,omitempty"`
}

// EntryPoint is one entry of the bundle manifest.
type EntryPoint struct {
	BuildType     BuildType
	InMemoryBuild bool
	DestBaseDir   string
	DestFilename  string
	Formats       []string
	Src           string

	// Mangle and Minify hold the raw JSON values; nil when absent.
	Mangle json.RawMessage
	Minify json.RawMessage

	// BuilderOptions is the raw builderOptions object; nil when absent.
	BuilderOptions json.RawMessage

	// ExtraConfig lists the extra configs in the order they are applied.
	// Later entries override earlier ones.
	ExtraConfig []ExtraConfig
}

// Manifest is the parsed bundle manifest.
type Manifest struct {
	EntryPoints []EntryPoint
}

// LoadManifest reads the bundle manifest at path. Comments and trailing
// commas are allowed.
func LoadManifest(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := jsbld.ReadJSONC(fsys, path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, &jsbld.ConfigError{Path: path, Err: err}
	}
	return m, nil
}

// ParseManifest parses a bundle manifest in standard JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	entries := gjson.GetBytes(data, "entryPoints")
	if !entries.IsArray() {
		return nil, errors.New(`missing "entryPoints" array`)
	}

	m := &Manifest{}
	for i, e := range entries.Array() {
		if !e.IsObject() {
			return nil, fmt.Errorf("entryPoints[%d]: not an object", i)
		}
		ep := EntryPoint{
			BuildType:     BuildType(e.Get("buildType").String()),
			InMemoryBuild: e.Get("inMemoryBuild").Bool(),
			DestBaseDir:   e.Get("destBaseDir").String(),
			DestFilename:  e.Get("destFilename").String(),
			Src:           e.Get("src").String(),
			Mangle:        raw(e.Get("mangle")),
			Minify:        raw(e.Get("minify")),
		}
		if ep.BuildType == "" {
			ep.BuildType = BuildStatic
		}
		for _, f := range e.Get("formats").Array() {
			ep.Formats = append(ep.Formats, f.String())
		}
		if opts := e.Get("builderOptions"); opts.IsObject() {
			ep.BuilderOptions = raw(opts)
		}
		extra, err := parseExtraConfig(e.Get("extraConfig"))
		if err != nil {
			return nil, fmt.Errorf("entryPoints[%d].extraConfig: %w", i, err)
		}
		ep.ExtraConfig = extra
		m.EntryPoints = append(m.EntryPoints, ep)
	}
	return m, nil
}

// parseExtraConfig accepts a path, an inline object or a list of either.
func parseExtraConfig(v gjson.Result) ([]ExtraConfig, error) {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return nil, nil
	case v.IsArray():
		var out []ExtraConfig
		for i, item := range v.Array() {
			ec, err := extraConfigItem(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, ec)
		}
		return out, nil
	default:
		ec, err := extraConfigItem(v)
		if err != nil {
			return nil, err
		}
		return []ExtraConfig{ec}, nil
	}
}

func extraConfigItem(v gjson.Result) (ExtraConfig, error) {
	switch {
	case v.Type == gjson.String:
		return ExtraConfig{Path: v.String()}, nil
	case v.IsObject():
		return ExtraConfig{Inline: raw(v)}, nil
	default:
		return ExtraConfig{}, fmt.Errorf("want a path or an object, got %s", v.Raw)
	}
}

func raw(v gjson.Result) json.RawMessage {
	if !v.Exists() {
		return nil
	}
	return json.RawMessage(v.Raw)
}
