package jspm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/internal/jsobject"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CommitMessage is used for the commit made after clearing the JSPM config.
const CommitMessage = "Removed extra data from JSPM config"

// keepQuoted lists keys whose quotes survive rewriting.
var keepQuoted = []string{"optional"}

// ConfigFile returns the JSPM config file of the project. It is read from
// the package manifest (jspm.configFile, then configFile), falling back to
// config.js inside the configured baseURL, then to config.js in the root.
func ConfigFile(cfg *jsbld.Config) string {
	manifest := cfg.FromRoot(jsbld.ManifestName)
	if cfg.JSPMPackagePath != "" {
		manifest = cfg.JSPMPackagePath
		if !filepath.IsAbs(manifest) {
			manifest = cfg.FromRoot(manifest)
		}
	}

	data, err := afero.ReadFile(cfg.Fs, manifest)
	if err != nil || !gjson.ValidBytes(data) {
		return cfg.FromRoot("config.js")
	}

	prefix := ""
	if gjson.GetBytes(data, "jspm").IsObject() {
		prefix = "jspm."
	}
	if f := gjson.GetBytes(data, prefix+"configFile").String(); f != "" {
		return cfg.FromRoot(f)
	}
	if base := gjson.GetBytes(data, prefix+"directories.baseURL").String(); base != "" {
		return cfg.FromRoot(base, "config.js")
	}
	return cfg.FromRoot("config.js")
}

// ClearConfig empties the map and paths entries of the JSPM config file and
// commits the file. When both are already empty the file is left untouched
// and nothing is committed.
func ClearConfig(ctx context.Context, w io.Writer, cfg *jsbld.Config) error {
	path := ConfigFile(cfg)
	src, err := afero.ReadFile(cfg.Fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not locate JSPM config at: %s", path)
	}
	if err != nil {
		return fmt.Errorf("read JSPM config: %w", err)
	}

	fmt.Fprintf(w, "Clearing JSPM config at: %s\n", path)
	out, changed, err := clearConfig(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !changed {
		fmt.Fprintln(w, "JSPM config has no map or paths entries")
		return nil
	}

	if err := afero.WriteFile(cfg.Fs, path, out, 0o644); err != nil {
		return fmt.Errorf("write JSPM config: %w", err)
	}
	return cfg.Run(ctx, w, "git", "commit", "-m", CommitMessage, cfg.RelToRoot(path))
}

// clearConfig returns src with map and paths emptied, and whether anything changed.
func clearConfig(src []byte) ([]byte, bool, error) {
	literal, err := jsobject.Extract(src)
	if err != nil {
		return nil, false, err
	}
	data, err := jsobject.ToJSON(literal)
	if err != nil {
		return nil, false, err
	}
	if isEmpty(data, "map") && isEmpty(data, "paths") {
		return nil, false, nil
	}

	for _, key := range []string{"map", "paths"} {
		if data, err = sjson.SetRawBytes(data, key, []byte("{}")); err != nil {
			return nil, false, fmt.Errorf("clear %s: %w", key, err)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, false, fmt.Errorf("format JSPM config: %w", err)
	}
	return jsobject.UnquoteKeys(jsobject.Wrap(buf.Bytes()), keepQuoted...), true, nil
}

func isEmpty(data []byte, key string) bool {
	v := gjson.GetBytes(data, key)
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return true
	case v.IsObject():
		return len(v.Map()) == 0
	default:
		return false
	}
}
