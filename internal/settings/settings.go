// Package settings loads jsbld configuration from jsbld.yaml, a .env file,
// JSBLD_* environment variables and command-line flags, in increasing order
// of precedence.
package settings

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fredrikaverpil/jsbld"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys understood in jsbld.yaml, as JSBLD_* variables and as flags.
const (
	KeyRoot         = "root"
	KeySrc          = "src"
	KeyConfigDir    = "config-dir"
	KeyImport       = "import"
	KeyExclude      = "exclude"
	KeyTravis       = "travis"
	KeyBundleConfig = "bundle-config"
	KeyJSPMPackage  = "jspm-package"
	KeyProbeTimeout = "probe-timeout"
	KeyVerbose      = "verbose"
)

// ConfigFile is the optional config file read from the project root.
const ConfigFile = "jsbld.yaml"

// New returns a viper instance reading jsbld.yaml and the environment. Both
// jsbld.yaml and .env are looked up in the nearest directory above dir that
// holds package.json. Variables from .env are loaded into the process
// environment first; variables that are already set win.
func New(dir string) (*viper.Viper, error) {
	root := jsbld.FindRoot(dir)
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	// An explicit file keeps viper from matching the extensionless ./jsbld
	// wrapper script.
	v.SetConfigFile(filepath.Join(root, ConfigFile))

	v.SetEnvPrefix("JSBLD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// CI services announce themselves through TRAVIS or CI.
	if err := v.BindEnv(KeyTravis, "JSBLD_TRAVIS", "TRAVIS", "CI"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", v.ConfigFileUsed(), err)
	}
	return v, nil
}

// SetFlags copies the flags explicitly set on flags into v. The goyek -v flag
// maps to the verbose key.
func SetFlags(v *viper.Viper, flags *flag.FlagSet) {
	flags.Visit(func(f *flag.Flag) {
		name := f.Name
		if name == "v" {
			name = KeyVerbose
		}
		v.Set(name, f.Value.String())
	})
}

// Apply overlays the keys set in v onto cfg. Fields whose key is unset keep
// their value, so cfg can carry project defaults. Without a root the nearest
// directory above dir containing package.json is used.
func Apply(v *viper.Viper, dir string, cfg *jsbld.Config) {
	if v.IsSet(KeyRoot) {
		cfg.RootPath = v.GetString(KeyRoot)
	}
	if v.IsSet(KeySrc) {
		cfg.SrcGlob = list(v, KeySrc)
	}
	if v.IsSet(KeyConfigDir) {
		cfg.ConfigDir = v.GetString(KeyConfigDir)
	}
	if v.IsSet(KeyImport) {
		cfg.ImportTasks = jsbld.ParseCategories(list(v, KeyImport))
		if cfg.ImportTasks == nil {
			cfg.ImportTasks = []jsbld.Category{}
		}
	}
	if v.IsSet(KeyExclude) {
		cfg.ExcludeTasks = jsbld.ParseCategories(list(v, KeyExclude))
	}
	if v.IsSet(KeyTravis) {
		cfg.CI = v.GetBool(KeyTravis)
	}
	if v.IsSet(KeyBundleConfig) {
		cfg.BundleConfig = v.GetString(KeyBundleConfig)
	}
	if v.IsSet(KeyJSPMPackage) {
		cfg.JSPMPackagePath = v.GetString(KeyJSPMPackage)
	}
	if v.IsSet(KeyProbeTimeout) {
		cfg.ProbeTimeout = v.GetDuration(KeyProbeTimeout)
	}
	if v.IsSet(KeyVerbose) {
		cfg.Verbose = v.GetBool(KeyVerbose)
	}

	switch {
	case cfg.RootPath == "":
		cfg.RootPath = jsbld.FindRoot(dir)
	case !filepath.IsAbs(cfg.RootPath):
		cfg.RootPath = filepath.Join(dir, cfg.RootPath)
	}
}

// list returns a string list from v, splitting comma separated values.
func list(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for part := range strings.SplitSeq(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
