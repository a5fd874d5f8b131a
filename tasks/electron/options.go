package electron

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fredrikaverpil/jsbld"
	"github.com/tidwall/gjson"
)

// PackageOptions are the electron-packager options read from electron.json.
type PackageOptions struct {
	// Platform is a Node platform name, a comma separated list of them, or "all".
	Platform string
	Arch     string
	Dir      string
	Out      string
	Name     string

	// Extra holds every other option as flag name and raw JSON value, in file order.
	Extra []Option
}

// Option is a single extra electron-packager option.
type Option struct {
	Key   string
	Value gjson.Result
}

var reserved = map[string]bool{"all": true, "platform": true, "arch": true, "dir": true, "out": true, "name": true}

// ParsePackageOptions parses electron.json. Missing values default to the host
// platform and architecture, dir ".", out "build" and the given app name.
// "all": true selects every platform and architecture.
func ParsePackageOptions(data []byte, defaultName string) (*PackageOptions, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("want a JSON object")
	}

	opts := &PackageOptions{
		Platform: stringOr(root.Get("platform"), jsbld.OSToNode(jsbld.HostOS())),
		Arch:     stringOr(root.Get("arch"), jsbld.ArchToNode(jsbld.HostArch())),
		Dir:      stringOr(root.Get("dir"), "."),
		Out:      stringOr(root.Get("out"), "build"),
		Name:     stringOr(root.Get("name"), defaultName),
	}
	if all := root.Get("all"); all.IsBool() && all.Bool() {
		opts.Platform, opts.Arch = "all", "all"
	}

	root.ForEach(func(key, value gjson.Result) bool {
		if !reserved[key.String()] {
			opts.Extra = append(opts.Extra, Option{Key: key.String(), Value: value})
		}
		return true
	})
	return opts, nil
}

func stringOr(v gjson.Result, def string) string {
	if v.Type == gjson.String && v.String() != "" {
		return v.String()
	}
	return def
}

// Args returns the electron-packager command line for one platform.
func (o *PackageOptions) Args(platform string) []string {
	args := []string{o.Dir}
	if o.Name != "" {
		args = append(args, o.Name)
	}
	args = append(args,
		"--platform="+platform,
		"--arch="+o.Arch,
		"--out="+o.Out,
	)
	for _, opt := range o.Extra {
		args = appendFlag(args, opt.Key, opt.Value)
	}
	return args
}

// appendFlag renders a JSON option as electron-packager flags. Objects use
// dot notation, arrays repeat the flag and false booleans are spelled out.
func appendFlag(args []string, key string, v gjson.Result) []string {
	switch {
	case v.IsObject():
		v.ForEach(func(k, sub gjson.Result) bool {
			args = appendFlag(args, key+"."+k.String(), sub)
			return true
		})
	case v.IsArray():
		for _, item := range v.Array() {
			args = appendFlag(args, key, item)
		}
	case v.Type == gjson.True:
		args = append(args, "--"+key)
	case v.Type == gjson.Null:
	default:
		args = append(args, fmt.Sprintf("--%s=%s", key, strings.TrimSpace(v.String())))
	}
	return args
}
