package jsbld

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fatih/color"
)

// ConfigError reports a required configuration file that is missing or malformed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("could not locate config file at: %s", e.Path)
	}
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsMissingConfig reports whether err is a ConfigError for a file that does not exist.
func IsMissingConfig(err error) bool {
	var cerr *ConfigError
	return errors.As(err, &cerr) && errors.Is(cerr.Err, fs.ErrNotExist)
}

// Fatal prints err to c.Stderr and terminates through c.Exit with status 1.
func (c *Config) Fatal(err error) {
	fmt.Fprintf(c.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	c.Exit(1)
}

// Debugf prints a registrar diagnostic when verbose mode is enabled.
func (c *Config) Debugf(format string, a ...any) {
	if c.Verbose {
		fmt.Fprintf(c.Stdout, format+"\n", a...)
	}
}
