package jspm

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
	"github.com/sourcegraph/conc/pool"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Bundle manifest names inside the config directory.
const (
	ManifestName   = "bundle-config.json"
	CIManifestName = "bundle-config-travis.json"
)

// Bundler bundles every entry point of the bundle manifest in every format it lists.
type Bundler struct {
	Config  *jsbld.Config
	Builder Builder

	// CI selects the CI manifest and forces in-memory builds.
	CI bool
}

// NewBundler returns a Bundler that builds with node.
func NewBundler(cfg *jsbld.Config) *Bundler {
	return &Bundler{Config: cfg, Builder: NodeBuilder{Config: cfg}, CI: cfg.CI}
}

// BundleAction returns the action of jspm-bundle. When forceCI is set the
// bundle runs in CI mode regardless of the configuration.
func BundleAction(cfg *jsbld.Config, forceCI bool) func(a *goyek.A) {
	return jsbld.Action(func(a *goyek.A) error {
		b := NewBundler(cfg)
		b.CI = b.CI || forceCI
		return b.Run(a.Context(), jsbld.SyncWriter(a.Output()))
	})
}

// ManifestPath returns the bundle manifest used by b.
func (b *Bundler) ManifestPath() string {
	switch {
	case b.Config.BundleConfig != "":
		return b.Config.FromRoot(b.Config.BundleConfig)
	case b.CI:
		return b.Config.FromConfigDir(CIManifestName)
	default:
		return b.Config.FromConfigDir(ManifestName)
	}
}

// Run loads the manifest, plans every job and builds them concurrently.
// It returns on the first failed job; jobs still running are left to finish
// and their results are ignored. w must be safe for concurrent use.
func (b *Bundler) Run(ctx context.Context, w io.Writer) error {
	m, err := LoadManifest(b.Config.Fs, b.ManifestPath())
	if err != nil {
		return err
	}
	jobs, err := b.Plan(m)
	if err != nil {
		return err
	}
	if err := b.execute(ctx, w, jobs); err != nil {
		return err
	}
	fmt.Fprintln(w, "All Bundle Tasks Complete")
	return nil
}

// Plan expands the manifest into one job per entry point and format and
// creates the output directories of on-disk builds. Nothing is built.
func (b *Bundler) Plan(m *Manifest) ([]Job, error) {
	for i, ep := range m.EntryPoints {
		if !ep.BuildType.Valid() {
			return nil, fmt.Errorf("entryPoints[%d]: unknown buildType (%s): must be %q or %q",
				i, ep.BuildType, BuildBundle, BuildStatic)
		}
	}

	var jobs []Job
	for _, ep := range m.EntryPoints {
		inMemory := ep.InMemoryBuild || b.CI

		opts, err := builderOptions(ep)
		if err != nil {
			return nil, err
		}

		var baseDir string
		if !inMemory {
			baseDir = b.Config.FromRoot(jsbld.TrimDotSlash(ep.DestBaseDir))
			if err := b.Config.Fs.MkdirAll(baseDir, 0o755); err != nil {
				return nil, fmt.Errorf("could not create destination directory %s: %w", baseDir, err)
			}
		}

		for _, format := range ep.Formats {
			job := Job{
				BuildType:   ep.BuildType,
				InMemory:    inMemory,
				Src:         ep.Src,
				Format:      format,
				ExtraConfig: ep.ExtraConfig,
			}
			job.BuilderOptions, err = sjson.SetBytes(opts, "format", format)
			if err != nil {
				return nil, fmt.Errorf("set format %s: %w", format, err)
			}
			if !inMemory {
				job.DestDir = filepath.Join(baseDir, format)
				job.DestFile = filepath.Join(job.DestDir, ep.DestFilename)
				if err := b.Config.Fs.MkdirAll(job.DestDir, 0o755); err != nil {
					return nil, fmt.Errorf("could not create destination directory %s: %w", job.DestDir, err)
				}
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

type jobResult struct {
	job Job
	err error
}

func (b *Bundler) execute(ctx context.Context, w io.Writer, jobs []Job) error {
	// Jobs outlive a failed run; the task context is cancelled once it returns.
	ctx = context.WithoutCancel(ctx)
	results := make(chan jobResult, len(jobs))
	p := pool.New()
	for _, job := range jobs {
		p.Go(func() {
			results <- jobResult{job: job, err: b.Builder.Build(ctx, w, job)}
		})
	}
	go p.Wait()

	for range jobs {
		r := <-results
		if r.err != nil {
			fmt.Fprintf(w, "Bundle error - %s\n", r.job)
			return fmt.Errorf("bundle %s: %w", r.job, r.err)
		}
	}
	return nil
}

// builderOptions merges mangle and minify with the entry's builderOptions.
// A format key in builderOptions is ignored; it is set per job.
func builderOptions(ep EntryPoint) ([]byte, error) {
	opts := []byte("{}")
	var err error
	if ep.Mangle != nil {
		if opts, err = sjson.SetRawBytes(opts, "mangle", ep.Mangle); err != nil {
			return nil, err
		}
	}
	if ep.Minify != nil {
		if opts, err = sjson.SetRawBytes(opts, "minify", ep.Minify); err != nil {
			return nil, err
		}
	}
	if ep.BuilderOptions == nil {
		return opts, nil
	}

	var setErr error
	gjson.ParseBytes(ep.BuilderOptions).ForEach(func(key, value gjson.Result) bool {
		if key.String() == "format" {
			return true
		}
		opts, setErr = sjson.SetRawBytes(opts, escapeKey(key.String()), []byte(value.Raw))
		return setErr == nil
	})
	if setErr != nil {
		return nil, fmt.Errorf("merge builderOptions: %w", setErr)
	}
	return opts, nil
}

// escapeKey escapes the characters sjson treats as path syntax.
func escapeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@:!`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
