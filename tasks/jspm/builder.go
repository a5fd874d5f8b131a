package jspm

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fredrikaverpil/jsbld"
)

//go:embed builder.js
var builderScript string

// Job is a single SystemJS Builder run: one entry point in one module format.
type Job struct {
	BuildType      BuildType       `json:"buildType"`
	InMemory       bool            `json:"inMemory"`
	Src            string          `json:"src"`
	Format         string          `json:"format"`
	DestDir        string          `json:"destDir,omitempty"`
	DestFile       string          `json:"destFile,omitempty"`
	BuilderOptions json.RawMessage `json:"builderOptions"`
	ExtraConfig    []ExtraConfig   `json:"extraConfig,omitempty"`
}

// String describes the job for log lines.
func (j Job) String() string {
	if j.InMemory {
		return fmt.Sprintf("format: %s; src: %s", j.Format, j.Src)
	}
	return fmt.Sprintf("format: %s; filename: %s", j.Format, j.DestFile)
}

// Builder performs bundle jobs.
type Builder interface {
	Build(ctx context.Context, w io.Writer, job Job) error
}

// NodeBuilder runs each job with node and the project's local jspm install.
type NodeBuilder struct {
	Config *jsbld.Config
}

// Build implements Builder.
func (b NodeBuilder) Build(ctx context.Context, w io.Writer, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode bundle job: %w", err)
	}
	return b.Config.Run(ctx, w, "node", "-e", builderScript, string(data))
}
