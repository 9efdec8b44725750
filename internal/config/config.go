// Package config loads and validates wapgraph configuration written in CUE.
//
// The schema is embedded; a user file is unified with it, so unknown
// fields, out-of-range values and malformed IRIs are rejected with a source
// position, and unset fields take their defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// Config is the decoded configuration.
type Config struct {
	PageSize int    `json:"pageSize"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
	BaseIRI  string `json:"baseIRI"`
	Format   string `json:"format"`
	LogLevel string `json:"logLevel"`
}

// Error reports an invalid configuration with the position of the first
// offending value.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: config: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return "config: " + e.Message
}

// Default returns the configuration with every field at its default.
func Default() Config {
	cfg, err := Parse(nil, "default.cue")
	if err != nil {
		// the embedded schema is covered by tests
		panic(err)
	}
	return cfg
}

// Load reads and validates a CUE config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema. filename is used in
// error positions only.
func Parse(src []byte, filename string) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := schema.FillPath(cue.ParsePath("config"), user).LookupPath(cue.ParsePath("config"))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}
	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	e := &Error{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
