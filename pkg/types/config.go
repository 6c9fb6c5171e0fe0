package types

// ToolConfig points at the external tool coverbind shells out to.
type ToolConfig struct {
	// Ghostscript is an explicit path to the gs executable. Empty means
	// discover it: a bundled copy first, then the platform's usual install
	// directories, then $PATH.
	Ghostscript string `json:"ghostscript,omitempty" yaml:"ghostscript,omitempty"`
}

// OutputConfig describes where merged documents land and what they are called.
type OutputConfig struct {
	// Dir receives the merged documents. Empty means the directory of each
	// pair's invoice.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Name is the output file name for a single-pair batch
	// (default "FINAL_MERGED_INVOICE.pdf"). Batches with more than one pair
	// derive per-pair names instead.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Overwrite replaces existing outputs without confirmation.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// PipelineConfig groups all settings for a coverbind run.
type PipelineConfig struct {
	Tool   ToolConfig   `json:"tool" yaml:"tool"`
	Output OutputConfig `json:"output" yaml:"output"`

	// LogLevel sets diagnostic log verbosity: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
