package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/jsonpipe/decode"
	"github.com/arloliu/jsonpipe/format"
	"github.com/arloliu/jsonpipe/pipe"
	"github.com/arloliu/jsonpipe/stream"
)

// config is the YAML profile loaded with -config. Command line flags that
// are set explicitly override profile values.
type config struct {
	Compression    string `yaml:"compression"`
	Whitespace     bool   `yaml:"whitespace"`
	Lenient        bool   `yaml:"lenient"`
	MaxValueSize   int64  `yaml:"max_value_size"`
	SegmentSize    int    `yaml:"segment_size"`
	PauseThreshold int64  `yaml:"pause_threshold"`
	Queue          int    `yaml:"queue"`
	Color          string `yaml:"color"`
	Stats          bool   `yaml:"stats"`
	LogLevel       string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Whitespace:     true,
		SegmentSize:    pipe.MinSegmentSize * 256,
		PauseThreshold: pipe.DefaultPauseThreshold,
		Color:          "auto",
		LogLevel:       "warn",
	}
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

func (c config) compression(inputName string) (format.CompressionType, error) {
	if c.Compression != "" && c.Compression != "auto" {
		return format.ParseCompression(c.Compression)
	}

	if ext := filepath.Ext(inputName); ext != "" {
		if ct, err := format.ParseCompression(ext); err == nil {
			return ct, nil
		}
	}

	return format.CompressionNone, nil
}

func (c config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return lvl, nil
}

func (c config) pipeOptions() []pipe.Option {
	return []pipe.Option{
		pipe.WithSegmentSize(c.SegmentSize),
		pipe.WithPauseThreshold(c.PauseThreshold),
	}
}

func (c config) streamOptions(logger *slog.Logger) []stream.Option {
	opts := []stream.Option{
		stream.WithDecoder(decode.Raw()),
		stream.WithWhitespace(c.Whitespace),
		stream.WithMaxValueSize(c.MaxValueSize),
		stream.WithLogger(logger),
	}
	if c.Lenient {
		opts = append(opts, stream.WithLenientDecode())
	}

	return opts
}
