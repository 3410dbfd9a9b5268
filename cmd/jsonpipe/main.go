// Command jsonpipe streams the elements of a large JSON array as NDJSON.
//
// Usage:
//
//	jsonpipe [flags] [file|-]
//
// The input is read from a file, standard input, or a TCP peer (-connect),
// optionally decompressed (zstd, s2, lz4, gzip; guessed from the file
// extension), and every array element is printed compactly on its own line.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	gojson "github.com/goccy/go-json"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/arloliu/jsonpipe"
	"github.com/arloliu/jsonpipe/compress"
	"github.com/arloliu/jsonpipe/pipe"
	"github.com/arloliu/jsonpipe/stream"
)

func main() {
	// Do not handle SIGPIPE, a closed stdout ends the copy with an error.
	signal.Ignore(syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stdout io.Writer = os.Stdout
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if tty {
		stdout = colorable.NewColorableStdout()
	}

	if err := run(ctx, os.Args[1:], os.Stdin, stdout, colorable.NewColorableStderr(), tty); err != nil {
		fmt.Fprintf(os.Stderr, "jsonpipe: %s\n", err)
		os.Exit(1)
	}
}

// run executes the command. tty reports whether stdout is a terminal.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, tty bool) error {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("jsonpipe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML profile with default settings")
	connect := fs.String("connect", "", "read from a TCP address instead of a file")
	var flags config
	fs.StringVar(&flags.Compression, "compression", "auto", "input compression: auto, none, zstd, s2, lz4, gzip")
	fs.BoolVar(&flags.Whitespace, "whitespace", cfg.Whitespace, "allow whitespace between top-level tokens")
	fs.BoolVar(&flags.Lenient, "lenient", false, "retry malformed values until the input ends")
	fs.Int64Var(&flags.MaxValueSize, "max-value-size", 0, "fail when a single value exceeds this many bytes (0: no limit)")
	fs.IntVar(&flags.Queue, "queue", 0, "decode in the background into a queue of this capacity")
	fs.StringVar(&flags.Color, "color", cfg.Color, "colorize output: auto, always, never")
	fs.BoolVar(&flags.Stats, "stats", false, "print stream statistics to stderr")
	verbose := fs.Bool("v", false, "log read cycles to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "compression":
			cfg.Compression = flags.Compression
		case "whitespace":
			cfg.Whitespace = flags.Whitespace
		case "lenient":
			cfg.Lenient = flags.Lenient
		case "max-value-size":
			cfg.MaxValueSize = flags.MaxValueSize
		case "queue":
			cfg.Queue = flags.Queue
		case "color":
			cfg.Color = flags.Color
		case "stats":
			cfg.Stats = flags.Stats
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})

	level, err := cfg.level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var colors *colorizer
	switch cfg.Color {
	case "always":
		colors = &defaultColorizer
	case "never":
	case "auto", "":
		if tty {
			colors = &defaultColorizer
		}
	default:
		return fmt.Errorf("invalid -color value: %q (use auto, always, or never)", cfg.Color)
	}

	src, name, closeSrc, err := openInput(ctx, fs.Arg(0), *connect, stdin)
	if err != nil {
		return err
	}
	defer closeSrc()

	ct, err := cfg.compression(name)
	if err != nil {
		return err
	}
	zr, err := compress.NewReader(src, ct)
	if err != nil {
		return err
	}
	defer zr.Close()

	reader, err := newSource(ctx, cfg, zr, *connect != "")
	if err != nil {
		return err
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	p := &printer{w: out, colors: colors}
	stats, err := decodeTo(ctx, reader, cfg, logger, p)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if cfg.Stats {
		fmt.Fprintln(stderr, stats)
	}

	return err
}

// openInput returns the byte source, a name used to guess its compression
// and a function releasing it.
func openInput(ctx context.Context, path, addr string, stdin io.Reader) (io.Reader, string, func(), error) {
	switch {
	case addr != "":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, "", nil, fmt.Errorf("connect: %w", err)
		}
		// Closing the connection unblocks a pending read on cancellation.
		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

		return conn, addr, func() { stop(); _ = conn.Close() }, nil
	case path == "" || path == "-":
		return stdin, "", func() {}, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, "", nil, err
		}

		return f, path, func() { _ = f.Close() }, nil
	}
}

// newSource returns a pull-fed reader for local input. Network input is
// pumped into a Pipe by its own goroutine so the decode loop observes
// cancellation while the peer is silent.
func newSource(ctx context.Context, cfg config, r io.Reader, network bool) (pipe.Reader, error) {
	if !network {
		return pipe.NewStreamReader(r, pipe.WithSegmentSize(cfg.SegmentSize))
	}

	p, err := pipe.New(cfg.pipeOptions()...)
	if err != nil {
		return nil, err
	}
	go func() {
		_ = pipe.Copy(ctx, p, r)
	}()

	return p, nil
}

func decodeTo(ctx context.Context, r pipe.Reader, cfg config, logger *slog.Logger, p *printer) (stream.Stats, error) {
	opts := cfg.streamOptions(logger)

	if cfg.Queue > 0 {
		q, err := jsonpipe.Start[[]byte](ctx, r, cfg.Queue, opts...)
		if err != nil {
			return stream.Stats{}, err
		}
		for raw := range q.All() {
			if err := p.print(raw); err != nil {
				_ = q.Close()
				return q.Stats(), err
			}
		}

		return q.Stats(), q.Err()
	}

	d, err := stream.New[[]byte](r, opts...)
	if err != nil {
		return stream.Stats{}, err
	}
	err = d.Run(ctx, stream.SinkFunc[[]byte](func(_ context.Context, raw []byte) error {
		return p.print(raw)
	}))

	return d.Stats(), err
}

type printer struct {
	w      *bufio.Writer
	colors *colorizer
	buf    bytes.Buffer
}

func (p *printer) print(raw []byte) error {
	p.buf.Reset()
	if err := gojson.Compact(&p.buf, raw); err != nil {
		return fmt.Errorf("compact element: %w", err)
	}
	if err := p.colors.writeLine(p.w, p.buf.Bytes()); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			return nil
		}

		return err
	}

	return nil
}
