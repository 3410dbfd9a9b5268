package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsonpipe/compress"
	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/format"
)

const sample = `[ {"id": 1, "name": "a"},
  {"id": 2, "tags": [true, null]} ]`

const sampleNDJSON = `{"id":1,"name":"a"}
{"id":2,"tags":[true,null]}
`

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, false)

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestRun_Stdin(t *testing.T) {
	out, _, err := runCmd(t, sample)
	require.NoError(t, err)
	assert.Equal(t, sampleNDJSON, out)
}

func TestRun_Queue(t *testing.T) {
	out, stderr, err := runCmd(t, sample, "-queue", "1", "-stats")
	require.NoError(t, err)
	assert.Equal(t, sampleNDJSON, out)
	assert.Contains(t, stderr, "items=2")
}

func TestRun_CompressedFile(t *testing.T) {
	for _, ext := range []string{".zst", ".gz", ".lz4", ".s2"} {
		t.Run(ext, func(t *testing.T) {
			ct, err := format.ParseCompression(ext)
			require.NoError(t, err)

			var buf bytes.Buffer
			w, err := compress.NewWriter(&buf, ct)
			require.NoError(t, err)
			_, _ = io.WriteString(w, sample)
			require.NoError(t, w.Close())

			path := writeFile(t, "data.json"+ext, buf.Bytes())
			out, _, err := runCmd(t, "", path)
			require.NoError(t, err)
			assert.Equal(t, sampleNDJSON, out)
		})
	}
}

func TestRun_ConfigProfile(t *testing.T) {
	profile := writeFile(t, "profile.yaml", []byte("whitespace: false\nstats: true\nlog_level: debug\n"))

	_, stderr, err := runCmd(t, sample, "-config", profile)
	require.ErrorIs(t, err, errs.ErrUnsupportedShape)
	assert.Contains(t, stderr, "read cycle")
	assert.Contains(t, stderr, "items=0")

	// An explicit flag wins over the profile.
	out, _, err := runCmd(t, sample, "-config", profile, "-whitespace=true")
	require.NoError(t, err)
	assert.Equal(t, sampleNDJSON, out)
}

func TestRun_InvalidArguments(t *testing.T) {
	_, _, err := runCmd(t, sample, "-color", "rainbow")
	require.Error(t, err)

	_, _, err = runCmd(t, sample, "-compression", "brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, _, err = runCmd(t, sample, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRun_Truncated(t *testing.T) {
	out, _, err := runCmd(t, `[{"id":1},{"id"`)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	assert.Equal(t, "{\"id\":1}\n", out)
}

func TestRun_Connect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, aerr := ln.Accept()
		if aerr != nil {
			return
		}
		defer conn.Close()
		for _, chunk := range []string{`[{"id":1`, `},{"id":2}`, `]`} {
			_, _ = io.WriteString(conn, chunk)
		}
	}()

	out, _, err := runCmd(t, "", "-connect", ln.Addr().String(), "-compression", "none")
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1}\n{\"id\":2}\n", out)
}

func TestColorizer(t *testing.T) {
	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)

	require.NoError(t, defaultColorizer.writeLine(out, []byte(`{"k":"v\"x","n":-1.5,"b":true}`)))
	require.NoError(t, out.Flush())

	line := buf.String()
	assert.Contains(t, line, "\033[1;34m\"k\"\033[0m")
	assert.Contains(t, line, "\033[32m\"v\\\"x\"\033[0m")
	assert.Contains(t, line, "\033[36m-1.5\033[0m")
	assert.Contains(t, line, "\033[35mtrue\033[0m")
	assert.True(t, strings.HasSuffix(line, "}\n"))

	buf.Reset()
	var none *colorizer
	require.NoError(t, none.writeLine(out, []byte(`{}`)))
	require.NoError(t, out.Flush())
	assert.Equal(t, "{}\n", buf.String())
}

func TestConfigCompression(t *testing.T) {
	cfg := defaultConfig()

	ct, err := cfg.compression("events.json.zst")
	require.NoError(t, err)
	assert.Equal(t, format.CompressionZstd, ct)

	ct, err = cfg.compression("127.0.0.1:9000")
	require.NoError(t, err)
	assert.Equal(t, format.CompressionNone, ct)

	cfg.Compression = "lz4"
	ct, err = cfg.compression("events.json")
	require.NoError(t, err)
	assert.Equal(t, format.CompressionLZ4, ct)
}
