// Package snapshot reads the CLI's input: one graph snapshot or a list of
// records, given inline, as a file (optionally brotli compressed) or on
// stdin.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/canonical"
	"github.com/andybalholm/brotli"
)

// StdinPath selects standard input as the source.
const StdinPath = "-"

// MaxInputBytes bounds decompressed input.
const MaxInputBytes = 256 << 20

var ErrNoInput = errors.New("no input: pass --data, --file or pipe JSON on stdin")

type Source struct {
	Data  string
	Path  string
	Stdin io.Reader
}

// Read returns the raw JSON text of a source. Inline data wins over a path;
// paths ending in .br are brotli decompressed.
func Read(source Source) ([]byte, error) {
	if strings.TrimSpace(source.Data) != "" {
		return []byte(source.Data), nil
	}

	path := strings.TrimSpace(source.Path)
	if path == "" || path == StdinPath {
		if source.Stdin == nil {
			return nil, ErrNoInput
		}
		data, err := readLimited(source.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, ErrNoInput
		}
		return data, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(strings.ToLower(path), ".br") {
		reader = brotli.NewReader(file)
	}
	data, err := readLimited(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func readLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxInputBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxInputBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", MaxInputBytes)
	}
	return data, nil
}

// Snapshot decodes one JSON document.
func Snapshot(data []byte) (canonical.Value, error) {
	return canonical.Parse(data)
}

// Records decodes a JSON array or newline-delimited JSON into record values.
func Records(data []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("no records in input")
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode record array: %w", err)
		}
		records := make([]any, 0, len(items))
		for index, item := range items {
			value, err := canonical.Parse(item)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", index, err)
			}
			records = append(records, value)
		}
		return records, nil
	}

	records := make([]any, 0)
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxInputBytes)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		value, err := canonical.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in input")
	}
	return records, nil
}
