package internal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// NamedVector pairs an optional key with an embedding vector read from an
// input file. Order follows the file.
type NamedVector struct {
	Key    string    `json:"key,omitempty"`
	Vector []float32 `json:"vector"`
}

// LoadVectors reads embedding vectors from path. Two formats are accepted:
// a single JSON array of arrays, or JSON Lines where each line is either a
// bare array or an object {"key": ..., "vector": [...]}.
func LoadVectors(path string) ([]NamedVector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidInput, path)
	}

	if trimmed[0] == '[' {
		var raw [][]float32
		if err := json.Unmarshal(trimmed, &raw); err == nil {
			vectors := make([]NamedVector, len(raw))
			for i, v := range raw {
				vectors[i] = NamedVector{Vector: v}
			}
			return vectors, nil
		}
	}

	return parseVectorLines(trimmed)
}

func parseVectorLines(data []byte) ([]NamedVector, error) {
	var vectors []NamedVector

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if line[0] == '[' {
			var vec []float32
			if err := json.Unmarshal(line, &vec); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, lineNo, err)
			}
			vectors = append(vectors, NamedVector{Vector: vec})
			continue
		}

		var nv NamedVector
		if err := json.Unmarshal(line, &nv); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, lineNo, err)
		}
		if len(nv.Vector) == 0 {
			return nil, fmt.Errorf("%w: line %d: missing vector", ErrInvalidInput, lineNo)
		}
		vectors = append(vectors, nv)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan vectors: %w", err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no vectors found", ErrInvalidInput)
	}

	return vectors, nil
}
