package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/okian/swiri/internal/domain/model"
)

// gzipSuffix marks a compressed artifact.
const gzipSuffix = ".gz"

// Load reads a forest artifact from path. A ".gz" suffix means gzip
// compressed JSON. Every failure, including a missing file, is reported as
// ErrModelUnavailable so callers can disable classification at startup.
func Load(ctx context.Context, path string) (*Forest, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: no model path configured", ErrModelUnavailable)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, gzipSuffix) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrModelUnavailable, path, err)
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}

	forest, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelUnavailable, path, err)
	}
	if err := checkContract(forest); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelUnavailable, path, err)
	}
	return forest, nil
}

// checkContract rejects forests that do not take the feature vector or
// emit probabilities indexed by label code.
func checkContract(f *Forest) error {
	if f.NFeatures != model.NumFeatures {
		return fmt.Errorf("%w: n_features is %d, want %d", ErrInvalidModel, f.NFeatures, model.NumFeatures)
	}
	if len(f.Classes) != model.NumLabels {
		return fmt.Errorf("%w: %d classes, want %d", ErrInvalidModel, len(f.Classes), model.NumLabels)
	}
	for i, c := range f.Classes {
		if c != i {
			return fmt.Errorf("%w: classes %v, want codes 0..%d in order", ErrInvalidModel, f.Classes, model.NumLabels-1)
		}
	}
	return nil
}

// Decode parses and validates a JSON forest.
func Decode(r io.Reader) (*Forest, error) {
	var forest Forest
	if err := json.NewDecoder(r).Decode(&forest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if err := forest.Validate(); err != nil {
		return nil, err
	}
	return &forest, nil
}

// Save writes f to path as JSON, gzip compressed when path ends in ".gz".
func Save(path string, f *Forest) (err error) {
	if err := f.Validate(); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close model file: %w", cerr)
		}
	}()

	var w io.Writer = out
	if strings.HasSuffix(path, gzipSuffix) {
		zw := gzip.NewWriter(out)
		defer func() {
			if cerr := zw.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("flush model file: %w", cerr)
			}
		}()
		w = zw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}
