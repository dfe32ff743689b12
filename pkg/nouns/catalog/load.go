package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/operations"
	_ "github.com/provide-io/nouns/go/nouns/pkg/nouns/operations/compress"
)

// Option adjusts how a catalog is loaded.
type Option func(*loadOptions)

type loadOptions struct {
	name        string
	logger      hclog.Logger
	checksum    string
	compression string
}

// WithName labels the catalog, e.g. "nouns" or "mfers".
func WithName(name string) Option {
	return func(o *loadOptions) { o.name = name }
}

// WithLogger sets the logger used to report the load.
func WithLogger(logger hclog.Logger) Option {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithChecksum rejects sources whose decoded bytes do not match expected.
func WithChecksum(expected string) Option {
	return func(o *loadOptions) { o.checksum = expected }
}

// WithCompression pins the encoding a source must arrive in: "raw", "gzip"
// or "bzip2". Empty or "auto" accepts whatever the magic bytes say.
func WithCompression(name string) Option {
	return func(o *loadOptions) { o.compression = name }
}

type sourceDocument struct {
	Palette  *[]string                      `json:"palette"`
	BGColors *[]string                      `json:"bgcolors"`
	Images   *map[string][]sourceDescriptor `json:"images"`
}

type sourceDescriptor struct {
	Filename *string              `json:"filename"`
	Data     *string              `json:"data"`
	Textures *map[string][]string `json:"textures"`
}

// LoadFile reads and decodes a catalog from path. Gzip and bzip2 sources
// are detected by their magic bytes. The catalog name defaults to the file
// name without extensions.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &nerrors.CatalogLoadError{Source: path, Err: err}
	}

	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return LoadBytes(data, append([]Option{WithName(base)}, opts...)...)
}

// Load decodes a catalog from r.
func Load(r io.Reader, opts ...Option) (*Catalog, error) {
	o := applyOptions(opts)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &nerrors.CatalogLoadError{Source: o.name, Err: err}
	}
	return LoadBytes(data, opts...)
}

// LoadBytes decodes a catalog from an in-memory source. Any structural
// problem fails the whole load; there is no partially populated catalog.
func LoadBytes(data []byte, opts ...Option) (*Catalog, error) {
	o := applyOptions(opts)
	fail := func(err error) (*Catalog, error) {
		o.logger.Error("catalog load failed", "catalog", o.name, "error", err)
		return nil, &nerrors.CatalogLoadError{Source: o.name, Err: err}
	}

	if err := checkCompression(data, o.compression); err != nil {
		return fail(err)
	}

	raw, op, err := operations.Unwrap(data)
	if err != nil {
		return fail(err)
	}
	if op != nil {
		o.logger.Debug("catalog source decompressed", "catalog", o.name,
			"operation", op.Name(), "size", len(raw))
	}

	checksum := CalculateChecksum(raw, ChecksumSHA256)
	if o.checksum != "" {
		ok, err := VerifyChecksum(raw, o.checksum)
		if err != nil {
			return fail(err)
		}
		if !ok {
			return fail(fmt.Errorf("%w: have %s, want %s", nerrors.ErrChecksumMismatch, checksum, o.checksum))
		}
	}

	var doc sourceDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return fail(fmt.Errorf("decoding catalog: %w", err))
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fail(errors.New("decoding catalog: trailing data after document"))
	}

	switch {
	case doc.Palette == nil:
		return fail(errors.New("missing required field \"palette\""))
	case doc.BGColors == nil:
		return fail(errors.New("missing required field \"bgcolors\""))
	case doc.Images == nil:
		return fail(errors.New("missing required field \"images\""))
	}

	images := make(map[Category][]TraitDescriptor, len(*doc.Images))
	for key, list := range *doc.Images {
		descriptors := make([]TraitDescriptor, 0, len(list))
		for i, sd := range list {
			d, err := sd.descriptor()
			if err != nil {
				return fail(fmt.Errorf("images[%q][%d]: %w", key, i, err))
			}
			descriptors = append(descriptors, d)
		}
		images[Category(key)] = descriptors
	}

	cat := &Catalog{
		name:             o.name,
		palette:          *doc.Palette,
		backgroundColors: *doc.BGColors,
		images:           images,
		checksum:         checksum,
	}

	if o.logger.IsInfo() {
		counts := make([]interface{}, 0, 2*len(images)+4)
		counts = append(counts, "catalog", o.name, "bgcolors", len(cat.backgroundColors))
		for _, c := range cat.Categories() {
			counts = append(counts, string(c), len(images[c]))
		}
		o.logger.Info("catalog loaded", counts...)
	}
	return cat, nil
}

func (sd sourceDescriptor) descriptor() (TraitDescriptor, error) {
	switch {
	case sd.Filename == nil:
		return TraitDescriptor{}, errors.New("missing required field \"filename\"")
	case sd.Data == nil:
		return TraitDescriptor{}, errors.New("missing required field \"data\"")
	case sd.Textures == nil:
		return TraitDescriptor{}, errors.New("missing required field \"textures\"")
	}
	return TraitDescriptor{
		RLEData:  *sd.Data,
		AssetID:  *sd.Filename,
		Textures: *sd.Textures,
	}, nil
}

func applyOptions(opts []Option) loadOptions {
	o := loadOptions{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkCompression(data []byte, name string) error {
	if name == "" || strings.EqualFold(strings.TrimSpace(name), "auto") {
		return nil
	}
	want, err := operations.ByName(name)
	if err != nil {
		return err
	}
	have := operations.IDOf(operations.Detect(data))
	if have != operations.IDOf(want) {
		return fmt.Errorf("source is %s, want %s",
			operations.GetName(have), operations.GetName(operations.IDOf(want)))
	}
	return nil
}
