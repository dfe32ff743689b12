package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/nouns/go/nouns/internal/config"
	"github.com/provide-io/nouns/go/nouns/pkg/logging"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/composer"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

// session is everything a subcommand needs once flags and config are applied.
type session struct {
	logger   hclog.Logger
	catalog  *catalog.Catalog
	composer *composer.Composer
	variant  seed.Variant
}

func (o *options) load() (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("nouns-composer", logging.ResolveLevel(o.logLevel, cfg.LogLevel), os.Stderr)

	name, src, err := o.catalogSource(cfg)
	if err != nil {
		return nil, err
	}

	variant := src.Variant
	if o.variant != "" {
		if variant, err = seed.ParseVariant(o.variant); err != nil {
			return nil, err
		}
	}

	loadOpts := []catalog.Option{catalog.WithName(name), catalog.WithLogger(logger.Named("catalog"))}
	if src.Checksum != "" {
		loadOpts = append(loadOpts, catalog.WithChecksum(src.Checksum))
	}
	if src.Compression != "" {
		loadOpts = append(loadOpts, catalog.WithCompression(src.Compression))
	}
	cat, err := catalog.LoadFile(src.Path, loadOpts...)
	if err != nil {
		return nil, err
	}

	compOpts := []composer.Option{
		composer.WithVariant(variant),
		composer.WithMaxAttempts(cfg.MaxAttempts),
		composer.WithLogger(logger.Named("composer")),
	}
	if o.hasRandSeed {
		compOpts = append(compOpts, composer.WithRandSeed(o.randSeed))
	}
	comp, err := composer.New(cat, compOpts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("runtime ready", "catalog", name, "path", src.Path, "variant", variant.String())
	return &session{logger: logger, catalog: cat, composer: comp, variant: variant}, nil
}

// catalogSource resolves --catalog as a configured name first, then as a
// file path. A bare path defaults to the basic variant.
func (o *options) catalogSource(cfg config.Config) (string, config.CatalogSource, error) {
	if o.catalog != "" {
		if _, ok := cfg.Catalogs[o.catalog]; !ok {
			if _, err := os.Stat(o.catalog); err == nil {
				base := filepath.Base(o.catalog)
				if i := strings.IndexByte(base, '.'); i > 0 {
					base = base[:i]
				}
				return base, config.CatalogSource{Path: o.catalog, Variant: seed.Basic}, nil
			}
		}
	}
	return cfg.Catalog(o.catalog)
}
