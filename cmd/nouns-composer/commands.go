package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/composer"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/noun"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type catalogSummary struct {
	Name             string         `json:"name"`
	Checksum         string         `json:"checksum"`
	Palette          int            `json:"palette"`
	BackgroundColors int            `json:"bgcolors"`
	Categories       map[string]int `json:"categories"`
}

func newCatalogCmd(opts *options) *cobra.Command {
	var verify string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load a trait catalog and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}
			if verify != "" {
				if err := s.catalog.Verify(verify); err != nil {
					return err
				}
			}

			summary := catalogSummary{
				Name:             s.catalog.Name(),
				Checksum:         s.catalog.Checksum(),
				Palette:          len(s.catalog.Palette()),
				BackgroundColors: s.catalog.Count(catalog.Background),
				Categories:       make(map[string]int),
			}
			for _, c := range s.catalog.Categories() {
				summary.Categories[string(c)] = s.catalog.Count(c)
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&verify, "verify", "", "Fail unless the catalog digest matches this checksum")
	return cmd
}

func newSeedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate and inspect seeds",
	}
	cmd.AddCommand(
		newSeedRandomCmd(opts),
		newSeedNewCmd(opts),
		newSeedResolveCmd(opts),
		newSeedShiftCmd(opts),
	)
	return cmd
}

func newSeedRandomCmd(opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			s, err := opts.load()
			if err != nil {
				return err
			}
			seeds := make([]seed.Seed, count)
			for i := range seeds {
				seeds[i] = s.composer.RandomSeed()
			}
			if count == 1 {
				return writeJSON(cmd.OutOrStdout(), seeds[0])
			}
			return writeJSON(cmd.OutOrStdout(), seeds)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of seeds to print")
	return cmd
}

func newSeedNewCmd(opts *options) *cobra.Command {
	var previous string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print a seed sharing no populated trait with --previous",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := parseSeedArg(previous)
			if err != nil {
				return err
			}
			s, err := opts.load()
			if err != nil {
				return err
			}
			next, err := s.composer.NewRandomSeed(prev)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), next)
		},
	}
	cmd.Flags().StringVar(&previous, "previous", "", "Previous seed as JSON, or a preset name (default, pizza, shark)")
	if err := cmd.MarkFlagRequired("previous"); err != nil {
		panic(err)
	}
	return cmd
}

func newSeedResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve SEED",
		Short: "Resolve a seed to its background color and trait layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := parseSeedArg(args[0])
			if err != nil {
				return err
			}
			s, err := opts.load()
			if err != nil {
				return err
			}
			traits, err := composer.Resolve(s.catalog, sd, s.variant)
			if err != nil {
				return err
			}

			type layer struct {
				Category string `json:"category"`
				Index    int    `json:"index"`
				Asset    string `json:"asset"`
			}
			out := struct {
				Background string  `json:"background"`
				Layers     []layer `json:"layers"`
			}{Background: traits.BackgroundColor, Layers: []layer{}}
			for _, l := range traits.Layers {
				out.Layers = append(out.Layers, layer{Category: string(l.Category), Index: l.Index, Asset: l.Descriptor.AssetID})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newSeedShiftCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shift SEED FIELD DELTA",
		Short: "Step one trait of a seed, clamped to the catalog's range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := parseSeedArg(args[0])
			if err != nil {
				return err
			}
			field, ok := seed.FieldByKey(args[1])
			if !ok {
				return fmt.Errorf("unknown field %q", args[1])
			}
			delta, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("parse delta: %w", err)
			}
			s, err := opts.load()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), s.composer.Shift(sd, field, delta))
		},
	}
}

func newNounCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noun",
		Short: "Work with offline noun drafts",
	}

	var name, owner string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a noun draft with a random seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}
			n := noun.New(name, owner, s.composer.RandomSeed())
			s.logger.Info("noun created", "id", n.ID, "name", n.Name)
			return writeJSON(cmd.OutOrStdout(), n)
		},
	}
	create.Flags().StringVar(&name, "name", "", "Name of the noun")
	create.Flags().StringVar(&owner, "owner", "", "Owner account (random when empty)")
	if err := create.MarkFlagRequired("name"); err != nil {
		panic(err)
	}

	var rename string
	randomize := &cobra.Command{
		Use:   "randomize NOUN",
		Short: "Give a noun draft a seed sharing no trait with its current one",
		Long:  "NOUN is the draft as JSON, or - to read it from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				var err error
				if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			var n noun.Noun
			if err := json.Unmarshal(raw, &n); err != nil {
				return fmt.Errorf("parse noun: %w", err)
			}

			s, err := opts.load()
			if err != nil {
				return err
			}
			n, err = noun.Randomize(s.composer, n)
			if err != nil {
				return err
			}
			if rename != "" {
				n = n.Renamed(rename)
			}
			s.logger.Info("noun randomized", "id", n.ID, "name", n.Name)
			return writeJSON(cmd.OutOrStdout(), n)
		},
	}
	randomize.Flags().StringVar(&rename, "rename", "", "Also give the draft a new name")

	cmd.AddCommand(create, randomize)
	return cmd
}

var presets = map[string]seed.Seed{
	"default": seed.Default,
	"pizza":   seed.Pizza,
	"shark":   seed.Shark,
}

func parseSeedArg(raw string) (seed.Seed, error) {
	if p, ok := presets[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return p, nil
	}
	var s seed.Seed
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return seed.Seed{}, err
	}
	return s, nil
}
