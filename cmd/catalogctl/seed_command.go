package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
	"github.com/stagehire/catalog-backend/internal/services"
)

// seedFile is the catalog import format:
//
//	products:
//	  - name: KARA II
//	    brand: L-Acoustics
//	    status: published
//	    specifications:
//	      - label: Physical
//	        rows:
//	          - {label: Weight, value: 26 kg}
//	    key_specs:
//	      - {section: Physical, label: Weight}
type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	services.ProductInput `yaml:",inline"`
	Specifications        []specs.Section    `yaml:"specifications"`
	KeySpecs              []specs.KeySpecRef `yaml:"key_specs"`
}

func parseSeedFile(r io.Reader) (*seedFile, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or update products from a YAML catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()
			seed, err := parseSeedFile(fh)
			if err != nil {
				return err
			}

			svc, err := ctx.productService()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(seed.Products))
			for i, p := range seed.Products {
				saved, err := svc.Upsert(cmd.Context(), p.ProductInput, p.Specifications, p.KeySpecs)
				if err != nil {
					return fmt.Errorf("product %d (%s): %w", i+1, p.Name, err)
				}
				sections := specs.DecodeJSON(saved.Specifications)
				rows = append(rows, []string{saved.Slug, saved.Status, fmt.Sprint(len(sections))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Slug", "Status", "Sections"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
