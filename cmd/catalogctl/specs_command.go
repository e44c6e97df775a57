package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
)

func newSpecsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "specs",
		Short: "Inspect and convert specification maps",
	}
	cmd.AddCommand(newSpecsDecodeCommand())
	cmd.AddCommand(newSpecsEncodeCommand())
	cmd.AddCommand(newSpecsShowCommand(ctx))
	return cmd
}

func newSpecsDecodeCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Read a stored flat JSON map on stdin and print its sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			flat := specs.FlatMapFromJSON(raw)
			if len(flat) > 0 && !specs.IsStructuredFormat(flat) {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: input is a legacy free-form map")
			}
			sections := specs.LegacySections(flat)
			if asJSON {
				return writeJSON(cmd, sections)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGroups(specs.GroupSections(sections)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sections as JSON")
	return cmd
}

func newSpecsEncodeCommand() *cobra.Command {
	var ordered bool
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Read sections as YAML or JSON on stdin and print the flat map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sections []specs.Section
			if err := yaml.NewDecoder(cmd.InOrStdin()).Decode(&sections); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("parse sections: %w", err)
			}
			for _, c := range specs.FindCollisions(sections) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: labels %q share key %q\n", c.Labels, c.Slug)
			}
			encode := specs.Encode
			if ordered {
				encode = specs.EncodeOrdered
			}
			return writeJSON(cmd, encode(sections))
		},
	}
	cmd.Flags().BoolVar(&ordered, "ordered", true, "Include position keys")
	return cmd
}

func newSpecsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show SLUG",
		Short: "Print a stored product's specifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.productService()
			if err != nil {
				return err
			}
			p, err := svc.GetBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			groups := specs.GroupForDisplay(specs.FlatMapFromJSON(p.Specifications))
			if asJSON {
				return writeJSON(cmd, groups)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", p.Name, p.Status)
			fmt.Fprintln(cmd.OutOrStdout(), renderGroups(groups))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print display groups as JSON")
	return cmd
}
