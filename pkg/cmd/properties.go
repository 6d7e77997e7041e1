// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carabiner-dev/command"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

var _ command.OptionsSet = (*PropertiesOptions)(nil)

type PropertiesOptions struct {
	JSON bool
}

var defaultPropertiesOptions = PropertiesOptions{}

func (po *PropertiesOptions) Validate() error {
	return nil
}

func (po *PropertiesOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false, "Output in JSON format")
}

func (po *PropertiesOptions) Config() *command.OptionsSetConfig {
	return nil
}

// propertyCategories lists the catalogs in display order.
var propertyCategories = []struct {
	name  string
	props func() []aad.PropertyDefinition
}{
	{aad.CategoryLocation, aad.LocationProperties},
	{aad.CategoryAuthentication, aad.AuthenticationProperties},
	{aad.CategoryGroupSync, aad.GroupProperties},
}

func renderPropertyTable(w io.Writer, props []aad.PropertyDefinition) error {
	headers := []string{"#", "Key", "Name", "Type", "Default", "Options"}
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)

	for _, p := range props {
		if err := table.Append([]string{
			strconv.Itoa(p.Index),
			p.Key,
			p.Name,
			string(p.Type),
			p.DefaultValue,
			strings.Join(p.Options, ", "),
		}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func AddProperties(parent *cobra.Command) {
	opts := defaultPropertiesOptions

	cmd := &cobra.Command{
		Use:          "properties",
		Short:        "List the recognized settings",
		Long:         `Lists every setting the Azure AD integration reads, grouped by category.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if opts.JSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(aad.AllProperties())
			}

			for i, c := range propertyCategories {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, c.name)
				if err := renderPropertyTable(w, c.props()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.AddFlags(cmd)
	parent.AddCommand(cmd)
}
