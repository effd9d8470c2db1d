package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

type dumpFlags struct {
	include    []string
	exclude    []string
	output     string
	excludeNil bool
	indent     int
}

func newDumpCmd(a *app) *cobra.Command {
	var flags dumpFlags

	cmd := &cobra.Command{
		Use:   "dump <file|->",
		Short: "Validate a payload and print the resulting record",
		Long: `Validate a payload and print the record as JSON or YAML, computed fields included.

--include and --exclude accept top level names and dotted paths into nested
records and mappings, e.g. --exclude age,address.state. They cannot be combined.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			rec, err := a.validate(cmd, args[0])
			if err != nil {
				return err
			}

			var out []byte
			switch flags.output {
			case "yaml":
				out, err = rec.DumpYAML(opts...)
			default:
				if out, err = rec.DumpJSON(opts...); err == nil {
					out = append(out, '\n')
				}
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&flags.include, "include", "i", nil, "fields to keep, comma separated")
	f.StringSliceVarP(&flags.exclude, "exclude", "e", nil, "fields to drop, comma separated")
	f.StringVarP(&flags.output, "output", "o", "json", "output format: json or yaml")
	f.BoolVar(&flags.excludeNil, "exclude-nil", false, "omit fields holding null")
	f.IntVar(&flags.indent, "indent", 2, "JSON indentation width, 0 for compact output")
	return cmd
}

func (f *dumpFlags) options() ([]schema.DumpOption, error) {
	f.output = strings.ToLower(f.output)
	if f.output != "json" && f.output != "yaml" {
		return nil, fmt.Errorf("invalid output format %q: must be json or yaml", f.output)
	}
	if f.indent < 0 {
		return nil, fmt.Errorf("invalid indent %d", f.indent)
	}

	var opts []schema.DumpOption
	if len(f.include) > 0 {
		opts = append(opts, schema.Include(f.include...))
	}
	if len(f.exclude) > 0 {
		opts = append(opts, schema.Exclude(f.exclude...))
	}
	if f.excludeNil {
		opts = append(opts, schema.ExcludeNil())
	}
	if f.indent > 0 {
		opts = append(opts, schema.WithIndent(strings.Repeat(" ", f.indent)))
	}
	return opts, nil
}
