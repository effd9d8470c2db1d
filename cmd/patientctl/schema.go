package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the selected model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if check {
				if _, err := a.model.CompileJSONSchema(); err != nil {
					return fmt.Errorf("compiling schema for %s: %w", a.model.Name(), err)
				}
			}
			data, err := a.model.JSONSchemaBytes()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "compile the document before printing it")
	return cmd
}
