// Copyright (C) 2025 ScyllaDB

package version

import (
	"fmt"

	"github.com/scylladb/cql-decoder/pkg/genericclioptions"
	"github.com/scylladb/cql-decoder/pkg/version"
	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

type Options struct {
}

func NewOptions(streams genericclioptions.IOStreams) *Options {
	return &Options{}
}

func NewCmd(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(streams)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Long:  `version prints the program version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := o.Validate()
			if err != nil {
				return err
			}

			err = o.Complete()
			if err != nil {
				return err
			}

			err = o.Run(streams, cmd)
			if err != nil {
				return err
			}

			return nil
		},
		ValidArgs: []string{},

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	return cmd
}

func (o *Options) Validate() error {
	var errs []error

	return utilerrors.NewAggregate(errs)
}

func (o *Options) Complete() error {
	return nil
}

func (o *Options) Run(streams genericclioptions.IOStreams, cmd *cobra.Command) error {
	_, err := fmt.Fprintf(streams.Out, "%s: %s\n", cmd.Name(), version.Get())
	if err != nil {
		return fmt.Errorf("can't write version: %w", err)
	}

	return nil
}
