// Copyright (C) 2025 ScyllaDB

package cqldecoder

import (
	"fmt"

	versioncmd "github.com/scylladb/cql-decoder/pkg/cmd/version"
	"github.com/scylladb/cql-decoder/pkg/cmdutil"
	"github.com/scylladb/cql-decoder/pkg/genericclioptions"
	"github.com/scylladb/cql-decoder/pkg/naming"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"k8s.io/klog/v2"
)

func NewCQLDecoderCommand(streams genericclioptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cql-decoder",
		Short: "Decodes CQL wire values.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...interface{}) {
				klog.V(2).Infof(format, v)
			}))
			if err != nil {
				return fmt.Errorf("can't set maxproc: %w", err)
			}

			err = cmdutil.ReadFlagsFromEnv(naming.EnvVarPrefix, cmd)
			if err != nil {
				return fmt.Errorf("can't read flags from env: %w", err)
			}

			return nil
		},
	}

	cmd.AddCommand(versioncmd.NewCmd(streams))
	cmd.AddCommand(NewDecodeCmd(streams))

	cmdutil.InstallKlog(cmd)

	return cmd
}
