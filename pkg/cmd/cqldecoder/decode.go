// Copyright (C) 2025 ScyllaDB

package cqldecoder

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scylladb/cql-decoder/pkg/cmdutil"
	"github.com/scylladb/cql-decoder/pkg/cqltype"
	"github.com/scylladb/cql-decoder/pkg/genericclioptions"
	"github.com/scylladb/cql-decoder/pkg/materializer"
	"github.com/scylladb/cql-decoder/pkg/typeparser"
	"github.com/spf13/cobra"
	"gopkg.in/inf.v0"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"
)

const (
	outputFormatText = "text"
	outputFormatYAML = "yaml"
)

type DecodeOptions struct {
	TypeString      string
	ProtocolVersion int
	Output          string

	streams genericclioptions.IOStreams

	window  []byte
	factory *cqltype.Factory
	typeRef *cqltype.TypeReference
}

func NewDecodeOptions(streams genericclioptions.IOStreams) *DecodeOptions {
	return &DecodeOptions{
		ProtocolVersion: 4,
		Output:          outputFormatText,

		streams: streams,
	}
}

func NewDecodeCmd(streams genericclioptions.IOStreams) *cobra.Command {
	o := NewDecodeOptions(streams)

	cmd := &cobra.Command{
		Use:   "decode [HEX]",
		Short: "Decodes a single hex encoded CQL wire value.",
		Long: `decode interprets a hex encoded CQL value window against a declared type and prints the decoded value.

The window is taken from the positional argument, or from stdin when no argument is given.`,
		Example: `  # Decode a 32-bit int.
  cql-decoder decode --type=int 00000539

  # Decode a tuple encoded at protocol version 2, as YAML.
  cql-decoder decode --type='tuple<int,text>' --protocol-version=2 --output=yaml 00000004000004d200000003666f6f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := o.Validate()
			if err != nil {
				return err
			}

			err = o.Complete(cmd, args)
			if err != nil {
				return err
			}

			err = o.Run()
			if err != nil {
				return err
			}

			return nil
		},

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().StringVar(&o.TypeString, "type", o.TypeString, "CQL type of the value, e.g. \"list<tuple<int,text>>\".")
	cmd.Flags().IntVar(&o.ProtocolVersion, "protocol-version", o.ProtocolVersion, "Native protocol version the value was encoded with.")
	cmd.Flags().StringVar(&o.Output, "output", o.Output, fmt.Sprintf("Output format. One of: %s.", strings.Join([]string{outputFormatText, outputFormatYAML}, ", ")))

	return cmd
}

func (o *DecodeOptions) Validate() error {
	var errs []error

	if len(o.TypeString) == 0 {
		errs = append(errs, fmt.Errorf("type can't be empty"))
	}

	if o.ProtocolVersion < 1 {
		errs = append(errs, fmt.Errorf("protocol-version %d is not a valid native protocol version", o.ProtocolVersion))
	}

	switch o.Output {
	case outputFormatText, outputFormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unsupported output format %q", o.Output))
	}

	return utilerrors.NewAggregate(errs)
}

func (o *DecodeOptions) Complete(cmd *cobra.Command, args []string) error {
	var rawHex string
	switch len(args) {
	case 0:
		data, err := io.ReadAll(o.streams.In)
		if err != nil {
			return fmt.Errorf("can't read value from stdin: %w", err)
		}
		rawHex = strings.TrimSpace(string(data))

	case 1:
		rawHex = strings.TrimSpace(args[0])

	default:
		return cmdutil.UsageError(cmd, "expected at most one positional argument, got %d", len(args))
	}

	var err error
	o.window, err = hex.DecodeString(rawHex)
	if err != nil {
		return fmt.Errorf("can't decode hex input: %w", err)
	}

	parsed, err := typeparser.Parse(o.TypeString)
	if err != nil {
		return fmt.Errorf("can't parse type %q: %w", o.TypeString, err)
	}

	o.factory = cqltype.NewFactory()
	o.typeRef, err = o.factory.Reference(parsed)
	if err != nil {
		return fmt.Errorf("can't resolve type %q: %w", o.TypeString, err)
	}

	return nil
}

func (o *DecodeOptions) Run() error {
	defer o.typeRef.Release()

	klog.V(2).Infof("Decoding a %d byte window as %q at protocol version %d", len(o.window), o.TypeString, o.ProtocolVersion)
	klog.V(4).Infof("Resolved type graph holds %d owned composite allocations", o.factory.LiveOwned())

	v, err := o.typeRef.Get().Deserialize(cqltype.NewBuffer(o.window), o.ProtocolVersion)
	if err != nil {
		return fmt.Errorf("can't deserialize value: %w", err)
	}

	materialized, err := materializer.Materialize(v)
	if err != nil {
		return fmt.Errorf("can't materialize value: %w", err)
	}

	switch o.Output {
	case outputFormatYAML:
		data, err := yaml.Marshal(plain(materialized))
		if err != nil {
			return fmt.Errorf("can't marshal output: %w", err)
		}

		_, err = o.streams.Out.Write(data)
		if err != nil {
			return fmt.Errorf("can't write output: %w", err)
		}

	default:
		_, err = fmt.Fprintf(o.streams.Out, "%v\n", plain(materialized))
		if err != nil {
			return fmt.Errorf("can't write output: %w", err)
		}
	}

	return nil
}

// plain maps materialized values onto printable, JSON friendly shapes.
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return hex.EncodeToString(t)
	case uuid.UUID:
		return t.String()
	case *inf.Dec:
		return t.String()
	case *big.Int:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []interface{}:
		res := make([]interface{}, 0, len(t))
		for _, e := range t {
			res = append(res, plain(e))
		}
		return res
	default:
		return v
	}
}
