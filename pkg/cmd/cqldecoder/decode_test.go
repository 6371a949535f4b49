// Copyright (C) 2025 ScyllaDB

package cqldecoder_test

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/scylladb/cql-decoder/pkg/cmd/cqldecoder"
	"github.com/scylladb/cql-decoder/pkg/genericclioptions"
	"k8s.io/klog/v2"
)

func TestMain(m *testing.M) {
	klog.InitFlags(flag.CommandLine)
	os.Exit(m.Run())
}

func TestDecodeOptionsValidate(t *testing.T) {
	t.Parallel()

	ts := []struct {
		Name          string
		Mutate        func(o *cqldecoder.DecodeOptions)
		ExpectedError string
	}{
		{
			Name: "valid defaults with a type",
			Mutate: func(o *cqldecoder.DecodeOptions) {
				o.TypeString = "int"
			},
			ExpectedError: "",
		},
		{
			Name:          "missing type",
			Mutate:        func(o *cqldecoder.DecodeOptions) {},
			ExpectedError: "type can't be empty",
		},
		{
			Name: "invalid protocol version",
			Mutate: func(o *cqldecoder.DecodeOptions) {
				o.TypeString = "int"
				o.ProtocolVersion = 0
			},
			ExpectedError: "protocol-version 0 is not a valid native protocol version",
		},
		{
			Name: "unsupported output format",
			Mutate: func(o *cqldecoder.DecodeOptions) {
				o.TypeString = "int"
				o.Output = "json"
			},
			ExpectedError: `unsupported output format "json"`,
		},
	}

	for _, test := range ts {
		t.Run(test.Name, func(t *testing.T) {
			t.Parallel()

			o := cqldecoder.NewDecodeOptions(genericclioptions.IOStreams{})
			test.Mutate(o)

			err := o.Validate()
			if len(test.ExpectedError) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil || err.Error() != test.ExpectedError {
				t.Errorf("expected error %q, got %v", test.ExpectedError, err)
			}
		})
	}
}

func TestDecodeCommand(t *testing.T) {
	ts := []struct {
		Name           string
		Args           []string
		Stdin          string
		ExpectedOutput string
	}{
		{
			Name:           "int from argument",
			Args:           []string{"decode", "--type=int", "00000539"},
			ExpectedOutput: "1337\n",
		},
		{
			Name:           "tuple from stdin as yaml",
			Args:           []string{"decode", "--type=tuple<int,text>", "--output=yaml"},
			Stdin:          "000000040000052900000003666f6f\n",
			ExpectedOutput: "- 1321\n- foo\n",
		},
		{
			Name:           "decimal",
			Args:           []string{"decode", "--type=decimal", "000000023039"},
			ExpectedOutput: "123.45\n",
		},
	}

	for _, test := range ts {
		t.Run(test.Name, func(t *testing.T) {
			var out bytes.Buffer
			streams := genericclioptions.IOStreams{
				In:     strings.NewReader(test.Stdin),
				Out:    &out,
				ErrOut: &out,
			}

			cmd := cqldecoder.NewCQLDecoderCommand(streams)
			cmd.SetArgs(test.Args)

			err := cmd.Execute()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if out.String() != test.ExpectedOutput {
				t.Errorf("expected output %q, got %q", test.ExpectedOutput, out.String())
			}
		})
	}
}
