package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tailored-agentic-units/sieve"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	convertInput     string
	convertFromProto bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert events between JSON Lines and delimited protobuf",
	Long: `Convert a JSON Lines event stream to length-prefixed protobuf
structs on stdout, or back with --from-proto.

The protobuf form carries the same portable fields as the JSON form:
severity and timestamp as strings, no trace or caller.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "in", "i", "-", "input file (- for stdin)")
	convertCmd.Flags().BoolVar(&convertFromProto, "from-proto", false, "read delimited protobuf, write JSON Lines")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, err := openInput(convertInput)
	if err != nil {
		return err
	}
	defer in.Close()

	if convertFromProto {
		return protoToJSON(cmd.Context(), in, cmd.OutOrStdout())
	}
	return jsonToProto(in, cmd.OutOrStdout())
}

func jsonToProto(r io.Reader, w io.Writer) error {
	events, err := sieve.ReadJSONLog(r)
	if err != nil {
		return err
	}
	for _, e := range events {
		s, err := sieve.EventToStruct(e)
		if err != nil {
			return err
		}
		if _, err := protodelim.MarshalTo(w, s); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	return nil
}

func protoToJSON(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	out := sieve.NewJSONObserver(w)
	for {
		s := &structpb.Struct{}
		if err := protodelim.UnmarshalFrom(br, s); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read event: %w", err)
		}
		e, err := sieve.EventFromStruct(s)
		if err != nil {
			return err
		}
		out.OnEvent(ctx, e)
	}
}
