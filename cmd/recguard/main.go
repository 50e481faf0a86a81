// Command recguard bootstraps schemas from sample payloads and checks
// payloads against saved schema source.
//
//	curl -s https://example.com/api | recguard fromjson Fact
//	recguard check fact.schema < payload.json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	recguard "github.com/hirokit/recguard"
)

const defaultRootName = "Root"

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recguard",
		Short:         "Schema-guarded decoding of JSON payloads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(logrus.DebugLevel)
		}
	}
	root.AddCommand(newFromJSONCmd(), newFromYAMLCmd(), newCheckCmd())
	return root
}

func newFromJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fromjson [name]",
		Short: "Infer schema source from a JSON object on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			reg := recguard.NewRegistry()
			def, err := recguard.InferJSON(reg, rootName(args), data)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), recguard.Print(def))
			return nil
		},
	}
}

func newFromYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fromyaml [name]",
		Short: "Infer schema source from a YAML mapping on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			reg := recguard.NewRegistry()
			def, err := recguard.InferYAML(reg, rootName(args), data)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), recguard.Print(def))
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "check <schema-file> [name]",
		Short: "Decode a JSON object on stdin against saved schema source",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			reg := recguard.NewRegistry()
			root, err := recguard.ParseSchemaSource(reg, string(src))
			if err != nil {
				return err
			}
			if len(args) == 2 {
				named, ok := reg.Lookup(args[1])
				if !ok {
					return fmt.Errorf("schema %q not defined in %s", args[1], args[0])
				}
				root = named
			}
			log.WithField("schema", root.Name()).Debug("schema loaded")

			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			opts := recguard.DecodeOptions{
				WarnFunc: func(schema, key string, value any) {
					log.WithFields(logrus.Fields{"schema": schema, "key": key}).
						Warn("unknown field dropped")
				},
			}
			if lenient {
				opts.Unknown = recguard.UnknownLenient
			}
			rec, err := recguard.DecodeJSON(root, data, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "drop unknown fields instead of failing")
	return cmd
}

func rootName(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return defaultRootName
}
