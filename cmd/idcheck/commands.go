package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"idcheck/internal/choices"
	"idcheck/internal/idnumber"
	"idcheck/internal/idnumber/failure"
)

// errRejected signals a well-formed invocation whose identifier failed.
var errRejected = errors.New("identifier rejected")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "idcheck",
		Short:         "Validate and format national identifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd(), newTypesCmd(), newChoicesCmd())
	return root
}

type validateOptions struct {
	strict   bool
	required bool
	asJSON   bool
}

type validateOutput struct {
	Type    string            `json:"type"`
	Valid   bool              `json:"valid"`
	Value   string            `json:"value,omitempty"`
	Display string            `json:"display,omitempty"`
	Class   string            `json:"class,omitempty"`
	Kind    string            `json:"kind,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions
	cmd := &cobra.Command{
		Use:   "validate <type> <value>",
		Short: "Validate one identifier and print its canonical and display forms",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), idnumber.Default, args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "require the fully punctuated display form")
	cmd.Flags().BoolVar(&opts.required, "required", false, "treat an empty value as a failure")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the verdict as JSON")
	return cmd
}

func runValidate(out io.Writer, reg *idnumber.Registry, rawType, value string, opts validateOptions) error {
	typ, err := reg.ParseType(rawType)
	if err != nil {
		return fmt.Errorf("unknown identifier type %q (see `idcheck types`)", rawType)
	}

	res, err := reg.Validate(typ, value, idnumber.Options{Strict: opts.strict, Required: opts.required})
	verdict := validateOutput{Type: typ.String(), Valid: err == nil}
	if err != nil {
		fe, ok := failure.As(err)
		if !ok {
			return err
		}
		verdict.Class = failure.ClassName(fe.Class)
		verdict.Kind = string(fe.Kind)
		verdict.Params = fe.Params
	} else {
		verdict.Value = res.Value
		verdict.Display = res.Display
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdict); err != nil {
			return err
		}
	} else {
		printVerdict(out, verdict, res.Empty)
	}

	if !verdict.Valid {
		return errRejected
	}
	return nil
}

func printVerdict(out io.Writer, v validateOutput, empty bool) {
	switch {
	case !v.Valid:
		fmt.Fprintf(out, "invalid %s: %s (%s)%s\n", v.Type, v.Class, v.Kind, formatParams(v.Params))
	case empty:
		fmt.Fprintf(out, "empty %s\n", v.Type)
	default:
		fmt.Fprintf(out, "valid %s\n  value:   %s\n  display: %s\n", v.Type, v.Value, v.Display)
	}
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	return " " + strings.Join(parts, " ")
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported identifier types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTypes(cmd.OutOrStdout(), idnumber.Default)
		},
	}
}

func runTypes(out io.Writer, reg *idnumber.Registry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCOUNTRY\tLENGTH\tCHECK\tNAME")
	for _, d := range reg.Definitions() {
		sh := d.Shape()
		length := fmt.Sprint(sh.MinLength())
		if sh.MaxLength() != sh.MinLength() {
			length = fmt.Sprintf("%d-%d", sh.MinLength(), sh.MaxLength())
		}
		check := "-"
		if alg, ok := d.Algorithm(); ok {
			check = alg.Name()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Type(), d.Country(), length, check, d.Name())
	}
	return tw.Flush()
}

func newChoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choices [<country> <kind>]",
		Short: "List choice tables, or print one table",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChoices(cmd.OutOrStdout(), choices.Default(), args)
		},
	}
}

func runChoices(out io.Writer, catalog *choices.Catalog, args []string) error {
	if len(args) == 0 {
		for _, k := range catalog.Catalogs() {
			fmt.Fprintf(out, "%s %s\n", strings.ToLower(k.Country), k.Kind)
		}
		return nil
	}

	entries, err := catalog.Lookup(args[0], args[1])
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Code, e.Label)
	}
	return tw.Flush()
}
