package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of lower-case values.
type enumValue struct {
	target  *string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, def string, allowed ...string) *enumValue {
	*target = def
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range e.allowed {
		if s == a {
			*e.target = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return strings.Join(e.allowed, "|") }

// enumFlag registers an enum flag with shell completion of its values.
func enumFlag(cmd *cobra.Command, target *string, name, def, usage string, allowed ...string) {
	v := newEnumValue(target, def, allowed...)
	cmd.Flags().Var(v, name, usage)
	_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return allowed, cobra.ShellCompDirectiveNoFileComp
	})
}

const (
	formatJSON  = "json"
	formatTable = "table"
)

func formatFlag(cmd *cobra.Command, target *string, def string) {
	enumFlag(cmd, target, "format", def, "Output format", formatJSON, formatTable)
}
