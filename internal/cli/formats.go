package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wapgraph/internal/codec"
)

// FormatList lists the registered syntaxes.
type FormatList []codec.FormatInfo

func (l FormatList) String() string {
	var b strings.Builder
	for i, info := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-9s %-22s %-8s %s", info.Name, info.MIMEType, info.Extension, info.Description)
	}
	return b.String()
}

// NewFormatsCommand creates the formats command.
func NewFormatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "formats",
		Short:         "List the supported RDF syntaxes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list FormatList
			for _, name := range codec.FormatNames() {
				list = append(list, codec.FormatRegistry[codec.Format(name)])
			}
			return newFormatter(rootOpts, cmd).Success(list)
		},
	}
}
