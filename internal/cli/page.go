package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// PageOptions holds flags for the page command.
type PageOptions struct {
	*RootOptions
	IrisOnly     bool
	OutputFormat string
}

// NewPageCommand creates the page command.
func NewPageCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PageOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "page <container-iri> <page-nr>",
		Short: "Print one page of a container's annotations",
		Long: `Print one page of a container's annotations. Pages are numbered from 0
and hold the configured page size. With --iris the page lists annotation
IRIs instead of embedding the annotations.

Example:
  wapgraph page http://localhost:8080/wap/ 0
  wapgraph page http://localhost:8080/wap/maps/ 2 --iris --output-format jsonld`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return newFormatter(rootOpts, cmd).Fail(fmt.Errorf("invalid page number %q", args[1]))
			}
			return runPage(opts, args[0], n, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.IrisOnly, "iris", false, "list annotation IRIs only")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "syntax of the printed page")
	return cmd
}

func runPage(opts *PageOptions, container string, n int, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	page, err := e.svc.GetPage(e.ctx(cmd), container, n, opts.IrisOnly)
	if err != nil {
		return e.out.Fail(err)
	}
	e.out.VerboseLog("page %s holds %d annotation(s)", page.IRI(), len(page.Items()))

	format := e.outputFormat(opts.OutputFormat)
	body, err := page.ToText(format)
	if err != nil {
		return e.out.Fail(err)
	}
	return e.out.Success(Document{IRI: page.IRI(), Format: format, Body: body})
}
