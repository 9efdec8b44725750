package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/wapgraph/internal/model"
)

// ContainerOptions holds flags for the container subcommands.
type ContainerOptions struct {
	*RootOptions
	Slug         string
	InputFormat  string
	OutputFormat string
	Minimal      bool
	IrisOnly     bool
}

// NewContainerCommand creates the container command group.
func NewContainerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "container",
		Short: "Create and read containers",
	}
	cmd.AddCommand(newContainerCreateCommand(rootOpts))
	cmd.AddCommand(newContainerGetCommand(rootOpts))
	return cmd
}

func newContainerCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContainerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <parent-iri> <file>",
		Short: "Create a container below a parent container",
		Long: `Create a container below a parent container. The payload must describe an
ldp:BasicContainer that is an as:OrderedCollection. The new container is
named <parent-iri><slug>/, with a generated slug when --slug is empty.

Example:
  wapgraph container create http://localhost:8080/wap/ maps.nq --slug maps
  cat maps.jsonld | wapgraph container create http://localhost:8080/wap/ - --input-format jsonld`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContainerCreate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Slug, "slug", "", "last path segment of the new container")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "payload syntax (default: from the file extension, then the configuration)")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "syntax of the printed container")
	return cmd
}

func runContainerCreate(opts *ContainerOptions, parent, path string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	text, err := readPayload(cmd, path)
	if err != nil {
		return e.out.Fail(err)
	}
	c, err := e.svc.PostContainer(e.ctx(cmd), parent, text, e.inputFormat(opts.InputFormat, path), opts.Slug)
	if err != nil {
		return e.out.Fail(err)
	}
	e.out.VerboseLog("created container %s", c.IRI())

	format := e.outputFormat(opts.OutputFormat)
	body, err := c.ToText(format)
	if err != nil {
		return e.out.Fail(err)
	}
	return e.out.Success(Document{IRI: c.IRI(), ETag: c.ETagQuoted(), Format: format, Body: body})
}

func newContainerGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContainerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <iri>",
		Short: "Print the representation of a container",
		Long: `Print the representation of a container: its description, the number of
annotations, links to the first and last page and its sub-containers.

Example:
  wapgraph container get http://localhost:8080/wap/
  wapgraph container get http://localhost:8080/wap/maps/ --minimal --iris`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContainerGet(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Minimal, "minimal", false, "omit ldp:contains links to sub-containers")
	cmd.Flags().BoolVar(&opts.IrisOnly, "iris", false, "link to pages that list annotation IRIs only")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "syntax of the printed container")
	return cmd
}

func runContainerGet(opts *ContainerOptions, iri string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	view, err := e.svc.GetContainer(e.ctx(cmd), iri, model.Preferences{
		PreferMinimal:  opts.Minimal,
		PreferIrisOnly: opts.IrisOnly,
	})
	if err != nil {
		return e.out.Fail(err)
	}

	format := e.outputFormat(opts.OutputFormat)
	body, err := view.ToText(format)
	if err != nil {
		return e.out.Fail(err)
	}
	return e.out.Success(Document{IRI: view.IRI(), ETag: view.ETagQuoted(), Format: format, Body: body})
}
