package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AnnotationOptions holds flags for the annotation subcommands.
type AnnotationOptions struct {
	*RootOptions
	InputFormat  string
	OutputFormat string
	ETag         string
}

// PostResult lists the annotations stored by one post.
type PostResult struct {
	Container   string     `json:"container"`
	Annotations []Document `json:"annotations"`
}

func (r PostResult) String() string {
	var b strings.Builder
	for i, d := range r.Annotations {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s", d.IRI, d.ETag)
	}
	return b.String()
}

// DeleteResult is the outcome of the delete command.
type DeleteResult struct {
	IRI     string `json:"iri"`
	Deleted bool   `json:"deleted"`
}

func (r DeleteResult) String() string { return "deleted " + r.IRI }

// NewAnnotationCommand creates the annotation command group.
func NewAnnotationCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotation",
		Short: "Post, read and delete annotations",
	}
	cmd.AddCommand(newAnnotationPostCommand(rootOpts))
	cmd.AddCommand(newAnnotationGetCommand(rootOpts))
	cmd.AddCommand(newAnnotationDeleteCommand(rootOpts))
	return cmd
}

func newAnnotationPostCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnnotationOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "post <container-iri> <file>",
		Short: "Store the annotations of a payload in a container",
		Long: `Store every oa:Annotation found in the payload in the container. Each
annotation gets an IRI below the container and is appended to the
container's annotation sequence; all of them are stored or none is.

Example:
  wapgraph annotation post http://localhost:8080/wap/ note.jsonld
  wapgraph annotation post http://localhost:8080/wap/maps/ - --input-format nquads < notes.nq`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotationPost(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "payload syntax (default: from the file extension, then the configuration)")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "syntax of the stored annotations in JSON output")
	return cmd
}

func runAnnotationPost(opts *AnnotationOptions, container, path string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	text, err := readPayload(cmd, path)
	if err != nil {
		return e.out.Fail(err)
	}
	annos, err := e.svc.PostAnnotations(e.ctx(cmd), container, text, e.inputFormat(opts.InputFormat, path))
	if err != nil {
		return e.out.Fail(err)
	}

	format := e.outputFormat(opts.OutputFormat)
	result := PostResult{Container: container}
	for _, a := range annos {
		body, err := a.ToText(format)
		if err != nil {
			return e.out.Fail(err)
		}
		e.out.VerboseLog("stored annotation %s", a.IRI())
		result.Annotations = append(result.Annotations, Document{IRI: a.IRI(), ETag: a.ETagQuoted(), Format: format, Body: body})
	}
	return e.out.Success(result)
}

func newAnnotationGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnnotationOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <iri>",
		Short: "Print a stored annotation",
		Long: `Print a stored annotation in the requested syntax. Deleted annotations
do not exist.

Example:
  wapgraph annotation get http://localhost:8080/wap/0190a1b2-... --output-format jsonld`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotationGet(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "syntax of the printed annotation")
	return cmd
}

func runAnnotationGet(opts *AnnotationOptions, iri string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	a, err := e.svc.GetAnnotation(e.ctx(cmd), iri)
	if err != nil {
		return e.out.Fail(err)
	}
	format := e.outputFormat(opts.OutputFormat)
	body, err := a.ToText(format)
	if err != nil {
		return e.out.Fail(err)
	}
	return e.out.Success(Document{IRI: a.IRI(), ETag: a.ETagQuoted(), Format: format, Body: body})
}

func newAnnotationDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnnotationOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <iri>",
		Short: "Delete an annotation",
		Long: `Mark an annotation deleted and remove it from its container. With --etag
the deletion only happens when the stored annotation still has that etag.

Example:
  wapgraph annotation delete http://localhost:8080/wap/0190a1b2-... --etag '"3f2a..."'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotationDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ETag, "etag", "", "required current etag (quoted or bare)")
	return cmd
}

func runAnnotationDelete(opts *AnnotationOptions, iri string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.svc.DeleteAnnotation(e.ctx(cmd), iri, opts.ETag); err != nil {
		return e.out.Fail(err)
	}
	return e.out.Success(DeleteResult{IRI: iri, Deleted: true})
}
