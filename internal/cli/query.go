package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wapgraph/internal/querybuild"
	"github.com/roach88/wapgraph/internal/querysql"
)

// QueryOptions holds flags for the query command. Each property has an
// exact flag and a -contains flag; setting both is a conflicting request.
type QueryOptions struct {
	*RootOptions
	Exact        map[querybuild.Property]*string
	Contains     map[querybuild.Property]*string
	Explain      bool
	OutputFormat string
}

// Explanation is the query a request compiles to.
type Explanation struct {
	Filters string `json:"filters"`
	SPARQL  string `json:"sparql"`
	SQL     string `json:"sql"`
	Params  []any  `json:"params"`
}

func (x Explanation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", x.Filters, strings.TrimRight(x.SPARQL, "\n"))
	fmt.Fprintf(&b, "-- sql\n%s\n-- params %v", x.SQL, x.Params)
	return b.String()
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{
		RootOptions: rootOpts,
		Exact:       map[querybuild.Property]*string{},
		Contains:    map[querybuild.Property]*string{},
	}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Find annotations by target, body, selector or creator",
		Long: `Find the stored annotations that satisfy every given filter and print them
as one page. An exact filter matches the IRI or literal value; a -contains
filter matches any value that contains the text.

Example:
  wapgraph query --target http://example.org/map1
  wapgraph query --target-contains map --creator "Jane Doe"
  wapgraph query --body-contains river --explain`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	for _, p := range querybuild.Properties {
		opts.Exact[p] = cmd.Flags().String(string(p), "", fmt.Sprintf("%s equal to the value", p))
		opts.Contains[p] = cmd.Flags().String(string(p)+"-contains", "", fmt.Sprintf("%s containing the text", p))
	}
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "print the compiled query instead of running it")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "syntax of the printed page")
	return cmd
}

// Filters collects the criteria set on the command line, in property order.
func (o *QueryOptions) Filters() querybuild.Filters {
	var f querybuild.Filters
	for _, p := range querybuild.Properties {
		if v := o.Exact[p]; v != nil && *v != "" {
			f = append(f, querybuild.Criterion{Property: p, Value: *v, Match: querybuild.MatchExact})
		}
		if v := o.Contains[p]; v != nil && *v != "" {
			f = append(f, querybuild.Criterion{Property: p, Value: *v, Match: querybuild.MatchContains})
		}
	}
	return f
}

func explain(f querybuild.Filters) (Explanation, error) {
	sparql, err := querybuild.Explain(f)
	if err != nil {
		return Explanation{}, err
	}
	q, err := querybuild.Build(f)
	if err != nil {
		return Explanation{}, err
	}
	sql, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return Explanation{}, err
	}
	return Explanation{Filters: f.String(), SPARQL: sparql, SQL: sql, Params: params}, nil
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	filters := opts.Filters()

	// --explain needs no database
	if opts.Explain {
		out := newFormatter(opts.RootOptions, cmd)
		x, err := explain(filters)
		if err != nil {
			return out.Fail(err)
		}
		return out.Success(x)
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	page, err := e.svc.GetDynamicPage(e.ctx(cmd), filters)
	if err != nil {
		return e.out.Fail(err)
	}
	e.out.VerboseLog("%d annotation(s) match %s", len(page.Items()), filters)

	format := e.outputFormat(opts.OutputFormat)
	body, err := page.ToText(format)
	if err != nil {
		return e.out.Fail(err)
	}
	return e.out.Success(Document{IRI: page.IRI(), Format: format, Body: body})
}
