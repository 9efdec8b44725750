package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitResult is the outcome of the init command.
type InitResult struct {
	IRI      string `json:"iri"`
	Database string `json:"database"`
	Created  bool   `json:"created"`
}

func (r InitResult) String() string {
	if r.Created {
		return fmt.Sprintf("created root container %s in %s", r.IRI, r.Database)
	}
	return fmt.Sprintf("root container %s already exists in %s", r.IRI, r.Database)
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and the root container",
		Long: `Create the SQLite database (if missing) and the root container at the
configured base IRI. Running init on an initialized database is a no-op.

Example:
  wapgraph init --db ./wap.db
  wapgraph init --config ./wapgraph.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			return e.out.Success(InitResult{
				IRI:      e.svc.BaseIRI(),
				Database: e.cfg.Database,
				Created:  e.rootCreated,
			})
		},
	}
}
