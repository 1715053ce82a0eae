package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"strack/internal/api"
	"strack/internal/config"
)

// exportDocument is the full registry projection, in the same shape the
// HTTP API serves.
type exportDocument struct {
	CurrentSprintID string               `json:"currentSprintId,omitempty" yaml:"currentSprintId,omitempty"`
	Sprints         []api.SprintResponse `json:"sprints" yaml:"sprints"`
	TeamMembers     []api.MemberResponse `json:"teamMembers" yaml:"teamMembers"`
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all sprints and team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _ := openRegistry(cfg)

			doc := exportDocument{
				Sprints:     api.NewSprintList(reg.Sprints()),
				TeamMembers: api.NewMemberList(reg.TeamMembers()),
			}
			if current := reg.CurrentSprint(); current != nil {
				doc.CurrentSprintID = current.ID
			}

			w := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "yaml":
				return yaml.NewEncoder(w).Encode(doc)
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			default:
				return fmt.Errorf("unknown format %q (yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}
