package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

func newCapabilitiesCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "Lista as capacidades permitidas a um papel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := user.ParseRole(role)
			if err != nil {
				return err
			}
			registry, err := capability.DefaultRegistry()
			if err != nil {
				return err
			}

			caps := registry.ListForRole(r)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Role: %s (%d capabilities)\n\n", r, len(caps))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMIN ROLE\tKIND\tREQUIRED")
			for _, c := range caps {
				kind := "read"
				if c.Destructive {
					kind = "destructive"
				} else if c.Write {
					kind = "write"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.MinRole, kind, strings.Join(c.RequiredParameters(), ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&role, "role", user.RoleViewer.String(), "papel (viewer, manager, admin, super_admin)")
	return cmd
}
