package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"credkit/internal/roster/models"
)

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List and add roster clients",
	}
	cmd.AddCommand(newClientsListCmd(), newClientsAddCmd())
	return cmd
}

func newClientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the roster, newest first",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTAGE\tEMAIL\tPHONE\tTAGS")
			for _, c := range e.roster.Roster(cmd.Context()) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Stage, dash(c.EmailMasked), dash(c.PhoneMasked), len(c.Tags))
			}
			return w.Flush()
		}),
	}
}

func newClientsAddCmd() *cobra.Command {
	var req models.AddClientRequest
	var stage string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client to the roster",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			req.Stage = models.Stage(stage)
			record, err := e.roster.AddClient(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", record.Name, record.ID)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&req.FirstName, "first-name", "", "First name (required)")
	f.StringVar(&req.LastName, "last-name", "", "Last name (required)")
	f.StringVar(&req.Email, "email", "", "Email address")
	f.StringVar(&req.Phone, "phone", "", "Phone number")
	f.StringVar(&req.Address, "address", "", "Mailing address")
	f.StringVar(&req.DOB, "dob", "", "Date of birth, YYYY-MM-DD")
	f.StringVar(&req.Last4SSN, "ssn4", "", "Last four SSN digits")
	f.StringSliceVar(&req.Tags, "tag", nil, "Tag, repeatable")
	f.StringVar(&req.Source, "source", "", "Lead source")
	f.StringVar(&stage, "stage", "", "prospect, active or pending (default prospect)")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
