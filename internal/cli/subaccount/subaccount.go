// Package subaccount holds all cli commands related to sub-accounts and their contacts
//
// e.g., pipeboard subaccount ...
package subaccount

import (
	"github.com/spf13/cobra"
)

// SubAccountCmd returns the subaccount parent command
func SubAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subaccount",
		Aliases: []string{"sa"},
		Short:   "Manage sub-accounts and contacts",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ContactCmd())

	return cmd
}
