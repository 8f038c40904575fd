package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"rhystmorgan/contactbook/internal/book"
	"rhystmorgan/contactbook/internal/models"
	"rhystmorgan/contactbook/internal/storage"
	"rhystmorgan/contactbook/internal/utils"
)

// statusError carries a one-line user message out of RunE while keeping the
// underlying error for errors.Is.
type statusError struct {
	err error
}

func (e statusError) Error() string {
	return models.UserMessage(e.err)
}

func (e statusError) Unwrap() error {
	return e.err
}

func fail(err error) error {
	if err == nil {
		return nil
	}
	return statusError{err: err}
}

func newAddCmd(c *cli) *cobra.Command {
	var phone, email string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := c.book.Add(
				utils.FormatName(args[0]),
				utils.FormatPhone(phone),
				utils.FormatEmail(email),
			)
			if err != nil {
				return fail(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact saved! (%s)\n", contact.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return c.book.Watch(ctx, book.DefaultDebounce, func(result storage.LoadResult) {
					printList(out, result)
				})
			}

			result := c.book.Load()
			if result.Fault != nil {
				return fail(result.Fault)
			}
			printList(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reprint the list whenever the contacts file changes")
	return cmd
}

func printList(out io.Writer, result storage.LoadResult) {
	if result.Fault != nil {
		fmt.Fprintln(out, models.UserMessage(result.Fault))
		return
	}
	fmt.Fprintln(out, utils.RenderContactTable(result.Contacts, "CONTACTS"))
	if notice := utils.FormatRejected(result.Rejected); notice != "" {
		fmt.Fprintln(out, notice)
	}
}

func newSearchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "search [name]",
		Short: "Find contacts whose name contains the given text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := c.book.Search(strings.TrimSpace(args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), utils.RenderContactTable(found, "SEARCH RESULTS"))
			return nil
		},
	}
}

func newUpdateCmd(c *cli) *cobra.Command {
	var name, phone, email string

	cmd := &cobra.Command{
		Use:   "update [number]",
		Short: "Update a contact by its list number",
		Long: `Update the contact shown at the given number by "contactbook list".
Only the flags you pass are changed; the other fields keep their values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, err := c.book.Update(strings.TrimSpace(args[0]), book.Changes{
				Name:  utils.FormatName(name),
				Phone: utils.FormatPhone(phone),
				Email: utils.FormatEmail(email),
			})
			if err != nil {
				return fail(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact updated! (%s)\n", contact.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [number]",
		Short: "Delete a contact by its list number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := strings.TrimSpace(args[0])

			confirmed := yes
			if !confirmed {
				preview, err := c.book.Delete(index, false)
				if err != nil {
					return fail(err)
				}
				confirmed = confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete %s? (y/n): ", preview.Removed.Name))
			}

			result, err := c.book.Delete(index, confirmed)
			if err != nil {
				return fail(err)
			}
			if result.Cancelled {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact deleted! (%s)\n", result.Removed.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write all contacts to the JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := c.book.Export()
			if err != nil {
				return fail(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contacts to %s!\n", count, c.book.MirrorPath())
			return nil
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge contacts from the JSON file into the main list",
		Long: `Reads the JSON file and adds every contact whose name (ignoring case)
is not already in the main list. Existing contacts are never changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			preview, err := c.book.PreviewImport()
			if err != nil {
				return fail(err)
			}
			if len(preview.Candidates) == 0 {
				if notice := utils.FormatRejected(preview.Rejected); notice != "" {
					fmt.Fprintln(out, notice+" Nothing to import.")
					return nil
				}
				fmt.Fprintln(out, "JSON file is empty.")
				return nil
			}

			fmt.Fprintf(out, "Found %d contacts in JSON.\n", len(preview.Candidates))
			fmt.Fprintln(out, utils.RenderContactTable(preview.Candidates, "PREVIEW IMPORT"))
			if notice := utils.FormatRejected(preview.Rejected); notice != "" {
				fmt.Fprintln(out, notice)
			}

			if !yes && !confirm(cmd.InOrStdin(), out, "Do you want to merge these into your main contacts? (y/n): ") {
				fmt.Fprintln(out, "Import cancelled.")
				return nil
			}

			added, err := c.book.Import(preview.Candidates)
			if err != nil {
				return fail(err)
			}
			fmt.Fprintf(out, "Successfully imported %d new contacts!\n", added)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "merge without asking")
	return cmd
}

func newFaultsCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "faults",
		Short: "Show the most recent entries of the fault log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			faults, err := c.book.Faults().Recent(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(faults) == 0 {
				fmt.Fprintln(out, "No faults recorded.")
				return nil
			}
			for _, fault := range faults {
				fmt.Fprintln(out, fault.String())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

// confirm prints prompt and reads one line; only "y" (any case) confirms.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
