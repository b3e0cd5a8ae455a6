package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const editTimeLayout = "2006-01-02 15:04"

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit workdays, customers, projects and invoices",
}

var (
	editWorkdayCustomer string
	editWorkdayProject  string
	editWorkdayStart    string
	editWorkdayEnd      string
)

var editWorkdayCmd = &cobra.Command{
	Use:   "workday <id>",
	Short: "Change a workday's interval, customer or project",
	Args:  cobra.ExactArgs(1),
	RunE:  runEditWorkday,
}

var (
	editCustomerName    string
	editCustomerContact string
	editCustomerOrgNr   string
	editCustomerAddress string
	editCustomerZip     string
	editCustomerMail    string
	editCustomerPhone   string
)

var editCustomerCmd = &cobra.Command{
	Use:   "customer <name>",
	Short: "Change a customer's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runEditCustomer,
}

var (
	editProjectName string
	editProjectLink string
)

var editProjectCmd = &cobra.Command{
	Use:   "project <name>",
	Short: "Change a project's name or link",
	Args:  cobra.ExactArgs(1),
	RunE:  runEditProject,
}

var (
	editInvoicePaid bool
	editInvoiceSent bool
)

var editInvoiceCmd = &cobra.Command{
	Use:   "invoice <id>",
	Short: "Mark an invoice as sent or paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runEditInvoice,
}

func init() {
	editWorkdayCmd.Flags().StringVarP(&editWorkdayCustomer, "customer", "c", "", "Move the workday to this customer")
	editWorkdayCmd.Flags().StringVarP(&editWorkdayProject, "project", "p", "", "Move the workday to this project")
	editWorkdayCmd.Flags().StringVar(&editWorkdayStart, "start", "", `New start ("2006-01-02 15:04")`)
	editWorkdayCmd.Flags().StringVar(&editWorkdayEnd, "end", "", `New end ("2006-01-02 15:04")`)

	editCustomerCmd.Flags().StringVar(&editCustomerName, "name", "", "Rename the customer")
	editCustomerCmd.Flags().StringVar(&editCustomerContact, "contact-person", "", "Contact person")
	editCustomerCmd.Flags().StringVar(&editCustomerOrgNr, "org-nr", "", "Organization number")
	editCustomerCmd.Flags().StringVar(&editCustomerAddress, "address", "", "Street address")
	editCustomerCmd.Flags().StringVar(&editCustomerZip, "zip-code", "", "Zip code")
	editCustomerCmd.Flags().StringVar(&editCustomerMail, "mail", "", "Mail address")
	editCustomerCmd.Flags().StringVar(&editCustomerPhone, "phone", "", "Phone number")

	editProjectCmd.Flags().StringVar(&editProjectName, "name", "", "Rename the project")
	editProjectCmd.Flags().StringVar(&editProjectLink, "link", "", "Project link")

	editInvoiceCmd.Flags().BoolVar(&editInvoicePaid, "paid", false, "Mark the invoice as paid (or unpaid)")
	editInvoiceCmd.Flags().BoolVar(&editInvoiceSent, "sent", false, "Mark the invoice as sent (or unsent)")

	editCmd.AddCommand(editWorkdayCmd)
	editCmd.AddCommand(editCustomerCmd)
	editCmd.AddCommand(editProjectCmd)
	editCmd.AddCommand(editInvoiceCmd)
}

func runEditWorkday(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid workday id %q", args[0])
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	wd, err := a.store.WorkdayByID(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if editWorkdayCustomer != "" {
		customer, err := a.store.CustomerByName(ctx, editWorkdayCustomer)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		wd.CustomerID = customer.ID
	}
	if editWorkdayProject != "" {
		project, err := a.store.ProjectByName(ctx, editWorkdayProject)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if project.CustomerID != wd.CustomerID {
			return fmt.Errorf("project %q belongs to another customer", project.Name)
		}
		wd.ProjectID = project.ID
	}
	if editWorkdayStart != "" {
		start, err := time.ParseInLocation(editTimeLayout, editWorkdayStart, time.Local)
		if err != nil {
			return fmt.Errorf("invalid start %q: expected the format %q", editWorkdayStart, editTimeLayout)
		}
		wd.Start = start
	}
	if editWorkdayEnd != "" {
		end, err := time.ParseInLocation(editTimeLayout, editWorkdayEnd, time.Local)
		if err != nil {
			return fmt.Errorf("invalid end %q: expected the format %q", editWorkdayEnd, editTimeLayout)
		}
		wd.End = &end
	}
	if wd.End != nil && wd.End.Before(wd.Start) {
		return fmt.Errorf("end %s is before start %s",
			wd.End.Format(editTimeLayout), wd.Start.Format(editTimeLayout))
	}

	if err := a.store.UpdateWorkday(ctx, wd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	color.Green("Updated workday %d", wd.ID)
	return nil
}

func runEditCustomer(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	customer, err := a.store.CustomerByName(ctx, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		customer.Name = editCustomerName
	}
	if flags.Changed("contact-person") {
		customer.ContactPerson = editCustomerContact
	}
	if flags.Changed("org-nr") {
		customer.OrgNr = editCustomerOrgNr
	}
	if flags.Changed("address") {
		customer.Address = editCustomerAddress
	}
	if flags.Changed("zip-code") {
		customer.ZipCode = editCustomerZip
	}
	if flags.Changed("mail") {
		customer.Mail = editCustomerMail
	}
	if flags.Changed("phone") {
		customer.Phone = editCustomerPhone
	}

	if err := a.store.UpdateCustomer(ctx, customer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	color.Green("Updated customer %s", customer.Name)
	return nil
}

func runEditProject(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	project, err := a.store.ProjectByName(ctx, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		project.Name = editProjectName
	}
	if flags.Changed("link") {
		project.Link = editProjectLink
	}

	if err := a.store.UpdateProject(ctx, project); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	color.Green("Updated project %s", project.Name)
	return nil
}

func runEditInvoice(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice id %q", args[0])
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	inv, err := a.store.InvoiceByID(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	flags := cmd.Flags()
	if !flags.Changed("paid") && !flags.Changed("sent") {
		return fmt.Errorf("nothing to change, pass --paid or --sent")
	}
	if flags.Changed("paid") {
		inv.Paid = editInvoicePaid
	}
	if flags.Changed("sent") {
		inv.Sent = editInvoiceSent
	}

	if err := a.store.UpdateInvoice(ctx, inv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	color.Green("Updated invoice %d", inv.ID)
	return nil
}
