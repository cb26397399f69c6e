package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shasthoai/store-backend/internal/store"
)

var qtyFlag int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change the cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cart entries and totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printCart(cmd, session.Cart())
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <delta>",
	Short: "Change an entry's quantity by delta; reaching zero removes it",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove an entry from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view := session.RemoveFromCart(cmd.Context(), args[0])
		warnIfNotPersisted(cmd, view)
		return printCart(cmd, view)
	},
}

var cartSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the order summary with shipping and tax",
	Args:  cobra.NoArgs,
	RunE:  runCartSummary,
}

func init() {
	cartAddCmd.Flags().IntVarP(&qtyFlag, "qty", "q", 1, "Quantity to add")
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartSummaryCmd)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	view, err := session.AddToCart(cmd.Context(), args[0], qtyFlag)
	if err != nil {
		return err
	}
	warnIfNotPersisted(cmd, view)
	return printCart(cmd, view)
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be an integer: %w", err)
	}
	view := session.UpdateQuantity(cmd.Context(), args[0], delta)
	warnIfNotPersisted(cmd, view)
	return printCart(cmd, view)
}

func runCartSummary(cmd *cobra.Command, _ []string) error {
	s := session.Summary()
	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"totalItems":            s.TotalItems,
			"subtotal":              s.Subtotal.StringFixed(2),
			"shipping":              s.Shipping.StringFixed(2),
			"tax":                   s.Tax.StringFixed(2),
			"total":                 s.Total.StringFixed(2),
			"freeShipping":          s.FreeShipping,
			"freeShippingRemaining": s.FreeShippingRemaining.StringFixed(2),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "items:    %d\n", s.TotalItems)
	fmt.Fprintf(out, "subtotal: $%s\n", s.Subtotal.StringFixed(2))
	if s.FreeShipping {
		fmt.Fprintln(out, "shipping: free")
	} else {
		fmt.Fprintf(out, "shipping: $%s (add $%s for free shipping)\n", s.Shipping.StringFixed(2), s.FreeShippingRemaining.StringFixed(2))
	}
	fmt.Fprintf(out, "tax:      $%s\n", s.Tax.StringFixed(2))
	fmt.Fprintf(out, "total:    $%s\n", s.Total.StringFixed(2))
	return nil
}

func printCart(cmd *cobra.Command, view store.CartView) error {
	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"items":      view.Entries,
			"totalPrice": view.TotalPrice,
			"totalItems": view.TotalItems,
			"persisted":  view.Persisted(),
		})
	}

	out := cmd.OutOrStdout()
	if len(view.Entries) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, e := range view.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n", e.ID, e.Name, e.Quantity, e.Price, e.Subtotal())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d items, total $%.2f\n", view.TotalItems, view.TotalPrice)
	return nil
}
