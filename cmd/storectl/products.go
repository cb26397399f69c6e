package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shasthoai/store-backend/internal/catalog"
)

var (
	searchFlag   string
	categoryFlag string
	sortFlag     string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products with optional search, category and sort",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product and related items",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func init() {
	productsCmd.Flags().StringVar(&searchFlag, "search", "", "Case-insensitive match on name or description")
	productsCmd.Flags().StringVar(&categoryFlag, "category", "all", "Category key (all, pain-relief, supplements, topical, prescription)")
	productsCmd.Flags().StringVar(&sortFlag, "sort", "name", "Sort key (name, price-low, price-high, rating)")
}

func runProducts(cmd *cobra.Command, _ []string) error {
	session.SetSearchTerm(searchFlag)
	session.SetSelectedCategory(categoryFlag)
	session.SetSortBy(sortFlag)
	products := session.ListVisibleProducts()

	if jsonOutput {
		return printJSON(cmd, products)
	}
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no products match")
		return nil
	}
	return printProducts(cmd, products)
}

func runProduct(cmd *cobra.Command, args []string) error {
	product, err := session.Product(args[0])
	if err != nil {
		return err
	}
	related, err := session.Related(product.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, map[string]any{"product": product, "related": related})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", product.Name, product.ID)
	fmt.Fprintf(out, "  %s\n", product.Description)
	fmt.Fprintf(out, "  manufacturer: %s  dosage: %s  category: %s\n", product.Manufacturer, product.Dosage, product.Category)
	if product.Discounted() {
		fmt.Fprintf(out, "  price: $%.2f (was $%.2f, %d%% off)\n", product.Price, *product.OriginalPrice, product.DiscountPercent())
	} else {
		fmt.Fprintf(out, "  price: $%.2f\n", product.Price)
	}
	fmt.Fprintf(out, "  rating: %.1f (%d reviews)  in stock: %t  prescription: %t\n", product.Rating, product.Reviews, product.InStock, product.Prescription)
	if len(related) > 0 {
		fmt.Fprintln(out, "\nrelated:")
		return printProducts(cmd, related)
	}
	return nil
}

func printProducts(cmd *cobra.Command, products []catalog.Product) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tRX")
	for _, p := range products {
		rx := ""
		if p.Prescription {
			rx = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.1f\t%s\n", p.ID, p.Name, p.Category, p.Price, p.Rating, rx)
	}
	return tw.Flush()
}
