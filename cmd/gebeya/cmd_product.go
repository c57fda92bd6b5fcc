package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/pkg/storage"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage your product listings",
}

var (
	addData     models.CreateProductData
	addLocation string
	addImage    string
)

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "List a new product",
	RunE: func(cmd *cobra.Command, args []string) error {
		farmer, err := requireFarmer()
		if err != nil {
			return err
		}

		if addImage != "" {
			url, err := uploadImage(addImage)
			if err != nil {
				return err
			}
			addData.ImageURL = url
		}

		product, err := productSvc.Create(farmer.ID, farmer.Name, addLocation, addData)
		if err != nil {
			return err
		}
		fmt.Printf("Listed %q (%s) at %.2f birr per %s.\n", product.Name, product.ID, product.Price, product.Unit)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		farmer, err := requireFarmer()
		if err != nil {
			return err
		}
		products := productSvc.ListForFarmer(farmer.ID)
		if len(products) == 0 {
			fmt.Println("No products listed yet.")
			return nil
		}
		printProducts(products)
		return nil
	},
}

var (
	updName     string
	updDesc     string
	updPrice    float64
	updUnit     string
	updCategory string
	updStock    int
	updImage    string
)

var productUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Change fields of a listing (only the flags you pass)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		farmer, err := requireFarmer()
		if err != nil {
			return err
		}

		var patch models.ProductPatch
		flags := cmd.Flags()
		if flags.Changed("name") {
			patch.Name = &updName
		}
		if flags.Changed("description") {
			patch.Description = &updDesc
		}
		if flags.Changed("price") {
			patch.Price = &updPrice
		}
		if flags.Changed("unit") {
			patch.Unit = &updUnit
		}
		if flags.Changed("category") {
			patch.Category = &updCategory
		}
		if flags.Changed("stock") {
			patch.StockQuantity = &updStock
		}
		if flags.Changed("image") {
			url, err := uploadImage(updImage)
			if err != nil {
				return err
			}
			patch.ImageURL = &url
		}

		product, err := productSvc.Update(farmer.ID, args[0], patch)
		if err != nil {
			return err
		}
		fmt.Printf("Updated %q: %d %s in stock at %.2f birr.\n", product.Name, product.StockQuantity, product.Unit, product.Price)
		return nil
	},
}

var productRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		farmer, err := requireFarmer()
		if err != nil {
			return err
		}
		if err := productSvc.Delete(farmer.ID, args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Browse everything in stock, across all farmers",
	RunE: func(cmd *cobra.Command, args []string) error {
		products := productSvc.AllInStock()
		if len(products) == 0 {
			fmt.Println("Nothing in stock right now.")
			return nil
		}
		printProducts(products)
		return nil
	},
}

func printProducts(products []models.Product) {
	for _, p := range products {
		stock := fmt.Sprintf("%d %s", p.StockQuantity, p.Unit)
		if !p.InStock {
			stock = "out of stock"
		}
		fmt.Printf("%-36s  %-20s  %8.2f birr/%s  %-14s  %s (%s)\n",
			p.ID, p.Name, p.Price, p.Unit, stock, p.FarmerName, p.Location)
	}
}

// uploadImage pushes a local image file to the configured storage disk and
// returns its public URL.
func uploadImage(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	name := strings.ToLower(filepath.Base(path))
	url, err := storage.PutImage("products/"+name, content)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

func init() {
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productRemoveCmd)

	f := productAddCmd.Flags()
	f.StringVar(&addData.Name, "name", "", "product name")
	f.StringVar(&addData.Description, "description", "", "description")
	f.Float64Var(&addData.Price, "price", 0, "price in birr")
	f.StringVar(&addData.Unit, "unit", "", "unit of sale (kg, quintal, ...)")
	f.StringVar(&addData.Category, "category", "", "category (grain, vegetable, ...)")
	f.IntVar(&addData.StockQuantity, "stock", 0, "quantity in stock")
	f.StringVar(&addLocation, "location", "", "where the produce is")
	f.StringVar(&addImage, "image", "", "path to a product photo to upload")

	u := productUpdateCmd.Flags()
	u.StringVar(&updName, "name", "", "product name")
	u.StringVar(&updDesc, "description", "", "description")
	u.Float64Var(&updPrice, "price", 0, "price in birr")
	u.StringVar(&updUnit, "unit", "", "unit of sale")
	u.StringVar(&updCategory, "category", "", "category")
	u.IntVar(&updStock, "stock", 0, "quantity in stock")
	u.StringVar(&updImage, "image", "", "path to a product photo to upload")
}
