// Package cmd - reprice command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jewel-pricing/catalog"
	"jewel-pricing/core/engine"
	"jewel-pricing/core/ui"
	"jewel-pricing/internal/config"
	"jewel-pricing/internal/logging"
	"jewel-pricing/rates"
)

var (
	catalogFile string
	pricingFile string
	rateFile    string
	groupSize   int
	showTrace   bool
	noColor     bool
)

// repriceCmd represents the reprice command
var repriceCmd = &cobra.Command{
	Use:   "reprice",
	Short: "Recompute variant prices for a catalog snapshot",
	Long: `Run the pricing engine over a catalog snapshot file.

The snapshot is a JSON file of products with their variants and
attributes; the pricing configuration is an HCL file. An optional rate
file overrides the pricing file's base price per unit weight with a
freshly fetched commodity rate.

Examples:
  jewel-pricing reprice --catalog snapshot.json --pricing pricing.hcl
  jewel-pricing reprice --catalog snapshot.json --pricing pricing.hcl --rate rate.json
  jewel-pricing reprice --catalog snapshot.json --pricing pricing.hcl --trace`,
	RunE: runReprice,
}

func init() {
	repriceCmd.Flags().StringVarP(&catalogFile, "catalog", "c", "", "catalog snapshot JSON file (required)")
	repriceCmd.Flags().StringVarP(&pricingFile, "pricing", "p", "", "pricing configuration HCL file (required)")
	repriceCmd.Flags().StringVarP(&rateFile, "rate", "r", "", "rate JSON file overriding the base price")
	repriceCmd.Flags().IntVarP(&groupSize, "group-size", "g", 0, "products processed concurrently per group")
	repriceCmd.Flags().BoolVarP(&showTrace, "trace", "t", false, "print the derivation trace")
	repriceCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	_ = repriceCmd.MarkFlagRequired("catalog")
	_ = repriceCmd.MarkFlagRequired("pricing")
}

func runReprice(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	products, err := catalog.LoadSnapshot(catalogFile)
	if err != nil {
		return err
	}

	pricing, err := config.LoadPricingHCL(pricingFile)
	if err != nil {
		return err
	}

	if rateFile != "" {
		rate, err := rates.NewFileSource(rateFile).Current(ctx)
		if err != nil {
			return err
		}
		pricing.BasePricePerUnitWeight = rate
	}
	if groupSize > 0 {
		pricing.GroupSize = groupSize
	} else if pricing.GroupSize == 0 {
		pricing.GroupSize = config.Get().Engine.GroupSize
	}

	logging.Info("repricing catalog snapshot")
	fmt.Printf("Loaded %d products from %s\n", len(products), catalogFile)

	store := catalog.NewMemoryStore(products)
	orch := engine.New(nil, store, logging.Logger)

	outcome, runErr := orch.RunCatalog(ctx, store, pricing)
	if outcome == nil {
		return runErr
	}

	trace := showTrace || (config.Get().Engine.TraceEnabled && verbose)
	ui.NewWriter(nil, noColor).RenderOutcome(outcome, trace)
	return runErr
}
