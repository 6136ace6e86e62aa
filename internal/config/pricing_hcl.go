// Package config - HCL pricing file loading
// Operators describe a pricing run in an HCL file: scalar charges as
// attributes, purity/discount/gem tables as labeled blocks. Purity
// blocks keep their file order, which is the tie-break order used by
// the classifier when a title matches more than one purity tag.
//
//	base_price_per_unit_weight    = 8000
//	making_charge_per_unit_weight = 1200
//	allowed_finish_tags           = ["yellow gold", "white gold"]
//
//	purity "18k" { multiplier = 0.76 }
//	purity "22k" { multiplier = 0.925 }
//
//	discount "10%" { factor = 0.9 }
//
//	gem "Round Solitaire 2ct+" { price = 30000 }
package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"jewel-pricing/core/types"
	"jewel-pricing/internal/errors"
)

// pricingFileSchema is the top-level HCL schema for a pricing file
var pricingFileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "base_price_per_unit_weight", Required: true},
		{Name: "making_charge_per_unit_weight", Required: true},
		{Name: "allowed_finish_tags", Required: true},
		{Name: "group_size", Required: false},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "purity", LabelNames: []string{"tag"}},
		{Type: "discount", LabelNames: []string{"token"}},
		{Type: "gem", LabelNames: []string{"type"}},
	},
}

// LoadPricingHCL reads a PricingConfig from an HCL pricing file
func LoadPricingHCL(path string) (*types.PricingConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse pricing file", diags)
	}
	return decodePricingBody(file.Body)
}

// decodePricingBody decodes a parsed HCL body into a PricingConfig
func decodePricingBody(body hcl.Body) (*types.PricingConfig, error) {
	content, diags := body.Content(pricingFileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid pricing file", diags)
	}

	cfg := &types.PricingConfig{
		DiscountFactors: make(map[string]decimal.Decimal),
		GemUnitPrices:   make(map[string]decimal.Decimal),
	}

	var err error
	if cfg.BasePricePerUnitWeight, err = decimalAttr(content, "base_price_per_unit_weight"); err != nil {
		return nil, err
	}
	if cfg.MakingChargePerUnitWeight, err = decimalAttr(content, "making_charge_per_unit_weight"); err != nil {
		return nil, err
	}
	if cfg.AllowedFinishTags, err = stringListAttr(content, "allowed_finish_tags"); err != nil {
		return nil, err
	}
	if a, ok := content.Attributes["group_size"]; ok {
		d, derr := decimalValue(a)
		if derr != nil {
			return nil, derr
		}
		cfg.GroupSize = int(d.IntPart())
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "purity":
			mult, berr := blockDecimal(block, "multiplier")
			if berr != nil {
				return nil, berr
			}
			cfg.Purities = append(cfg.Purities, types.PurityEntry{
				Tag:        block.Labels[0],
				Multiplier: mult,
			})
		case "discount":
			factor, berr := blockDecimal(block, "factor")
			if berr != nil {
				return nil, berr
			}
			cfg.DiscountFactors[block.Labels[0]] = factor
		case "gem":
			price, berr := blockDecimal(block, "price")
			if berr != nil {
				return nil, berr
			}
			cfg.GemUnitPrices[block.Labels[0]] = price
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decimalAttr reads a required top-level numeric attribute
func decimalAttr(content *hcl.BodyContent, name string) (decimal.Decimal, error) {
	a, ok := content.Attributes[name]
	if !ok {
		return decimal.Zero, errors.Newf(errors.TypeConfig, "missing attribute %q", name)
	}
	return decimalValue(a)
}

// decimalValue evaluates an attribute expression to a decimal
func decimalValue(a *hcl.Attribute) (decimal.Decimal, error) {
	val, diags := a.Expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, errors.Parsing("invalid expression for "+a.Name, diags)
	}
	if !val.Type().Equals(cty.Number) {
		return decimal.Zero, errors.Newf(errors.TypeConfig, "attribute %q must be a number", a.Name)
	}
	d, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Parsing("invalid number for "+a.Name, err)
	}
	return d, nil
}

// stringListAttr reads a required list-of-strings attribute
func stringListAttr(content *hcl.BodyContent, name string) ([]string, error) {
	a, ok := content.Attributes[name]
	if !ok {
		return nil, errors.Newf(errors.TypeConfig, "missing attribute %q", name)
	}
	val, diags := a.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid expression for "+name, diags)
	}
	if !val.CanIterateElements() {
		return nil, errors.Newf(errors.TypeConfig, "attribute %q must be a list of strings", name)
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if !elem.Type().Equals(cty.String) {
			return nil, errors.Newf(errors.TypeConfig, "attribute %q must contain only strings", name)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

// blockDecimal reads one required numeric attribute from a block body
func blockDecimal(block *hcl.Block, name string) (decimal.Decimal, error) {
	content, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: name, Required: true}},
	})
	if diags.HasErrors() {
		return decimal.Zero, errors.Parsing("invalid "+block.Type+" block "+block.Labels[0], diags)
	}
	return decimalValue(content.Attributes[name])
}
