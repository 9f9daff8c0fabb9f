package service

// Margin is one margin-calculator result.
type Margin struct {
	TotalCost   float64 `json:"totalCost"`
	ProfitPrice float64 `json:"profitPrice"`
	Tax         float64 `json:"tax"`
	FinalPrice  float64 `json:"finalPrice"`
}

// Calculate sums the cost lines, adds profitRate percent on top and then
// taxRate percent of that.
func Calculate(values []float64, profitRate, taxRate float64) Margin {
	var total float64
	for _, v := range values {
		total += v
	}
	profit := total * (1 + profitRate/100)
	tax := profit * (taxRate / 100)
	return Margin{
		TotalCost:   total,
		ProfitPrice: profit,
		Tax:         tax,
		FinalPrice:  profit + tax,
	}
}
