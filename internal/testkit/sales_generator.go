package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"vizier/domain/core"
	"vizier/domain/table"
)

// SalesGeneratorConfig configures the synthetic sales table generator.
type SalesGeneratorConfig struct {
	Orders int   `json:"orders"`
	Seed   int64 `json:"seed"`
}

// DefaultSalesConfig returns defaults large enough for distribution-sensitive
// assertions without slowing the suite down.
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		Orders: 500,
		Seed:   42,
	}
}

// SalesDataGenerator produces a seeded synthetic order table with one unique
// identifier, a two-level region/city hierarchy, and quantitative measures
// with known distributions. Identical configs produce identical tables.
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a generator for the given config.
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// regionWeights skews order volume so value counts are non-uniform. Cities
// are prefixed with their region so every city maps to exactly one region.
var (
	regions       = []string{"east", "west", "north", "south"}
	regionWeights = []float64{0.4, 0.3, 0.2, 0.1}
	regionCities  = map[string][]string{
		"east":  {"east-boston", "east-newyork", "east-miami"},
		"west":  {"west-seattle", "west-denver", "west-phoenix"},
		"north": {"north-chicago", "north-detroit"},
		"south": {"south-austin", "south-atlanta"},
	}
	regionBasePrice = map[string]float64{
		"east":  42.0,
		"west":  36.0,
		"north": 30.0,
		"south": 25.0,
	}
)

// Generate builds the full synthetic table.
func (g *SalesDataGenerator) Generate(id core.DatasetID) *table.Table {
	n := g.config.Orders
	orderIDs := make([]string, n)
	regionCol := make([]string, n)
	cityCol := make([]string, n)
	unitsCol := make([]string, n)
	revenueCol := make([]string, n)
	discountCol := make([]string, n)

	for i := 0; i < n; i++ {
		region := g.pickRegion()
		cities := regionCities[region]
		city := cities[g.rng.Intn(len(cities))]
		units := g.orderUnits()
		revenue := g.orderRevenue(region, units)

		orderIDs[i] = fmt.Sprintf("o%05d", i+1)
		regionCol[i] = region
		cityCol[i] = city
		unitsCol[i] = fmt.Sprintf("%d", units)
		revenueCol[i] = fmt.Sprintf("%.2f", revenue)
		discountCol[i] = fmt.Sprintf("%.2f", g.rng.Float64()*0.30)
	}

	return table.New(id,
		table.Column{Name: "order_id", Values: orderIDs},
		table.Column{Name: "region", Values: regionCol},
		table.Column{Name: "city", Values: cityCol},
		table.Column{Name: "units", Values: unitsCol},
		table.Column{Name: "revenue", Values: revenueCol},
		table.Column{Name: "discount", Values: discountCol},
	)
}

func (g *SalesDataGenerator) pickRegion() string {
	roll := g.rng.Float64()
	acc := 0.0
	for i, w := range regionWeights {
		acc += w
		if roll < acc {
			return regions[i]
		}
	}
	return regions[len(regions)-1]
}

// orderUnits draws a near-normal basket size centered on 4, clamped to [1, 12].
func (g *SalesDataGenerator) orderUnits() int {
	units := int(math.Round(4 + g.rng.NormFloat64()*1.5))
	if units < 1 {
		units = 1
	}
	if units > 12 {
		units = 12
	}
	return units
}

// orderRevenue scales the region's base price by units with multiplicative
// noise, so revenue correlates with units and differs by region.
func (g *SalesDataGenerator) orderRevenue(region string, units int) float64 {
	base := regionBasePrice[region]
	noise := 1 + g.rng.NormFloat64()*0.1
	if noise < 0.5 {
		noise = 0.5
	}
	return base * float64(units) * noise
}
