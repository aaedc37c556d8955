package analysis

import "mapfnet/pkg/domain"

// CostOptions controls how CalculateCost prices vertex visits and edge
// traversals and how the totals are adjusted before being reported.
type CostOptions struct {
	Currency        string
	DiscountPercent float64
	MarkupPercent   float64
}

// CostBreakdown itemizes where a solved instance's cost came from.
type CostBreakdown struct {
	VertexCost     float64
	EdgeCost       float64
	DiscountAmount float64
	MarkupAmount   float64
	VisitedVertices int
	TraversedEdges  int
}

// CalculateCostResponse is the result of pricing one solved MAPF instance.
type CalculateCostResponse struct {
	TotalCost float64
	Currency  string
	Breakdown *CostBreakdown
}

// CalculateCost prices every agent's solved path: each distinct vertex visit
// costs vertexCost[v], each distinct edge traversal costs edgeCost["u:v"],
// mirroring the per-vertex/per-edge cost tensors solver-svc accepts for the
// MILP objective itself.
func CalculateCost(paths map[int]*domain.AgentPath, vertexCost map[int]float64, edgeCost map[string]float64, opts *CostOptions) *CalculateCostResponse {
	if opts == nil {
		opts = &CostOptions{Currency: "USD"}
	}

	var vCost, eCost float64
	visitedVertices := 0
	traversedEdges := 0

	for _, p := range paths {
		if p == nil {
			continue
		}
		for _, tv := range p.Vertices {
			if c, ok := vertexCost[tv.Vertex]; ok {
				vCost += c
				visitedVertices++
			}
		}
		for _, te := range p.Edges {
			if c, ok := edgeCost[EdgeKeyString(te.From, te.To)]; ok {
				eCost += c
				traversedEdges++
			}
		}
	}

	subtotal := vCost + eCost
	discount := subtotal * (opts.DiscountPercent / 100.0)
	afterDiscount := subtotal - discount
	markup := afterDiscount * (opts.MarkupPercent / 100.0)
	total := afterDiscount + markup

	currency := opts.Currency
	if currency == "" {
		currency = "USD"
	}

	return &CalculateCostResponse{
		TotalCost: total,
		Currency:  currency,
		Breakdown: &CostBreakdown{
			VertexCost:      vCost,
			EdgeCost:        eCost,
			DiscountAmount:  discount,
			MarkupAmount:    markup,
			VisitedVertices: visitedVertices,
			TraversedEdges:  traversedEdges,
		},
	}
}
