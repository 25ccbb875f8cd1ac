package adminController

import (
	"sort"

	"github.com/kartify-in/storefront-api/models"
)

// ProductTally is one row of the per-product quantity summary.
type ProductTally struct {
	ProductID   uint   `json:"product_id,omitempty"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// TopProducts groups order items by product identity (falling back to the
// product name when the identifier is absent), sums quantities and sorts
// descending. Pure; used for the dashboard summary.
func TopProducts(orders []models.Order) []ProductTally {
	type key struct {
		id   uint
		name string
	}
	tallies := make(map[key]*ProductTally)

	for _, order := range orders {
		for _, item := range order.Items {
			k := key{id: item.ProductID}
			if item.ProductID == 0 {
				k.name = item.ProductName
			}
			if t, ok := tallies[k]; ok {
				t.Quantity += item.Quantity
			} else {
				tallies[k] = &ProductTally{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Quantity:    item.Quantity,
				}
			}
		}
	}

	result := make([]ProductTally, 0, len(tallies))
	for _, t := range tallies {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Quantity != result[j].Quantity {
			return result[i].Quantity > result[j].Quantity
		}
		return result[i].ProductName < result[j].ProductName
	})
	return result
}
