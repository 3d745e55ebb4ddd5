package service

import (
	"fmt"
	"strings"
)

// BuildSKU derives the immutable identifier for a variant:
//
//	<CAT3>-<PRODUCT_CODE>[-SIZE]-<COLOR3>
//
// CAT3 and COLOR3 are the first three characters of the category name and
// color, upper-cased. Inputs shorter than three characters degrade gracefully
// by using whatever is available, never an error. The size segment appears
// only when the variant has one.
//
// Callers invoke this exactly once, at variant creation, after the parent
// product has been persisted (the product code is DB-assigned). A SKU is
// never regenerated, even if category, color or size change later.
func BuildSKU(categoryName string, productCode int64, size *string, color string) string {
	sku := fmt.Sprintf("%s-%d", prefix3(categoryName), productCode)
	if size != nil && *size != "" {
		sku += "-" + *size
	}
	return sku + "-" + prefix3(color)
}

func prefix3(s string) string {
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}
