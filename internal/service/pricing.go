package service

import (
	"fmt"

	"rp-market/internal/domain"
)

// ApplyDiscount derives the stored price pair from a base price and a discount
// percentage. With a zero discount the base price is stored as is and original
// stays nil.
func ApplyDiscount(base, discount float64) (price float64, original *float64, err error) {
	if base < 0 {
		return 0, nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if discount < 0 || discount > 100 {
		return 0, nil, fmt.Errorf("%w: discountPercentage must be between 0 and 100", domain.ErrValidation)
	}
	if discount == 0 {
		return base, nil, nil
	}
	o := base
	return base - base*discount/100, &o, nil
}
