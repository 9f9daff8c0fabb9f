package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"rp-market/internal/domain"
	"rp-market/internal/service"
)

// FlexFloat accepts 12.5 as well as "12.5". An empty string reads as 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f *FlexFloat) ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

func (f *FlexFloat) intPtr() (*int, error) {
	if f == nil {
		return nil, nil
	}
	v := float64(*f)
	if v != math.Trunc(v) {
		return nil, fmt.Errorf("%w: stock must be a whole number", domain.ErrValidation)
	}
	n := int(v)
	return &n, nil
}

type imageDTO struct {
	URL   string    `json:"url"`
	Order FlexFloat `json:"order"`
}

type productDTO struct {
	Name               *string     `json:"name"`
	Price              *FlexFloat  `json:"price"`
	DiscountPercentage *FlexFloat  `json:"discountPercentage"`
	Stock              *FlexFloat  `json:"stock"`
	Description        *string     `json:"description"`
	ImageURL           *string     `json:"imageUrl"`
	Type               *string     `json:"type"`
	Images             *[]imageDTO `json:"images"`
}

func (d *productDTO) input() (service.ProductInput, error) {
	stock, err := d.Stock.intPtr()
	if err != nil {
		return service.ProductInput{}, err
	}
	in := service.ProductInput{
		Name:               d.Name,
		Price:              d.Price.ptr(),
		DiscountPercentage: d.DiscountPercentage.ptr(),
		Stock:              stock,
		Description:        d.Description,
		ImageURL:           d.ImageURL,
	}
	if d.Type != nil {
		t := domain.ProductType(strings.TrimSpace(*d.Type))
		in.Type = &t
	}
	if d.Images != nil {
		imgs := make([]domain.ProductImage, 0, len(*d.Images))
		for _, im := range *d.Images {
			imgs = append(imgs, domain.ProductImage{URL: strings.TrimSpace(im.URL), Order: int(im.Order)})
		}
		in.Images = &imgs
	}
	return in, nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
