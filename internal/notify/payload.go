package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rp-market/internal/domain"
)

const embedColor = 0xEC4899

type webhookMessage struct {
	Content string  `json:"content"`
	Embeds  []embed `json:"embeds"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Thumbnail *thumbnail   `json:"thumbnail,omitempty"`
	Timestamp string       `json:"timestamp"`
}

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// money renders a float price with at most two decimals and no trailing zeros.
func money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String() + "₺"
}

func buildMessage(o domain.Order, p domain.Product, at time.Time) webhookMessage {
	var product strings.Builder
	fmt.Fprintf(&product, "**%s**\nPrice: %s", p.Name, money(p.Price))
	if p.DiscountPercentage > 0 {
		product.WriteString(" (discounted)")
		if p.OriginalPrice != nil {
			fmt.Fprintf(&product, "\nOriginal price: %s (discount: %s%%)",
				money(*p.OriginalPrice), decimal.NewFromFloat(p.DiscountPercentage).String())
		}
	}

	e := embed{
		Title: "🛍️ New order!",
		Color: embedColor,
		Fields: []embedField{
			{Name: "📦 Product", Value: product.String()},
			{Name: "👤 Customer", Value: fmt.Sprintf("Name: %s\nPhone: %s", o.FullName, o.PhoneNumber)},
		},
		Timestamp: at.UTC().Format(time.RFC3339Nano),
	}
	if o.Note != "" {
		e.Fields = append(e.Fields, embedField{Name: "📝 Note", Value: o.Note})
	}
	if p.ImageURL != "" {
		e.Thumbnail = &thumbnail{URL: p.ImageURL}
	}
	return webhookMessage{Content: "@everyone New order received!", Embeds: []embed{e}}
}
