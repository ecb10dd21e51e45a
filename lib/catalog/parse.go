package catalog

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parseItems(body []byte) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var items []Item
	doc.Find("table.catalog-results tr.item").Each(func(_ int, row *goquery.Selection) {
		sku := strings.TrimSpace(row.Find("td.sku").Text())
		if sku == "" {
			return
		}
		items = append(items, Item{
			SKU:          sku,
			Title:        strings.TrimSpace(row.Find("td.title").Text()),
			Price:        strings.TrimSpace(row.Find("td.price").Text()),
			Availability: strings.TrimSpace(row.Find("td.availability").Text()),
		})
	})

	return items, nil
}
