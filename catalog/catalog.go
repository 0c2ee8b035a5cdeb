// Package catalog holds the static product catalog of the storefront.
package catalog

import (
	"slices"

	"github.com/samber/lo"
)

// Product is an immutable catalog entry. Price is in yen.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Icon        string `json:"icon"`
}

var products = []Product{
	{ID: 1, Name: "スマートウォッチ", Description: "最新の健康追跡機能を搭載", Price: 29800, Icon: "⌚"},
	{ID: 2, Name: "ワイヤレスイヤホン", Description: "ノイズキャンセリング対応", Price: 15800, Icon: "🎧"},
	{ID: 3, Name: "ノートパソコン", Description: "高性能で軽量なデザイン", Price: 128000, Icon: "💻"},
	{ID: 4, Name: "スマートフォン", Description: "最新の5G対応モデル", Price: 89800, Icon: "📱"},
	{ID: 5, Name: "タブレット", Description: "大画面で快適な操作性", Price: 58000, Icon: "📱"},
	{ID: 6, Name: "スマートスピーカー", Description: "音声アシスタント内蔵", Price: 9800, Icon: "🔊"},
}

// Products returns every product in catalog order
func Products() []Product {
	return slices.Clone(products)
}

// Find looks up a product by id
func Find(id int) (Product, bool) {
	return lo.Find(products, func(p Product) bool {
		return p.ID == id
	})
}
