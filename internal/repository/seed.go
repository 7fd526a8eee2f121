package repository

import "storefront/internal/models"

// DemoProducts is the catalog loaded in memory mode.
func DemoProducts() []models.Product {
	return []models.Product{
		{Name: "Red Rose Bouquet", Description: "Twelve long-stem red roses.", Price: 39.99, Image: "public/images/red-roses.jpg", InStock: true, Featured: true},
		{Name: "Sunflower Bunch", Description: "Five bright sunflowers.", Price: 24.5, Image: "public/images/sunflowers.jpg", InStock: true, Featured: true},
		{Name: "White Lily Vase", Description: "Lilies arranged in a glass vase.", Price: 45, Image: "public/images/lilies.jpg", InStock: true},
		{Name: "House Espresso", Description: "Double shot of our house blend.", Price: 3.5, Image: "public/images/espresso.jpg", InStock: true, Featured: true},
		{Name: "Caramel Latte", Description: "Espresso, steamed milk and caramel.", Price: 4.75, Image: "public/images/latte.jpg", InStock: true},
		{Name: "Orchid Pot", Description: "Potted white orchid.", Price: 32, Image: "public/images/orchid.jpg", InStock: false, Featured: true},
	}
}
