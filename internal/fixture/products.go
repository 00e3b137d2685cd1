// Package fixture holds the static catalog the storefront serves in place of
// a live backend. Every accessor returns fresh values, so callers may not
// mutate shared data.
package fixture

import (
	"strconv"
	"time"

	"github.com/FItraRizky/fro/internal/domain"
)

func photo(id string, size string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=" + size + "&h=" + size + "&fit=crop&crop=center"
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func price(v int64) *int64 { return &v }

func colors(startID int, values ...string) []domain.ProductVariant {
	return variants(domain.VariantColor, "Warna", startID, values...)
}

func sizes(startID int, values ...string) []domain.ProductVariant {
	return variants(domain.VariantSize, "Ukuran", startID, values...)
}

func variants(kind, name string, startID int, values ...string) []domain.ProductVariant {
	out := make([]domain.ProductVariant, len(values))
	for i, v := range values {
		out[i] = domain.ProductVariant{
			ID:      "v" + strconv.Itoa(startID+i),
			Type:    kind,
			Name:    name,
			Value:   v,
			InStock: true,
		}
	}
	return out
}

// Products returns the catalog in fixture order.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Kemeja Kasual Premium",
			Description:   "Kemeja kasual dengan bahan katun premium yang nyaman dipakai sehari-hari. Desain modern dengan detail yang elegan.",
			Price:         299000,
			OriginalPrice: price(399000),
			Discount:      25,
			Images: []string{
				photo("1596755094514-f87e34085b2c", "500"),
				photo("1602810318383-e386cc2a3ccf", "500"),
				photo("1594938298603-c8148c4dae35", "500"),
			},
			Category:      "fashion",
			Subcategory:   "kemeja",
			Brand:         "FRO Premium",
			Rating:        4.5,
			ReviewCount:   128,
			StockQuantity: 50,
			Variants:      append(colors(1, "Biru", "Putih"), sizes(3, "M", "L", "XL")...),
			Specifications: map[string]string{
				"Bahan":     "Katun 100%",
				"Perawatan": "Cuci dengan air dingin",
				"Asal":      "Indonesia",
			},
			Features:     []string{"Bahan premium", "Nyaman dipakai", "Tahan lama"},
			Tags:         []string{"kemeja", "kasual", "premium"},
			IsFeatured:   true,
			IsBestseller: true,
			CreatedAt:    date(2024, time.January, 15),
			UpdatedAt:    date(2024, time.January, 20),
		},
		{
			ID:            "2",
			Name:          "Celana Jeans Slim Fit",
			Description:   "Celana jeans dengan potongan slim fit yang memberikan tampilan modern dan stylish. Bahan denim berkualitas tinggi.",
			Price:         450000,
			OriginalPrice: price(550000),
			Discount:      18,
			Images: []string{
				photo("1542272604-787c3835535d", "500"),
				photo("1475178626620-a4d074967452", "500"),
			},
			Category:      "fashion",
			Subcategory:   "celana",
			Brand:         "FRO Denim",
			Rating:        4.3,
			ReviewCount:   89,
			StockQuantity: 30,
			Variants:      append(colors(6, "Dark Blue", "Light Blue"), sizes(8, "30", "32", "34")...),
			Specifications: map[string]string{
				"Bahan":     "Denim 98% Cotton, 2% Elastane",
				"Fit":       "Slim Fit",
				"Perawatan": "Cuci terpisah",
			},
			Features:   []string{"Slim fit", "Stretch denim", "Tahan lama"},
			Tags:       []string{"jeans", "celana", "slim fit"},
			IsFeatured: true,
			IsNew:      true,
			CreatedAt:  date(2024, time.February, 1),
			UpdatedAt:  date(2024, time.February, 5),
		},
		{
			ID:          "3",
			Name:        "Sepatu Sneakers Casual",
			Description: "Sepatu sneakers dengan desain casual yang cocok untuk berbagai aktivitas. Sol yang empuk memberikan kenyamanan maksimal.",
			Price:       650000,
			Images: []string{
				photo("1549298916-b41d501d3772", "500"),
				photo("1595950653106-6c9ebd614d3a", "500"),
			},
			Category:      "fashion",
			Subcategory:   "sepatu",
			Brand:         "FRO Footwear",
			Rating:        4.7,
			ReviewCount:   156,
			StockQuantity: 25,
			Variants:      append(colors(11, "Putih", "Hitam"), sizes(13, "40", "41", "42")...),
			Specifications: map[string]string{
				"Bahan Upper": "Synthetic Leather",
				"Sol":         "Rubber",
				"Lining":      "Textile",
			},
			Features:     []string{"Ringan", "Tahan air", "Anti slip"},
			Tags:         []string{"sepatu", "sneakers", "casual"},
			IsNew:        true,
			IsBestseller: true,
			CreatedAt:    date(2024, time.February, 10),
			UpdatedAt:    date(2024, time.February, 15),
		},
		{
			ID:            "4",
			Name:          "Tas Ransel Laptop",
			Description:   "Tas ransel dengan kompartemen khusus laptop hingga 15 inci. Desain ergonomis dengan banyak kantong penyimpanan.",
			Price:         350000,
			OriginalPrice: price(450000),
			Discount:      22,
			Images: []string{
				photo("1553062407-98eeb64c6a62", "500"),
				photo("1548036328-c9fa89d128fa", "500"),
			},
			Category:      "accessories",
			Subcategory:   "tas",
			Brand:         "FRO Bags",
			Rating:        4.4,
			ReviewCount:   73,
			StockQuantity: 40,
			Variants:      colors(16, "Hitam", "Abu-abu"),
			Specifications: map[string]string{
				"Kapasitas": "25 Liter",
				"Bahan":     "Polyester 600D",
				"Dimensi":   "45 x 30 x 15 cm",
			},
			Features:   []string{"Tahan air", "Kompartemen laptop", "Ergonomis"},
			Tags:       []string{"tas", "ransel", "laptop"},
			IsFeatured: true,
			CreatedAt:  date(2024, time.January, 20),
			UpdatedAt:  date(2024, time.January, 25),
		},
		{
			ID:          "5",
			Name:        "Jam Tangan Sport",
			Description: "Jam tangan sport dengan fitur tahan air dan stopwatch. Desain sporty yang cocok untuk aktivitas outdoor.",
			Price:       850000,
			Images: []string{
				photo("1524592094714-0f0654e20314", "500"),
				photo("1434056886845-dac89ffe9b56", "500"),
			},
			Category:      "accessories",
			Subcategory:   "jam",
			Brand:         "FRO Time",
			Rating:        4.6,
			ReviewCount:   92,
			StockQuantity: 15,
			Variants:      colors(18, "Hitam", "Biru"),
			Specifications: map[string]string{
				"Movement":         "Quartz",
				"Water Resistance": "50M",
				"Case Material":    "Stainless Steel",
			},
			Features:  []string{"Tahan air 50M", "Stopwatch", "Backlight"},
			Tags:      []string{"jam", "sport", "tahan air"},
			IsNew:     true,
			CreatedAt: date(2024, time.February, 20),
			UpdatedAt: date(2024, time.February, 25),
		},
		{
			ID:            "6",
			Name:          "Hoodie Premium",
			Description:   "Hoodie dengan bahan fleece premium yang hangat dan nyaman. Perfect untuk cuaca dingin atau santai di rumah.",
			Price:         425000,
			OriginalPrice: price(525000),
			Discount:      19,
			Images: []string{
				photo("1556821840-3a63f95609a7", "500"),
				photo("1578662996442-48f60103fc96", "500"),
			},
			Category:      "fashion",
			Subcategory:   "outerwear",
			Brand:         "FRO Comfort",
			Rating:        4.8,
			ReviewCount:   167,
			StockQuantity: 35,
			Variants:      append(colors(20, "Abu-abu", "Hitam", "Navy"), sizes(23, "M", "L", "XL")...),
			Specifications: map[string]string{
				"Bahan":    "Cotton Fleece 80%, Polyester 20%",
				"Fit":      "Regular Fit",
				"Features": "Kangaroo Pocket, Drawstring Hood",
			},
			Features:     []string{"Bahan hangat", "Kantong depan", "Hood adjustable"},
			Tags:         []string{"hoodie", "hangat", "casual"},
			IsFeatured:   true,
			IsBestseller: true,
			CreatedAt:    date(2024, time.January, 10),
			UpdatedAt:    date(2024, time.January, 15),
		},
	}
}
