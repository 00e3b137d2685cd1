package fixture

import (
	"time"

	"github.com/FItraRizky/fro/internal/domain"
)

// Categories returns the category tree.
func Categories() []domain.Category {
	return []domain.Category{
		{
			ID:           "1",
			Name:         "Fashion",
			Slug:         "fashion",
			Description:  "Koleksi fashion terbaru dan terlengkap",
			Image:        photo("1445205170230-053b83016050", "300"),
			ProductCount: 150,
			IsActive:     true,
			Children: []domain.Category{
				{ID: "1-1", Name: "Kemeja", Slug: "kemeja", ParentID: "1", ProductCount: 25, IsActive: true},
				{ID: "1-2", Name: "Celana", Slug: "celana", ParentID: "1", ProductCount: 30, IsActive: true},
				{ID: "1-3", Name: "Sepatu", Slug: "sepatu", ParentID: "1", ProductCount: 40, IsActive: true},
				{ID: "1-4", Name: "Outerwear", Slug: "outerwear", ParentID: "1", ProductCount: 20, IsActive: true},
			},
		},
		{
			ID:           "2",
			Name:         "Aksesoris",
			Slug:         "accessories",
			Description:  "Aksesoris pelengkap gaya Anda",
			Image:        photo("1469334031218-e382a71b716b", "300"),
			ProductCount: 80,
			IsActive:     true,
			Children: []domain.Category{
				{ID: "2-1", Name: "Tas", Slug: "tas", ParentID: "2", ProductCount: 35, IsActive: true},
				{ID: "2-2", Name: "Jam Tangan", Slug: "jam", ParentID: "2", ProductCount: 25, IsActive: true},
				{ID: "2-3", Name: "Perhiasan", Slug: "perhiasan", ParentID: "2", ProductCount: 20, IsActive: true},
			},
		},
		{
			ID:           "3",
			Name:         "Elektronik",
			Slug:         "electronics",
			Description:  "Gadget dan elektronik terbaru",
			Image:        photo("1468495244123-6c6c332eeece", "300"),
			ProductCount: 60,
			IsActive:     true,
		},
	}
}

// Reviews returns every product review.
func Reviews() []domain.Review {
	return []domain.Review{
		{
			ID:         "1",
			ProductID:  "1",
			UserID:     "user1",
			UserName:   "Ahmad Rizki",
			UserAvatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
			Rating:     5,
			Title:      "Kualitas sangat bagus!",
			Comment:    "Kemeja ini sangat nyaman dipakai dan bahannya premium. Sesuai dengan deskripsi dan foto. Pengiriman juga cepat.",
			Verified:   true,
			Helpful:    12,
			CreatedAt:  date(2024, time.February, 1),
		},
		{
			ID:         "2",
			ProductID:  "1",
			UserID:     "user2",
			UserName:   "Sari Dewi",
			UserAvatar: "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=100&h=100&fit=crop&crop=face",
			Rating:     4,
			Title:      "Bagus tapi agak kekecilan",
			Comment:    "Kualitas bagus, tapi ukurannya agak kecil dari biasanya. Mungkin perlu order 1 size lebih besar.",
			Verified:   true,
			Helpful:    8,
			CreatedAt:  date(2024, time.January, 28),
		},
		{
			ID:         "3",
			ProductID:  "2",
			UserID:     "user3",
			UserName:   "Budi Santoso",
			UserAvatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face",
			Rating:     5,
			Title:      "Jeans terbaik yang pernah saya beli",
			Comment:    "Potongannya pas, bahan stretch jadi nyaman dipakai. Warna tidak luntur setelah dicuci berkali-kali.",
			Verified:   true,
			Helpful:    15,
			CreatedAt:  date(2024, time.February, 5),
		},
	}
}

// ShippingMethods returns the delivery options.
func ShippingMethods() []domain.ShippingMethod {
	return []domain.ShippingMethod{
		{ID: "1", Name: "Reguler", Description: "Pengiriman standar 3-5 hari kerja", Price: 15000, EstimatedDays: 4, Carrier: "JNE"},
		{ID: "2", Name: "Express", Description: "Pengiriman cepat 1-2 hari kerja", Price: 25000, EstimatedDays: 1, Carrier: "JNT"},
		{ID: "3", Name: "Same Day", Description: "Pengiriman hari yang sama (area tertentu)", Price: 35000, EstimatedDays: 0, Carrier: "GoSend"},
	}
}

// PromoCodes returns the promo codes a shopper may enter.
func PromoCodes() []domain.PromoCode {
	welcomeExpiry := time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)
	flashExpiry := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	return []domain.PromoCode{
		{
			ID:             "1",
			Code:           "WELCOME10",
			Type:           domain.PromoPercentage,
			Value:          10,
			MinOrderAmount: 200000,
			MaxDiscount:    50000,
			ExpiresAt:      &welcomeExpiry,
			UsageLimit:     1000,
			UsedCount:      245,
			IsActive:       true,
		},
		{
			ID:             "2",
			Code:           "FREESHIP",
			Type:           domain.PromoFixed,
			Value:          15000,
			MinOrderAmount: 300000,
			UsageLimit:     500,
			UsedCount:      123,
			IsActive:       true,
		},
		{
			ID:             "3",
			Code:           "FLASH25",
			Type:           domain.PromoPercentage,
			Value:          25,
			MinOrderAmount: 500000,
			MaxDiscount:    100000,
			ExpiresAt:      &flashExpiry,
			UsageLimit:     100,
			UsedCount:      67,
			IsActive:       true,
		},
	}
}
