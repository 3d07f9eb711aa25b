package memory

import (
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func price(f float64) domain.Price { return domain.PriceFromFloat(f) }

func seedCatalog(now time.Time) *catalog {
	today := domain.NewTimestamp(now.UTC().Truncate(24 * time.Hour))

	crops := []domain.CropDetails{
		{
			Crop: domain.Crop{ID: 1, Name: "Wheat", ScientificName: ptr("Triticum aestivum"),
				LocalNameHindi: ptr("गेहूं"), LocalNamePunjabi: ptr("ਕਣਕ"),
				CropType: "cereal", Season: "rabi", DurationDays: ptr(140)},
			MinTemperature: ptr(10.0), MaxTemperature: ptr(25.0), OptimalRainfall: ptr(450.0),
			AverageYieldPerAcre: ptr(18.0), WaterRequirements: ptr("4-6 irrigations at critical stages"),
			FertilizerRequirements: ptr("N:P:K 120:60:40 kg/ha"),
			CommonPests: ptr("Aphids, termites"), CommonDiseases: ptr("Yellow rust, loose smut"),
		},
		{
			Crop: domain.Crop{ID: 2, Name: "Rice", ScientificName: ptr("Oryza sativa"),
				LocalNameHindi: ptr("धान"), LocalNamePunjabi: ptr("ਝੋਨਾ"),
				CropType: "cereal", Season: "kharif", DurationDays: ptr(120)},
			MinTemperature: ptr(20.0), MaxTemperature: ptr(37.0), OptimalRainfall: ptr(1200.0),
			AverageYieldPerAcre: ptr(25.0), WaterRequirements: ptr("Standing water 5 cm until grain fill"),
			FertilizerRequirements: ptr("N:P:K 120:30:30 kg/ha"),
			CommonPests: ptr("Stem borer, brown plant hopper"), CommonDiseases: ptr("Blast, bacterial leaf blight"),
		},
		{
			Crop: domain.Crop{ID: 3, Name: "Maize", ScientificName: ptr("Zea mays"),
				LocalNameHindi: ptr("मक्का"), LocalNamePunjabi: ptr("ਮੱਕੀ"),
				CropType: "cereal", Season: "kharif", DurationDays: ptr(95)},
			MinTemperature: ptr(18.0), MaxTemperature: ptr(32.0), OptimalRainfall: ptr(600.0),
			AverageYieldPerAcre: ptr(20.0), WaterRequirements: ptr("Irrigate at knee-high, tasseling and silking"),
			FertilizerRequirements: ptr("N:P:K 125:60:30 kg/ha"),
			CommonPests: ptr("Fall armyworm"), CommonDiseases: ptr("Turcicum leaf blight"),
		},
		{
			Crop: domain.Crop{ID: 4, Name: "Cotton", ScientificName: ptr("Gossypium hirsutum"),
				LocalNameHindi: ptr("कपास"), LocalNamePunjabi: ptr("ਨਰਮਾ"),
				CropType: "fibre", Season: "kharif", DurationDays: ptr(170)},
			MinTemperature: ptr(21.0), MaxTemperature: ptr(35.0), OptimalRainfall: ptr(700.0),
			AverageYieldPerAcre: ptr(8.0), WaterRequirements: ptr("Light irrigations every 2-3 weeks"),
			FertilizerRequirements: ptr("N:P:K 150:60:60 kg/ha"),
			CommonPests: ptr("Pink bollworm, whitefly"), CommonDiseases: ptr("Cotton leaf curl virus"),
		},
		{
			Crop: domain.Crop{ID: 5, Name: "Mustard", ScientificName: ptr("Brassica juncea"),
				LocalNameHindi: ptr("सरसों"), LocalNamePunjabi: ptr("ਸਰ੍ਹੋਂ"),
				CropType: "oilseed", Season: "rabi", DurationDays: ptr(125)},
			MinTemperature: ptr(10.0), MaxTemperature: ptr(25.0), OptimalRainfall: ptr(350.0),
			AverageYieldPerAcre: ptr(7.0), WaterRequirements: ptr("2 irrigations, at branching and pod fill"),
			FertilizerRequirements: ptr("N:P:K 100:40:0 kg/ha plus sulphur"),
			CommonPests: ptr("Mustard aphid"), CommonDiseases: ptr("White rust, Alternaria blight"),
		},
		{
			Crop: domain.Crop{ID: 6, Name: "Chickpea", ScientificName: ptr("Cicer arietinum"),
				LocalNameHindi: ptr("चना"), LocalNamePunjabi: ptr("ਛੋਲੇ"),
				CropType: "pulse", Season: "rabi", DurationDays: ptr(110)},
			MinTemperature: ptr(15.0), MaxTemperature: ptr(30.0), OptimalRainfall: ptr(400.0),
			AverageYieldPerAcre: ptr(6.0), WaterRequirements: ptr("One irrigation at pod formation"),
			FertilizerRequirements: ptr("N:P:K 20:40:0 kg/ha"),
			CommonPests: ptr("Pod borer"), CommonDiseases: ptr("Wilt, Ascochyta blight"),
		},
		{
			Crop: domain.Crop{ID: 7, Name: "Moong", ScientificName: ptr("Vigna radiata"),
				LocalNameHindi: ptr("मूंग"), LocalNamePunjabi: ptr("ਮੂੰਗੀ"),
				CropType: "pulse", Season: "zaid", DurationDays: ptr(65)},
			MinTemperature: ptr(25.0), MaxTemperature: ptr(35.0), OptimalRainfall: ptr(300.0),
			AverageYieldPerAcre: ptr(4.0), WaterRequirements: ptr("3-4 light irrigations"),
			FertilizerRequirements: ptr("N:P:K 12:40:0 kg/ha"),
			CommonPests: ptr("Whitefly, thrips"), CommonDiseases: ptr("Yellow mosaic virus"),
		},
	}

	soilTypes := []domain.SoilType{
		{ID: 1, Name: "Alluvial", Description: ptr("Deposited by the Indo-Gangetic rivers; fertile and well drained"),
			PHRangeMin: ptr(6.5), PHRangeMax: ptr(8.0), OrganicMatterPercentage: ptr(0.5), WaterRetentionCapacity: ptr("medium")},
		{ID: 2, Name: "Black", Description: ptr("Regur soil rich in clay; suited to cotton"),
			PHRangeMin: ptr(7.2), PHRangeMax: ptr(8.5), OrganicMatterPercentage: ptr(0.6), WaterRetentionCapacity: ptr("high")},
		{ID: 3, Name: "Red", Description: ptr("Iron-rich, porous, low in nitrogen"),
			PHRangeMin: ptr(5.5), PHRangeMax: ptr(7.0), OrganicMatterPercentage: ptr(0.3), WaterRetentionCapacity: ptr("low")},
		{ID: 4, Name: "Laterite", Description: ptr("Leached under heavy rainfall; acidic"),
			PHRangeMin: ptr(4.5), PHRangeMax: ptr(6.0), OrganicMatterPercentage: ptr(0.4), WaterRetentionCapacity: ptr("low")},
		{ID: 5, Name: "Sandy loam", Description: ptr("Light texture, quick draining"),
			PHRangeMin: ptr(6.0), PHRangeMax: ptr(7.5), OrganicMatterPercentage: ptr(0.4), WaterRetentionCapacity: ptr("low")},
	}

	shops := []domain.Shop{
		{ID: 1, Name: "Kisan Seva Kendra", ShopType: "cooperative", PhoneNumber: ptr("01612401234"),
			ContactPerson: ptr("Harjit Singh"), Address: "Grain Market Road, Khanna", State: "Punjab", District: "Ludhiana",
			Pincode: ptr("141401"), Latitude: ptr(30.705), Longitude: ptr(76.221), IsVerified: true,
			IsGovernmentApproved: true, Services: ptr("Soil testing, seed treatment"),
			PaymentMethods: ptr("Cash, UPI"), OperatingHours: ptr("08:00-18:00"), AverageRating: ptr(4.5), TotalReviews: 132},
		{ID: 2, Name: "Green Fields Agro Store", ShopType: "private", PhoneNumber: ptr("01752212345"),
			Address: "Tripuri Town, Patiala", State: "Punjab", District: "Patiala", Pincode: ptr("147001"),
			IsVerified: true, PaymentMethods: ptr("Cash, card, UPI"), OperatingHours: ptr("09:00-20:00"),
			AverageRating: ptr(4.1), TotalReviews: 58},
		{ID: 3, Name: "Haryana Beej Bhandar", ShopType: "government", PhoneNumber: ptr("01842267890"),
			Address: "Sector 12, Karnal", State: "Haryana", District: "Karnal", Pincode: ptr("132001"),
			IsVerified: true, IsGovernmentApproved: true, Services: ptr("Certified seed distribution"),
			OperatingHours: ptr("09:00-17:00"), AverageRating: ptr(4.3), TotalReviews: 77},
	}

	inventory := map[int64][]domain.InventoryItem{
		1: {
			{ID: 101, ProductName: "Urea", ProductType: "fertilizer", Brand: ptr("IFFCO"),
				Description: ptr("46% N granular"), PricePerUnit: price(266.5), Unit: "45 kg bag",
				CurrentStock: ptr(420.0), MinimumStock: ptr(50.0), IsAvailable: true, IsGovernmentSubsidized: true},
			{ID: 102, ProductName: "DAP", ProductType: "fertilizer", Brand: ptr("IFFCO"),
				Description: ptr("18:46:0"), PricePerUnit: price(1350), Unit: "50 kg bag",
				CurrentStock: ptr(180.0), MinimumStock: ptr(40.0), IsAvailable: true, IsGovernmentSubsidized: true},
			{ID: 103, ProductName: "Wheat seed HD-3086", ProductType: "seed", Variety: ptr("HD-3086"),
				PricePerUnit: price(1100), Unit: "40 kg bag", CurrentStock: ptr(75.0), IsAvailable: true,
				QualityGrade: ptr("certified"), IsGovernmentSubsidized: true},
		},
		2: {
			{ID: 201, ProductName: "Propiconazole 25% EC", ProductType: "pesticide", Brand: ptr("Tilt"),
				PricePerUnit: price(520), Unit: "250 ml", DiscountPercentage: ptr(5.0),
				CurrentStock: ptr(40.0), IsAvailable: true},
			{ID: 202, ProductName: "Vermicompost", ProductType: "fertilizer", Brand: ptr("Green Fields"),
				PricePerUnit: price(12.5), Unit: "kg", CurrentStock: ptr(2000.0), IsAvailable: true, IsOrganic: true},
			{ID: 203, ProductName: "Imidacloprid 17.8% SL", ProductType: "pesticide", Brand: ptr("Confidor"),
				PricePerUnit: price(345), Unit: "100 ml", CurrentStock: ptr(0.0), IsAvailable: false},
		},
		3: {
			{ID: 301, ProductName: "Basmati seed Pusa 1121", ProductType: "seed", Variety: ptr("Pusa 1121"),
				PricePerUnit: price(95), Unit: "kg", CurrentStock: ptr(900.0), IsAvailable: true,
				QualityGrade: ptr("foundation"), IsGovernmentSubsidized: true},
			{ID: 302, ProductName: "Mustard seed RH-725", ProductType: "seed", Variety: ptr("RH-725"),
				PricePerUnit: price(180), Unit: "kg", CurrentStock: ptr(120.0), IsAvailable: true,
				QualityGrade: ptr("certified")},
		},
	}

	prices := []domain.MarketPrice{
		{ID: 1, CropName: "Wheat", Variety: ptr("HD-3086"), MarketName: "Khanna Mandi", State: "Punjab", District: "Ludhiana",
			MinPrice: price(2275), MaxPrice: price(2350), ModalPrice: price(2310), ArrivalQuantity: ptr(5200.0),
			QualityGrade: ptr("FAQ"), Source: ptr("Agmarknet"), PriceDate: today},
		{ID: 2, CropName: "Wheat", MarketName: "Karnal Mandi", State: "Haryana", District: "Karnal",
			MinPrice: price(2260), MaxPrice: price(2330), ModalPrice: price(2295), ArrivalQuantity: ptr(3100.0),
			Source: ptr("Agmarknet"), PriceDate: today},
		{ID: 3, CropName: "Rice", Variety: ptr("Pusa 1121"), MarketName: "Amritsar Mandi", State: "Punjab", District: "Amritsar",
			MinPrice: price(3900), MaxPrice: price(4350), ModalPrice: price(4150.5), ArrivalQuantity: ptr(1800.0),
			Source: ptr("Agmarknet"), PriceDate: today},
		{ID: 4, CropName: "Mustard", MarketName: "Hisar Mandi", State: "Haryana", District: "Hisar",
			MinPrice: price(5400), MaxPrice: price(5725), ModalPrice: price(5600), ArrivalQuantity: ptr(640.0),
			Source: ptr("Agmarknet"), PriceDate: today},
		{ID: 5, CropName: "Cotton", MarketName: "Bathinda Mandi", State: "Punjab", District: "Bathinda",
			MinPrice: price(6800), MaxPrice: price(7250), ModalPrice: price(7020), ArrivalQuantity: ptr(950.0),
			Source: ptr("Agmarknet"), PriceDate: today},
		{ID: 6, CropName: "Maize", MarketName: "Hoshiarpur Mandi", State: "Punjab", District: "Hoshiarpur",
			MinPrice: price(2050), MaxPrice: price(2200), ModalPrice: price(2125), ArrivalQuantity: ptr(720.0),
			Source: ptr("Agmarknet"), PriceDate: today},
	}

	insights := []domain.MarketInsight{
		{ID: 1, Title: "Wheat prices firm ahead of procurement", InsightType: "trend",
			Content:  "Arrivals are below last season and private buyers are bidding above MSP in Punjab mandis.",
			CropName: ptr("Wheat"), Region: ptr("Punjab"), TrendDirection: ptr("up"), ConfidenceLevel: ptr(0.72),
			TimeHorizon: ptr("2 weeks"), IsAIGenerated: true, ModelVersion: ptr("rules-v1"), Language: "en", CreatedAt: today},
		{ID: 2, Title: "Mustard stable on steady oil demand", InsightType: "forecast",
			Content:  "Expect modal prices to stay within 5,500-5,700 per quintal through the month.",
			CropName: ptr("Mustard"), Region: ptr("Haryana"), TrendDirection: ptr("stable"), ConfidenceLevel: ptr(0.64),
			TimeHorizon: ptr("1 month"), IsAIGenerated: true, ModelVersion: ptr("rules-v1"), Language: "en", CreatedAt: today},
		{ID: 3, Title: "Hold cotton if storage allows", InsightType: "advice",
			Content:  "Export demand is recovering; staggered selling has historically paid off by mid-season.",
			CropName: ptr("Cotton"), Region: ptr("Punjab"), TrendDirection: ptr("up"), ConfidenceLevel: ptr(0.55),
			TimeHorizon: ptr("6 weeks"), Language: "en", CreatedAt: today},
	}

	return &catalog{
		crops:     crops,
		soilTypes: soilTypes,
		shops:     shops,
		inventory: inventory,
		prices:    prices,
		insights:  insights,
	}
}
