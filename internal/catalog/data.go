package catalog

import (
	"time"

	"pc-park/internal/domain"
)

// seedProducts is the undiscounted catalog, in display order.
var seedProducts = []domain.Product{
	{
		ID:            "1",
		Name:          "AMD Athlon PRO 300GE AM4 Socket Desktop Processor with Radeon Vega 3 Graphics",
		Description:   "Entry-level CPU with integrated graphics for basic computing",
		Price:         4900,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "cpu",
		Brand:         "AMD",
		Compatibility: []string{"am4"},
	},
	{
		ID:            "2",
		Name:          "Intel Pentium Gold G6400 10th gen Coffee Lake Processor",
		Description:   "Dual-core processor for basic computing tasks",
		Price:         7300,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "cpu",
		Brand:         "Intel",
		Compatibility: []string{"lga1200"},
	},
	{
		ID:            "3",
		Name:          "AMD Ryzen 5 5600X Processor with Radeon RX Vega 11 Graphics",
		Description:   "6-core, 12-thread processor with excellent gaming performance",
		Price:         6900,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "cpu",
		Brand:         "AMD",
		Compatibility: []string{"am4"},
	},
	{
		ID:            "4",
		Name:          "AMD Ryzen 5 5600G Processor",
		Description:   "6-core processor with integrated Radeon graphics",
		Price:         7500,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "cpu",
		Brand:         "AMD",
		Compatibility: []string{"am4"},
	},
	{
		ID:            "5",
		Name:          "Intel 10th Gen Core i3-10100F Processor",
		Description:   "4-core, 8-thread processor for budget gaming builds",
		Price:         7200,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "cpu",
		Brand:         "Intel",
		Compatibility: []string{"lga1200"},
	},
	{
		ID:            "6",
		Name:          "Intel Pentium Gold G7400 Coffee Lake Processor",
		Description:   "Modern budget CPU for office and light computing",
		Price:         7600,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "cpu",
		Brand:         "Intel",
		Compatibility: []string{"lga1700"},
	},
	{
		ID:            "7",
		Name:          "ASUS PRIME B450M-A II AMD Motherboard",
		Description:   "Micro-ATX motherboard with solid features for AMD builds",
		Price:         9500,
		Image:         "/motherboard.jpg",
		Emoji:         "🔄",
		Category:      "motherboard",
		Brand:         "ASUS",
		Compatibility: []string{"am4", "ddr4"},
	},
	{
		ID:            "8",
		Name:          "MSI MAG B550M MORTAR WIFI Gaming Motherboard",
		Description:   "Feature-rich B550 motherboard with WiFi 6 connectivity",
		Price:         16800,
		Image:         "/motherboard.jpg",
		Emoji:         "🔄",
		Category:      "motherboard",
		Brand:         "MSI",
		Compatibility: []string{"am4", "ddr4"},
	},
	{
		ID:            "9",
		Name:          "Corsair Vengeance LPX 8GB DDR4 RAM",
		Description:   "Reliable DDR4 memory for desktop computers",
		Price:         2600,
		Image:         "/ram.jpg",
		Emoji:         "💾",
		Category:      "ram",
		Brand:         "Corsair",
		Compatibility: []string{"ddr4"},
	},
	{
		ID:            "10",
		Name:          "G.Skill Trident Z RGB 16GB DDR4 RAM",
		Description:   "High-performance RGB memory for gaming PCs",
		Price:         5800,
		Image:         "/ram.jpg",
		Emoji:         "💾",
		Category:      "ram",
		Brand:         "G.Skill",
		Compatibility: []string{"ddr4"},
	},
	{
		ID:          "11",
		Name:        "Samsung 970 EVO Plus 500GB NVMe SSD",
		Description: "High-speed NVMe SSD with excellent reliability",
		Price:       6500,
		Image:       "/storage.jpg",
		Emoji:       "💿",
		Category:    "storage",
		Brand:       "Samsung",
	},
	{
		ID:          "12",
		Name:        "WD Blue 1TB SATA SSD",
		Description: "Reliable and fast storage for everyday computing",
		Price:       7800,
		Image:       "/storage.jpg",
		Emoji:       "💿",
		Category:    "storage",
		Brand:       "Western Digital",
	},
	{
		ID:          "13",
		Name:        "NVIDIA GTX 1650 4GB Graphics Card",
		Description: "Entry-level GPU for 1080p gaming and content creation",
		Price:       17500,
		Image:       "/gpu.jpg",
		Emoji:       "🎮",
		Category:    "gpu",
		Brand:       "NVIDIA",
	},
	{
		ID:          "14",
		Name:        "AMD Radeon RX 6600 8GB Graphics Card",
		Description: "Mid-range GPU with excellent 1080p gaming performance",
		Price:       25000,
		Image:       "/gpu.jpg",
		Emoji:       "🎮",
		Category:    "gpu",
		Brand:       "AMD",
	},
	{
		ID:          "15",
		Name:        "Corsair RM650 80+ Gold Power Supply",
		Description: "Reliable modular power supply with Gold efficiency",
		Price:       8900,
		Image:       "/psu.jpg",
		Emoji:       "🔌",
		Category:    "power-supply",
		Brand:       "Corsair",
	},
	{
		ID:          "16",
		Name:        "NZXT H510 Mid Tower Case",
		Description: "Sleek and modern PC case with excellent cable management",
		Price:       7800,
		Image:       "/case.jpg",
		Emoji:       "🖥️",
		Category:    "case",
		Brand:       "NZXT",
	},
	{
		ID:          "17",
		Name:        "Cooler Master Hyper 212 CPU Cooler",
		Description: "Popular air cooler with excellent cooling performance",
		Price:       3600,
		Image:       "/cooler.jpg",
		Emoji:       "❄️",
		Category:    "cooler",
		Brand:       "Cooler Master",
	},
	{
		ID:          "18",
		Name:        "ASUS ROG Gaming Monitor 27\" 165Hz",
		Description: "QHD IPS panel with 1ms response time",
		Price:       34999,
		Image:       "/monitor.jpg",
		Emoji:       "🖥️",
		Category:    "peripherals",
		Subcategory: "monitor",
		Brand:       "ASUS",
	},
	{
		ID:          "19",
		Name:        "Samsung Odyssey G5 32-inch 1440p 144Hz Gaming Monitor",
		Description: "Curved gaming monitor with excellent immersion",
		Price:       32500,
		Image:       "/monitor.jpg",
		Emoji:       "🖥️",
		Category:    "peripherals",
		Subcategory: "monitor",
		Brand:       "Samsung",
	},
	{
		ID:          "20",
		Name:        "LG UltraGear 24-inch 1080p 144Hz Gaming Monitor",
		Description: "Fast refresh rate monitor for competitive gaming",
		Price:       21500,
		Image:       "/monitor.jpg",
		Emoji:       "🖥️",
		Category:    "peripherals",
		Subcategory: "monitor",
		Brand:       "LG",
	},
	{
		ID:          "21",
		Name:        "Logitech G Pro X Mechanical Gaming Keyboard",
		Description: "Pro-grade mechanical keyboard with hot-swappable switches",
		Price:       12500,
		Image:       "/keyboard.jpg",
		Emoji:       "⌨️",
		Category:    "peripherals",
		Subcategory: "keyboard",
		Brand:       "Logitech",
	},
	{
		ID:          "22",
		Name:        "Razer Huntsman V2 Mechanical Keyboard",
		Description: "Optical switches with 8000Hz polling rate for competitive gaming",
		Price:       18999,
		Image:       "/keyboard.jpg",
		Emoji:       "⌨️",
		Category:    "peripherals",
		Subcategory: "keyboard",
		Brand:       "Razer",
	},
	{
		ID:          "23",
		Name:        "Corsair K70 RGB MK.2 Mechanical Gaming Keyboard",
		Description: "Durable Cherry MX switches with per-key RGB lighting",
		Price:       13800,
		Image:       "/keyboard.jpg",
		Emoji:       "⌨️",
		Category:    "peripherals",
		Subcategory: "keyboard",
		Brand:       "Corsair",
	},
	{
		ID:          "24",
		Name:        "Logitech G502 Hero Gaming Mouse",
		Description: "High-performance gaming mouse with HERO 25K sensor",
		Price:       3800,
		Image:       "/mouse.jpg",
		Emoji:       "🖱️",
		Category:    "peripherals",
		Subcategory: "mouse",
		Brand:       "Logitech",
	},
	{
		ID:          "25",
		Name:        "Logitech G Pro X Superlight Wireless Mouse",
		Description: "Ultra-lightweight wireless gaming mouse with flawless tracking",
		Price:       14999,
		Image:       "/mouse.jpg",
		Emoji:       "🖱️",
		Category:    "peripherals",
		Subcategory: "mouse",
		Brand:       "Logitech",
	},
	{
		ID:          "26",
		Name:        "Razer DeathAdder V2 Gaming Mouse",
		Description: "Ergonomic gaming mouse with optical switches",
		Price:       4200,
		Image:       "/mouse.jpg",
		Emoji:       "🖱️",
		Category:    "peripherals",
		Subcategory: "mouse",
		Brand:       "Razer",
	},
	{
		ID:          "27",
		Name:        "SteelSeries Rival 3 Gaming Mouse",
		Description: "Budget-friendly gaming mouse with RGB lighting",
		Price:       2900,
		Image:       "/mouse.jpg",
		Emoji:       "🖱️",
		Category:    "peripherals",
		Subcategory: "mouse",
		Brand:       "SteelSeries",
	},
	{
		ID:          "28",
		Name:        "Logitech G Pro X Wireless Gaming Headset",
		Description: "Premium wireless gaming headset with Blue VO!CE microphone technology",
		Price:       15500,
		Image:       "/headset.jpg",
		Emoji:       "🎧",
		Category:    "peripherals",
		Subcategory: "headset",
		Brand:       "Logitech",
	},
	{
		ID:          "29",
		Name:        "HyperX Cloud II Gaming Headset",
		Description: "Comfortable gaming headset with virtual 7.1 surround sound",
		Price:       7900,
		Image:       "/headset.jpg",
		Emoji:       "🎧",
		Category:    "peripherals",
		Subcategory: "headset",
		Brand:       "HyperX",
	},
	{
		ID:          "30",
		Name:        "SteelSeries Arctis 7 Wireless Gaming Headset",
		Description: "Award-winning wireless gaming audio with long battery life",
		Price:       14800,
		Image:       "/headset.jpg",
		Emoji:       "🎧",
		Category:    "peripherals",
		Subcategory: "headset",
		Brand:       "SteelSeries",
	},
	{
		ID:          "31",
		Name:        "APC Back-UPS 650VA UPS Battery Backup",
		Description: "Essential battery backup for power protection",
		Price:       6500,
		Image:       "/ups.jpg",
		Emoji:       "🔋",
		Category:    "peripherals",
		Subcategory: "ups",
		Brand:       "APC",
	},
	{
		ID:          "32",
		Name:        "Microtek UPS SEBz 1100VA Pure Sine Wave Inverter",
		Description: "Pure sine wave UPS for sensitive electronics",
		Price:       9800,
		Image:       "/ups.jpg",
		Emoji:       "🔋",
		Category:    "peripherals",
		Subcategory: "ups",
		Brand:       "Microtek",
	},
	{
		ID:          "33",
		Name:        "CyberPower CP1500EPFCLCD PFC Sinewave UPS System",
		Description: "Advanced UPS with LCD display and management software",
		Price:       14500,
		Image:       "/ups.jpg",
		Emoji:       "🔋",
		Category:    "peripherals",
		Subcategory: "ups",
		Brand:       "CyberPower",
	},
	{
		ID:            "34",
		Name:          "AMD Ryzen 9 7950X3D Processor",
		Description:   "16-core, 32-thread with 3D V-Cache for ultimate gaming performance",
		Price:         64999,
		Image:         "/cpu.jpg",
		Emoji:         "⚡",
		Category:      "processors",
		Brand:         "AMD",
		Compatibility: []string{"am5"},
	},
	{
		ID:          "35",
		Name:        "EVGA SuperNOVA 1000 G6 Power Supply",
		Description: "1000W fully modular PSU with 80 PLUS Gold certification",
		Price:       17999,
		Image:       "/psu.jpg",
		Emoji:       "🔌",
		Category:    "power-supplies",
		Brand:       "EVGA",
	},
	{
		ID:          "36",
		Name:        "MSI Katana 15 Gaming Laptop",
		Description: "Intel Core i7, RTX 4060, 16GB RAM, 1TB SSD, 15.6\" 144Hz display",
		Price:       129999,
		Image:       "/laptop.jpg",
		Emoji:       "💻",
		Category:    "laptops",
		Brand:       "MSI",
	},
}

// seedDiscountRules holds at most one rule per product.
var seedDiscountRules = []domain.DiscountRule{
	{ProductID: "3", DiscountPercent: 15, Expiry: mustTime("2025-06-15T00:00:00Z")},
	{ProductID: "7", DiscountPercent: 10, Expiry: mustTime("2025-06-01T00:00:00Z")},
	{ProductID: "10", DiscountPercent: 20, Expiry: mustTime("2025-05-20T00:00:00Z")},
	{ProductID: "14", DiscountPercent: 25, Expiry: mustTime("2025-07-10T00:00:00Z")},
	{ProductID: "18", DiscountPercent: 30, Expiry: mustTime("2025-05-30T00:00:00Z")},
}

var seedBundleStubs = []domain.BundleStub{
	{
		ID:              "bundle-1",
		Name:            "Budget Gaming PC Bundle",
		Description:     "Perfect starter gaming PC with everything you need to get started",
		ProductIDs:      []string{"3", "7", "10", "11"},
		DiscountedPrice: 24500,
		DealType:        domain.DealTypeBundle,
		EndsAt:          mustTime("2025-06-30T00:00:00Z"),
		Code:            "BUDGET-GAMING",
	},
	{
		ID:              "bundle-2",
		Name:            "Streaming Setup Bundle",
		Description:     "Complete streaming setup with high-quality peripherals",
		ProductIDs:      []string{"18", "21", "25", "28"},
		DiscountedPrice: 67000,
		DealType:        domain.DealTypePackage,
		EndsAt:          mustTime("2025-07-15T00:00:00Z"),
		Code:            "STREAM-SETUP",
	},
	{
		ID:              "bundle-3",
		Name:            "Pro Gaming Peripheral Bundle",
		Description:     "High-end peripherals for competitive gaming",
		ProductIDs:      []string{"25", "22", "28", "19"},
		DiscountedPrice: 76000,
		DealType:        domain.DealTypeCombo,
		EndsAt:          mustTime("2025-05-30T00:00:00Z"),
		Code:            "PRO-GAMING",
	},
	{
		ID:              "bundle-4",
		Name:            "Home Office Productivity Bundle",
		Description:     "Everything you need for a productive home office setup",
		ProductIDs:      []string{"20", "23", "26", "31"},
		DiscountedPrice: 42000,
		DealType:        domain.DealTypePackage,
		EndsAt:          mustTime("2025-06-20T00:00:00Z"),
		Code:            "HOME-OFFICE",
	},
	{
		ID:              "bundle-5",
		Name:            "Content Creator's Dream Bundle",
		Description:     "Powerful setup for video editing, streaming, and content creation",
		ProductIDs:      []string{"3", "14", "8", "11", "15"},
		DiscountedPrice: 56500,
		DealType:        domain.DealTypeBundle,
		EndsAt:          mustTime("2025-07-10T00:00:00Z"),
		Code:            "CREATOR-DREAM",
	},
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

