package builder

import "pc-park/internal/domain"

var coreCategories = []domain.ComponentCategory{
	{ID: "processors", Name: "Processor", Slug: "processor", Icon: "⚡", Required: true},
	{ID: "motherboard", Name: "Motherboard", Slug: "motherboard", Icon: "🔄", Required: true},
	{ID: "ram", Name: "Memory", Slug: "memory", Icon: "💾", Required: true},
	{ID: "storage", Name: "Storage", Slug: "storage", Icon: "💿", Required: true},
	{ID: "gpu", Name: "Graphics Card", Slug: "graphics-card", Icon: "🎮"},
	{ID: "power-supply", Name: "Power Supply", Slug: "power-supply", Icon: "🔌", Required: true},
	{ID: "case", Name: "Case", Slug: "case", Icon: "🖥️", Required: true},
	{ID: "cooler", Name: "CPU Cooler", Slug: "cpu-cooler", Icon: "❄️", Required: true},
}

var peripheralCategories = []domain.ComponentCategory{
	{ID: "monitor", Name: "Monitor", Slug: "monitor", Icon: "🖥️", Peripheral: true},
	{ID: "keyboard", Name: "Keyboard", Slug: "keyboard", Icon: "⌨️", Peripheral: true},
	{ID: "mouse", Name: "Mouse", Slug: "mouse", Icon: "🖱️", Peripheral: true},
	{ID: "headset", Name: "Headset", Slug: "headset", Icon: "🎧", Peripheral: true},
	{ID: "ups", Name: "UPS", Slug: "ups", Icon: "🔋", Peripheral: true},
}

// catalogAliases lists additional catalog categories that fill a core slot.
var catalogAliases = map[string][]string{
	"processors":   {"cpu"},
	"power-supply": {"power-supplies"},
}

// Categories returns every slot, core slots first.
func Categories() []domain.ComponentCategory {
	out := make([]domain.ComponentCategory, 0, len(coreCategories)+len(peripheralCategories))
	out = append(out, coreCategories...)
	return append(out, peripheralCategories...)
}

// LookupCategory finds a slot by id.
func LookupCategory(id string) (domain.ComponentCategory, bool) {
	for _, c := range Categories() {
		if c.ID == id {
			return c, true
		}
	}
	return domain.ComponentCategory{}, false
}

// RequiredCount is the number of required slots.
func RequiredCount() int {
	n := 0
	for _, c := range coreCategories {
		if c.Required {
			n++
		}
	}
	return n
}

// Fits reports whether p can fill the slot.
func Fits(slot domain.ComponentCategory, p domain.Product) bool {
	if slot.Peripheral {
		return p.Subcategory == slot.ID
	}
	if p.Category == slot.ID {
		return true
	}
	for _, alias := range catalogAliases[slot.ID] {
		if p.Category == alias {
			return true
		}
	}
	return false
}
