// Package template holds the built-in catalog of visual style presets and
// the operations for custom templates.
package template

import (
	"strings"

	"textcard/internal/model"
)

// baseStyle is the shared baseline the presets build on.
func baseStyle() model.CardStyle {
	return model.CardStyle{
		BackgroundColor: "#ffffff",
		TextColor:       "#333333",
		TitleColor:      "#1a1a1a",
		FontFamily:      "Inter, system-ui, sans-serif",
		FontSize:        14,
		TitleSize:       20,
		LineHeight:      1.5,
		Padding:         20,
		BorderRadius:    12,
		Shadow:          "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
		Border:          model.Border{Width: 0, Style: "solid", Color: "transparent"},
	}
}

func preset(id, name, description, category, preview string, customize func(*model.CardStyle)) model.Template {
	style := baseStyle()
	customize(&style)
	return model.Template{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Preview:     preview,
		Style:       style,
	}
}

// defaults is the built-in catalog in stable order. Treated as read-only;
// accessors return copies.
var defaults = []model.Template{
	preset("default", "经典白卡", "简洁优雅的经典设计，适合正式内容展示", "basic",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=elegant%20white%20card%20with%20subtle%20shadow%20minimal%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.TextColor = "#2d3748"
			s.TitleColor = "#1a202c"
			s.FontFamily = "Georgia, serif"
			s.TitleSize = 28
			s.Padding = 32
			s.BorderRadius = 16
			s.Shadow = "0 10px 25px -5px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05)"
			s.Border = model.Border{Width: 1, Style: "solid", Color: "#e2e8f0"}
		}),
	preset("modern", "科技蓝调", "现代科技感设计，深蓝渐变配色，适合技术和商务内容", "business",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=modern%20tech%20card%20blue%20gradient%20sleek%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#1e40af"
			s.TextColor = "#e0e7ff"
			s.TitleColor = "#ffffff"
			s.FontFamily = "SF Pro Display, -apple-system, sans-serif"
			s.TitleSize = 26
			s.FontSize = 15
			s.Gradient = &model.Gradient{From: "#1e40af", To: "#3730a3", Direction: "to bottom right"}
			s.BorderRadius = 20
			s.Shadow = "0 20px 40px -12px rgba(30, 64, 175, 0.4), 0 8px 16px -4px rgba(30, 64, 175, 0.2)"
			s.Border = model.Border{Width: 1, Style: "solid", Color: "rgba(255, 255, 255, 0.1)"}
		}),
	preset("colorful", "彩虹渐变", "充满活力的彩虹渐变设计，适合创意和艺术内容", "creative",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=vibrant%20rainbow%20gradient%20card%20creative%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#ff6b6b"
			s.TextColor = "#ffffff"
			s.TitleColor = "#ffffff"
			s.FontFamily = "Poppins, sans-serif"
			s.TitleSize = 30
			s.FontSize = 16
			s.FontWeight = 600
			s.Gradient = &model.Gradient{From: "#ff6b6b", To: "#4ecdc4", Direction: "to bottom right"}
			s.BorderRadius = 24
			s.Shadow = "0 25px 50px -12px rgba(255, 107, 107, 0.4), 0 0 0 1px rgba(255, 255, 255, 0.1)"
			s.Border = model.Border{Width: 2, Style: "solid", Color: "rgba(255, 255, 255, 0.2)"}
		}),
	preset("dark", "暗夜精英", "高端深色主题，金色点缀，适合专业和高端内容", "dark",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=luxury%20dark%20card%20gold%20accents%20premium%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#0f172a"
			s.TextColor = "#cbd5e1"
			s.TitleColor = "#fbbf24"
			s.FontFamily = "Playfair Display, serif"
			s.TitleSize = 32
			s.FontSize = 16
			s.Gradient = &model.Gradient{From: "#0f172a", To: "#1e293b", Direction: "to bottom right"}
			s.BorderRadius = 18
			s.Shadow = "0 25px 50px -12px rgba(0, 0, 0, 0.8), 0 0 0 1px rgba(251, 191, 36, 0.1)"
			s.Border = model.Border{Width: 1, Style: "solid", Color: "rgba(251, 191, 36, 0.3)"}
		}),
	preset("elegant", "香槟优雅", "奢华香槟色调，优雅衬线字体，适合高端和文艺内容", "elegant",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=luxury%20champagne%20elegant%20card%20serif%20typography&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#fef7ed"
			s.TextColor = "#78716c"
			s.TitleColor = "#a16207"
			s.FontFamily = "Cormorant Garamond, serif"
			s.TitleSize = 34
			s.FontSize = 17
			s.LineHeight = 1.8
			s.Gradient = &model.Gradient{From: "#fef7ed", To: "#fed7aa", Direction: "to bottom right"}
			s.Shadow = "0 20px 40px -12px rgba(161, 98, 7, 0.15), 0 8px 16px -4px rgba(161, 98, 7, 0.1)"
			s.Padding = 40
			s.Border = model.Border{Width: 2, Style: "solid", Color: "#d97706"}
		}),
	preset("tech", "赛博朋克", "未来科技风格，霓虹色彩，适合科技和游戏内容", "tech",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=cyberpunk%20neon%20tech%20card%20futuristic%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#0a0a0a"
			s.TextColor = "#00ff88"
			s.TitleColor = "#ff0080"
			s.FontFamily = "Orbitron, monospace"
			s.TitleSize = 28
			s.FontSize = 15
			s.FontWeight = 700
			s.Gradient = &model.Gradient{From: "#0a0a0a", To: "#1a1a2e", Direction: "to bottom right"}
			s.BorderRadius = 8
			s.Shadow = "0 0 30px rgba(255, 0, 128, 0.5), 0 0 60px rgba(0, 255, 136, 0.2)"
			s.Border = model.Border{Width: 2, Style: "solid", Color: "#00ff88"}
		}),
	preset("nature", "森林晨曦", "自然绿色渐变，有机曲线设计，适合环保和健康内容", "nature",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=forest%20morning%20green%20gradient%20organic%20card%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#065f46"
			s.TextColor = "#d1fae5"
			s.TitleColor = "#ffffff"
			s.FontFamily = "Nunito, sans-serif"
			s.TitleSize = 29
			s.FontSize = 16
			s.Gradient = &model.Gradient{From: "#065f46", To: "#059669", Direction: "to bottom right"}
			s.BorderRadius = 28
			s.Shadow = "0 25px 50px -12px rgba(6, 95, 70, 0.4), 0 0 0 1px rgba(255, 255, 255, 0.1)"
			s.Border = model.Border{Width: 3, Style: "solid", Color: "rgba(255, 255, 255, 0.2)"}
		}),
	preset("vintage", "复古牛皮纸", "怀旧牛皮纸质感，复古印刷风格，适合历史和文化内容", "vintage",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=vintage%20kraft%20paper%20retro%20typography%20aged%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#d2b48c"
			s.TextColor = "#5d4037"
			s.TitleColor = "#3e2723"
			s.FontFamily = "Crimson Text, serif"
			s.TitleSize = 31
			s.FontSize = 17
			s.LineHeight = 1.7
			s.Gradient = &model.Gradient{From: "#d2b48c", To: "#ddbf94", Direction: "to bottom right"}
			s.BorderRadius = 6
			s.Shadow = "0 8px 16px -4px rgba(93, 64, 55, 0.3), inset 0 1px 0 rgba(255, 255, 255, 0.1)"
			s.Padding = 36
			s.Border = model.Border{Width: 3, Style: "double", Color: "#8d6e63"}
		}),
	preset("neon", "霓虹夜景", "炫酷霓虹灯效果，适合音乐和娱乐内容", "creative",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=neon%20lights%20card%20design%20purple%20pink%20glow&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#1a0033"
			s.TextColor = "#ff00ff"
			s.TitleColor = "#00ffff"
			s.FontFamily = "Audiowide, cursive"
			s.TitleSize = 30
			s.FontSize = 16
			s.FontWeight = 600
			s.Gradient = &model.Gradient{From: "#1a0033", To: "#330066", Direction: "to bottom right"}
			s.BorderRadius = 15
			s.Shadow = "0 0 40px rgba(255, 0, 255, 0.6), 0 0 80px rgba(0, 255, 255, 0.3)"
			s.Border = model.Border{Width: 2, Style: "solid", Color: "#ff00ff"}
		}),
	preset("minimalist", "极简主义", "纯净极简设计，大量留白，适合设计和艺术内容", "elegant",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=minimalist%20clean%20white%20space%20simple%20typography&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#fafafa"
			s.TextColor = "#424242"
			s.TitleColor = "#212121"
			s.FontFamily = "Helvetica Neue, sans-serif"
			s.TitleSize = 36
			s.LineHeight = 2.0
			s.BorderRadius = 0
			s.Shadow = "none"
			s.Padding = 60
			s.Border = model.Border{Width: 1, Style: "solid", Color: "#e0e0e0"}
		}),
	preset("watercolor", "水彩艺术", "柔和水彩渐变效果，适合艺术和创意内容", "creative",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=watercolor%20soft%20gradient%20artistic%20card%20design&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#fce4ec"
			s.TextColor = "#4a148c"
			s.TitleColor = "#6a1b9a"
			s.FontFamily = "Dancing Script, cursive"
			s.TitleSize = 32
			s.FontSize = 16
			s.Gradient = &model.Gradient{From: "#fce4ec", To: "#f8bbd9", Direction: "to bottom right"}
			s.BorderRadius = 25
			s.Shadow = "0 15px 35px -10px rgba(106, 27, 154, 0.2)"
		}),
	preset("industrial", "工业金属", "硬朗工业风格，金属质感，适合机械和工程内容", "tech",
		"https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=industrial%20metal%20steel%20card%20design%20mechanical&image_size=landscape_4_3",
		func(s *model.CardStyle) {
			s.BackgroundColor = "#37474f"
			s.TextColor = "#cfd8dc"
			s.TitleColor = "#ff6f00"
			s.FontFamily = "Roboto Condensed, sans-serif"
			s.TitleSize = 28
			s.FontSize = 15
			s.FontWeight = 700
			s.Gradient = &model.Gradient{From: "#37474f", To: "#455a64", Direction: "to bottom right"}
			s.BorderRadius = 4
			s.Shadow = "0 8px 16px -4px rgba(0, 0, 0, 0.4), inset 0 1px 0 rgba(255, 255, 255, 0.1)"
			s.Border = model.Border{Width: 3, Style: "solid", Color: "#ff6f00"}
		}),
}

// Category describes one catalog category with its current template count.
type Category struct {
	ID    string
	Name  string
	Count int
}

var categoryNames = []struct{ id, name string }{
	{"all", "全部模板"},
	{"basic", "基础模板"},
	{"business", "商务风格"},
	{"creative", "创意风格"},
	{"dark", "深色主题"},
	{"elegant", "优雅风格"},
	{"tech", "科技风格"},
	{"nature", "自然风格"},
	{"vintage", "复古风格"},
}

// All returns the built-in templates in catalog order.
func All() []model.Template {
	out := make([]model.Template, len(defaults))
	for i, tpl := range defaults {
		out[i] = cloneTemplate(tpl)
	}
	return out
}

// ByID finds a template by id. The second return is false when no template
// with that id exists; callers must treat this as a normal negative result.
func ByID(id string) (model.Template, bool) {
	for _, tpl := range defaults {
		if tpl.ID == id {
			return cloneTemplate(tpl), true
		}
	}
	return model.Template{}, false
}

// ByCategory returns templates in the given category. Category "all" is the
// identity filter.
func ByCategory(category string) []model.Template {
	if category == "all" {
		return All()
	}
	var out []model.Template
	for _, tpl := range defaults {
		if tpl.Category == category {
			out = append(out, cloneTemplate(tpl))
		}
	}
	return out
}

// Search matches query case-insensitively against name, description and
// category. An empty or whitespace-only query returns the whole catalog.
func Search(query string) []model.Template {
	query = strings.TrimSpace(query)
	if query == "" {
		return All()
	}

	term := strings.ToLower(query)
	var out []model.Template
	for _, tpl := range defaults {
		if strings.Contains(strings.ToLower(tpl.Name), term) ||
			strings.Contains(strings.ToLower(tpl.Description), term) ||
			strings.Contains(strings.ToLower(tpl.Category), term) {
			out = append(out, cloneTemplate(tpl))
		}
	}
	return out
}

// Categories returns the category list with counts recomputed from the
// current catalog contents.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for _, c := range categoryNames {
		count := 0
		if c.id == "all" {
			count = len(defaults)
		} else {
			for _, tpl := range defaults {
				if tpl.Category == c.id {
					count++
				}
			}
		}
		out = append(out, Category{ID: c.id, Name: c.name, Count: count})
	}
	return out
}

// Recommended returns templates suited to the given content type, falling
// back to a general selection for unknown types.
func Recommended(contentType string) []model.Template {
	recommendations := map[string][]string{
		"tutorial": {"modern", "tech", "default"},
		"quote":    {"elegant", "vintage", "default"},
		"data":     {"tech", "modern", "default"},
		"news":     {"modern", "default", "dark"},
		"creative": {"colorful", "nature", "elegant"},
		"business": {"modern", "elegant", "default"},
	}

	ids, ok := recommendations[contentType]
	if !ok {
		ids = []string{"default", "modern", "elegant"}
	}

	var out []model.Template
	for _, id := range ids {
		if tpl, found := ByID(id); found {
			out = append(out, tpl)
		}
	}
	return out
}

func cloneTemplate(tpl model.Template) model.Template {
	out := tpl
	out.Style = tpl.Style.Clone()
	return out
}
