package model

import "encoding/json"

// Border describes a card border in its canonical structured form.
type Border struct {
	Width int    `json:"width"`
	Style string `json:"style"`
	Color string `json:"color"`
}

// Gradient describes an optional background gradient.
type Gradient struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Direction string `json:"direction"`
}

// CardStyle holds the visual rendering parameters of a card.
// Styles are value types: attaching a style to a card always copies it,
// so templates and cards never share a mutable style.
type CardStyle struct {
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	TitleColor      string    `json:"titleColor"`
	FontSize        int       `json:"fontSize"`
	TitleSize       int       `json:"titleSize,omitempty"`
	FontFamily      string    `json:"fontFamily"`
	FontWeight      int       `json:"fontWeight,omitempty"`
	LineHeight      float64   `json:"lineHeight,omitempty"`
	BorderRadius    int       `json:"borderRadius"`
	Border          Border    `json:"border"`
	Shadow          string    `json:"shadow"`
	Padding         int       `json:"padding"`
	BackgroundImage string    `json:"backgroundImage,omitempty"`
	Gradient        *Gradient `json:"gradient,omitempty"`
}

// DefaultStyle returns the baseline card style. Every card construction
// merges onto this, so a card's style is always fully populated.
func DefaultStyle() CardStyle {
	return CardStyle{
		BackgroundColor: "#ffffff",
		TextColor:       "#374151",
		TitleColor:      "#1f2937",
		FontSize:        16,
		FontFamily:      "Inter, system-ui, sans-serif",
		BorderRadius:    12,
		Border:          Border{Width: 0, Style: "solid", Color: "transparent"},
		Shadow:          "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
		Padding:         24,
	}
}

// Clone returns a deep copy of the style.
func (s CardStyle) Clone() CardStyle {
	out := s
	if s.Gradient != nil {
		g := *s.Gradient
		out.Gradient = &g
	}
	return out
}

// Merge returns a copy of s with the non-zero fields of override applied.
// Used when constructing a card with partial style overrides; full style
// replacement goes through ApplyTemplate instead.
func (s CardStyle) Merge(override CardStyle) CardStyle {
	out := s.Clone()
	if override.BackgroundColor != "" {
		out.BackgroundColor = override.BackgroundColor
	}
	if override.TextColor != "" {
		out.TextColor = override.TextColor
	}
	if override.TitleColor != "" {
		out.TitleColor = override.TitleColor
	}
	if override.FontSize != 0 {
		out.FontSize = override.FontSize
	}
	if override.TitleSize != 0 {
		out.TitleSize = override.TitleSize
	}
	if override.FontFamily != "" {
		out.FontFamily = override.FontFamily
	}
	if override.FontWeight != 0 {
		out.FontWeight = override.FontWeight
	}
	if override.LineHeight != 0 {
		out.LineHeight = override.LineHeight
	}
	if override.BorderRadius != 0 {
		out.BorderRadius = override.BorderRadius
	}
	if override.Border != (Border{}) {
		out.Border = override.Border
	}
	if override.Shadow != "" {
		out.Shadow = override.Shadow
	}
	if override.Padding != 0 {
		out.Padding = override.Padding
	}
	if override.BackgroundImage != "" {
		out.BackgroundImage = override.BackgroundImage
	}
	if override.Gradient != nil {
		g := *override.Gradient
		out.Gradient = &g
	}
	return out
}

// UnmarshalJSON accepts both the canonical structured border and the legacy
// flat borderWidth/borderStyle/borderColor fields, normalizing to the
// structured form. The structured form wins when both are present.
func (s *CardStyle) UnmarshalJSON(data []byte) error {
	type plain CardStyle
	aux := struct {
		*plain
		RawBorder   *Border `json:"border"`
		BorderWidth *int    `json:"borderWidth"`
		BorderStyle *string `json:"borderStyle"`
		BorderColor *string `json:"borderColor"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.RawBorder != nil {
		s.Border = *aux.RawBorder
	} else if aux.BorderWidth != nil || aux.BorderStyle != nil || aux.BorderColor != nil {
		b := Border{Style: "solid", Color: "transparent"}
		if aux.BorderWidth != nil {
			b.Width = *aux.BorderWidth
		}
		if aux.BorderStyle != nil {
			b.Style = *aux.BorderStyle
		}
		if aux.BorderColor != nil {
			b.Color = *aux.BorderColor
		}
		s.Border = b
	}

	return nil
}
