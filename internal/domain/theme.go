package domain

// Theme is the palette and font suggestion returned by the theme route.
type Theme struct {
	Palette Palette `json:"palette"`
	Fonts   Fonts   `json:"fonts"`
}

type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// MissingFields lists the JSON paths of every empty field.
func (t Theme) MissingFields() []string {
	var missing []string
	check := func(path, v string) {
		if v == "" {
			missing = append(missing, path)
		}
	}
	check("palette.primary", t.Palette.Primary)
	check("palette.secondary", t.Palette.Secondary)
	check("palette.accent", t.Palette.Accent)
	check("palette.background", t.Palette.Background)
	check("palette.text", t.Palette.Text)
	check("fonts.heading", t.Fonts.Heading)
	check("fonts.body", t.Fonts.Body)
	return missing
}
