package mysticons

const (
	DefaultImageURLPrefix  = "https://raw.githubusercontent.com/MystenLabs/mysticon-legends/main/assets/"
	DefaultImageURLPostfix = ".png"
)

// DisplayParams controls where display image urls point.
type DisplayParams struct {
	ImageURLPrefix  string
	ImageURLPostfix string
}

func DefaultDisplayParams() DisplayParams {
	return DisplayParams{
		ImageURLPrefix:  DefaultImageURLPrefix,
		ImageURLPostfix: DefaultImageURLPostfix,
	}
}

// DisplayFields returns the display keys and their templates, index aligned.
// Templates in braces are filled from the Mysticon's fields by wallets and explorers.
func DisplayFields(p DisplayParams) (keys []string, values []string) {
	fields := [][2]string{
		{"name", "{name}"},
		{"type", "{type}"},
		{"power_level", "{power_level}"},
		{"special_ability", "{special_ability}"},
		{"training_status", "training_status"},
		{"image_url", p.ImageURLPrefix + "{image_url}" + p.ImageURLPostfix},
		{"description", "An engaging blockchain based game where players collect, train, and battle with mythical creatures."},
		{"project_url", "https://github.com/MystenLabs/mysticon-legends"},
		{"creator", "Play Beyond Summit"},
	}

	keys = make([]string, 0, len(fields))
	values = make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f[0])
		values = append(values, f[1])
	}
	return keys, values
}
