package fluid

// LayerOptions configures one wave layer. A zero value means "use the
// built-in layer defaults"; a zero Frequency alone falls back too.
type LayerOptions struct {
	FillStyle       string  `yaml:"fillStyle"`
	AngularSpeed    float64 `yaml:"angularSpeed"`    // degrees/s, drives amplitude modulation
	MaxAmplitude    float64 `yaml:"maxAmplitude"`    // px
	Frequency       float64 `yaml:"frequency"`       // wavelength divisor
	HorizontalSpeed float64 `yaml:"horizontalSpeed"` // px/s
}

// Options is the host-supplied engine configuration. Start from
// DefaultOptions and override fields.
type Options struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Size   float64 `yaml:"size"`

	BorderWidth float64 `yaml:"borderWidth"`
	LevelOffset float64 `yaml:"levelOffset"`
	TopMargin   float64 `yaml:"topMargin"`

	BackgroundColor string `yaml:"backgroundColor"`
	ForegroundColor string `yaml:"foregroundColor"`

	FontFamily    string  `yaml:"fontFamily"`
	FontSize      float64 `yaml:"fontSize"`
	FontFillStyle string  `yaml:"fontFillStyle"`

	DrawShadow         bool `yaml:"drawShadow"`
	DrawText           bool `yaml:"drawText"`
	DrawPercentageSign bool `yaml:"drawPercentageSign"`
	DrawBubbles        bool `yaml:"drawBubbles"`

	// RandomStart randomizes the initial wave phases so that several
	// meters on screen do not move in lockstep.
	RandomStart bool `yaml:"randomStart"`

	ForegroundLayer LayerOptions `yaml:"foregroundLayer"`
	BackgroundLayer LayerOptions `yaml:"backgroundLayer"`
}

// DefaultOptions returns the stock meter configuration.
func DefaultOptions() Options {
	return Options{
		Width:              300,
		Height:             300,
		Size:               300,
		BorderWidth:        25,
		BackgroundColor:    "#e2e2e2",
		ForegroundColor:    "#fafafa",
		FontFamily:         "Arial",
		FontSize:           70,
		FontFillStyle:      "white",
		DrawShadow:         true,
		DrawText:           true,
		DrawPercentageSign: true,
		ForegroundLayer:    DefaultForegroundLayer(),
		BackgroundLayer:    DefaultBackgroundLayer(),
	}
}

func DefaultForegroundLayer() LayerOptions {
	return LayerOptions{
		FillStyle:       "purple",
		AngularSpeed:    0,
		MaxAmplitude:    9,
		Frequency:       30,
		HorizontalSpeed: -150,
	}
}

func DefaultBackgroundLayer() LayerOptions {
	return LayerOptions{
		FillStyle:       "pink",
		AngularSpeed:    140,
		MaxAmplitude:    12,
		Frequency:       40,
		HorizontalSpeed: 150,
	}
}

// normalize fills in whatever the host left empty.
func (o Options) normalize() Options {
	def := DefaultOptions()

	o.Width = max(o.Width, 0)
	o.Height = max(o.Height, 0)
	if o.Size <= 0 {
		o.Size = float64(max(o.Width, o.Height))
	}
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = int(o.Size), int(o.Size)
	}
	o.BorderWidth = max(o.BorderWidth, 0)
	o.TopMargin = max(o.TopMargin, 0)

	if o.BackgroundColor == "" {
		o.BackgroundColor = def.BackgroundColor
	}
	if o.ForegroundColor == "" {
		o.ForegroundColor = def.ForegroundColor
	}
	if o.FontFamily == "" {
		o.FontFamily = def.FontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.FontFillStyle == "" {
		o.FontFillStyle = def.FontFillStyle
	}

	o.ForegroundLayer = o.ForegroundLayer.normalize(def.ForegroundLayer)
	o.BackgroundLayer = o.BackgroundLayer.normalize(def.BackgroundLayer)
	return o
}

func (l LayerOptions) normalize(def LayerOptions) LayerOptions {
	if l == (LayerOptions{}) {
		return def
	}
	if l.FillStyle == "" {
		l.FillStyle = def.FillStyle
	}
	if l.Frequency <= 0 {
		l.Frequency = def.Frequency
	}
	return l
}
