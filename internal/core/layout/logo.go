package layout

// LogoDetails is the natural pixel size of a loaded logo image.
type LogoDetails struct {
	NaturalWidth  float64 `json:"natural_width"`
	NaturalHeight float64 `json:"natural_height"`
}

func (d LogoDetails) valid() bool {
	return d.NaturalWidth > 0 && d.NaturalHeight > 0
}

// LogoOverrides repositions a custom logo. A nil axis keeps the default
// position; YOffset is added after Y is resolved.
type LogoOverrides struct {
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	YOffset float64  `json:"y_offset"`
}

// LogoChoice is one of NoLogo, DefaultLogo or CustomLogo.
type LogoChoice interface {
	logoChoice()
}

type NoLogo struct{}

type DefaultLogo struct {
	Details LogoDetails
}

type CustomLogo struct {
	Details   LogoDetails
	Overrides LogoOverrides
}

func (NoLogo) logoChoice()      {}
func (DefaultLogo) logoChoice() {}
func (CustomLogo) logoChoice()  {}

// ChooseLogo resolves custom ?? default ?? none. Logos without a usable
// natural size count as not loaded.
func ChooseLogo(custom *LogoDetails, overrides LogoOverrides, def *LogoDetails) LogoChoice {
	if custom != nil && custom.valid() {
		return CustomLogo{Details: *custom, Overrides: overrides}
	}
	if def != nil && def.valid() {
		return DefaultLogo{Details: *def}
	}
	return NoLogo{}
}

// LogoWidth scales a logo to targetHeight preserving its aspect ratio.
func LogoWidth(targetHeight float64, d LogoDetails) float64 {
	if !d.valid() {
		return targetHeight
	}
	return targetHeight * d.NaturalWidth / d.NaturalHeight
}

// placeLogo returns the logo rect, or false for NoLogo. The NoLogo rect is
// still returned as a square fallback so text regions stay defined.
func placeLogo(c LogoChoice, canvasW, canvasH float64) (Rect, bool) {
	h := LogoTargetHeight
	var (
		w         = h
		overrides LogoOverrides
		present   bool
	)
	switch v := c.(type) {
	case DefaultLogo:
		w, present = LogoWidth(h, v.Details), v.Details.valid()
	case CustomLogo:
		w, present = LogoWidth(h, v.Details), v.Details.valid()
		overrides = v.Overrides
	}

	x := (canvasW - w) / 2
	y := canvasH/2 - h/2
	if overrides.X != nil {
		x = *overrides.X
	}
	if overrides.Y != nil {
		y = *overrides.Y
	}
	y += overrides.YOffset

	return Rect{X: x, Y: y, W: w, H: h}, present
}
