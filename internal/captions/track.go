package captions

// RenderPosition places a cue on the player canvas.
type RenderPosition int

// The platform renders positions 1-9 on a numpad layout; bottom-center is
// the conventional caption placement and the pipeline's fixed default.
const (
	PositionBottomLeft   RenderPosition = 1
	PositionBottomCenter RenderPosition = 2
	PositionBottomRight  RenderPosition = 3
	PositionTopLeft      RenderPosition = 7
	PositionTopCenter    RenderPosition = 8
	PositionTopRight     RenderPosition = 9
)

// DefaultPosition is applied to every parsed cue.
const DefaultPosition = PositionBottomCenter

// Cue is one time-coded caption line. Start is always strictly before End.
type Cue struct {
	Start    float64        `json:"from"`
	End      float64        `json:"to"`
	Text     string         `json:"content"`
	Position RenderPosition `json:"location"`
}

// Track is a language-tagged set of cues submitted as one caption body.
type Track struct {
	Language string
	Cues     []Cue
}

// Style defaults attached to every submitted caption body.
const (
	defaultFontSize        = 0.4
	defaultFontColor       = "#FFFFFF"
	defaultBackgroundAlpha = 0.5
	defaultBackgroundColor = "#9C27B0"
	defaultStroke          = "none"
)

// Body is the caption payload wire shape expected by the platform.
type Body struct {
	FontSize        float64 `json:"font_size"`
	FontColor       string  `json:"font_color"`
	BackgroundAlpha float64 `json:"background_alpha"`
	BackgroundColor string  `json:"background_color"`
	Stroke          string  `json:"Stroke"`
	Cues            []Cue   `json:"body"`
}

// NewBody wraps a track's cues with the fixed style defaults.
func NewBody(track Track) Body {
	return Body{
		FontSize:        defaultFontSize,
		FontColor:       defaultFontColor,
		BackgroundAlpha: defaultBackgroundAlpha,
		BackgroundColor: defaultBackgroundColor,
		Stroke:          defaultStroke,
		Cues:            track.Cues,
	}
}
