package scrawl

/* Config is the structured record consumed from the (external) loader
described in spec.md §6. This package never loads or migrates it — that is
the configurator's job; Config is only a data value here. */
type Config struct {
	Drawing     DrawingConfig
	Arrow       ArrowConfig
	History     HistoryConfig
	Performance PerformanceConfig
	UI          UIConfig
	Board       BoardConfig
	Capture     CaptureConfig
	Session     SessionConfig
	Presets     PresetConfig
	Bindings    map[string]string
}

type DrawingConfig struct {
	Color             Color
	Thickness         float64
	EraserSize        float64
	EraserMode        EraserMode
	Font              FontDescriptor
	FontSize          float64
	MarkerOpacity     float64
	TextBackground    *Color
	FillDefault       bool
	HitTestTolerance  float64
	LinearThreshold   int
	UndoStackLimit    int
	MaxShapesPerFrame int
}

type ArrowConfig struct {
	HeadLength float64
	HeadAngle  float64
	HeadAtEnd  bool
	AutoLabel  bool
}

type HistoryConfig struct {
	UndoAllDelayMs int
	RedoAllDelayMs int
}

type PerformanceConfig struct {
	BufferCount    int
	EnableVsync    bool
	UIAnimationFPS int
}

type StatusBarPosition int

const (
	StatusBarTop StatusBarPosition = iota
	StatusBarBottom
)

type UIConfig struct {
	ShowStatusBar      bool
	ShowFrozenBadge    bool
	ContextMenuEnabled bool
	PreferredOutput    string
	XDGFullscreen      bool
	StatusBarPosition  StatusBarPosition
	ClickHighlightMs   float64
	ToastDurationMs    float64
	HelpOverlayEnabled bool
}

type BoardConfig struct {
	Enabled        bool
	DefaultMode    BackgroundMode
	WhiteboardRGB  Color
	BlackboardRGB  Color
	AutoAdjustPen  bool
	MaxBoards      int
}

type CaptureConfig struct {
	Enabled           bool
	SaveDirectory     string
	FilenameTemplate  string
	Format            string
	CopyToClipboard   bool
	ExitAfterCapture  bool
	PortalTimeoutMs   int
}

type StorageMode int

const (
	StorageMemory StorageMode = iota
	StorageDisk
)

type SessionConfig struct {
	PersistOnWhiteboard bool
	PersistOnBlackboard bool
	StorageMode         StorageMode
	CustomDirectory     string
	MaxShapesPerFrame   int
	MaxFileSizeMB       int
	Compression         bool
}

type PresetConfig struct {
	SlotCount int
	Slots     [MaxPresetSlots]Preset
}

/* DefaultConfig returns reasonable defaults grounded in the ranges named
throughout spec.md §4.2 and §6. */
func DefaultConfig() Config {
	return Config{
		Drawing: DrawingConfig{
			Color:             Color{R: 0xE0, G: 0x1B, B: 0x24, A: 0xFF}, // default_red
			Thickness:         4,
			EraserSize:        20,
			Font:              FontDescriptor{Family: "sans-serif"},
			FontSize:          18,
			MarkerOpacity:     0.45,
			HitTestTolerance:  4,
			LinearThreshold:   64,
			UndoStackLimit:    200,
			MaxShapesPerFrame: 5000,
		},
		Arrow: ArrowConfig{
			HeadLength: 18,
			HeadAngle:  0.5,
			HeadAtEnd:  true,
		},
		History: HistoryConfig{
			UndoAllDelayMs: 0,
			RedoAllDelayMs: 0,
		},
		Performance: PerformanceConfig{
			BufferCount:    2,
			EnableVsync:    true,
			UIAnimationFPS: 60,
		},
		UI: UIConfig{
			ShowStatusBar:      true,
			ShowFrozenBadge:    true,
			ContextMenuEnabled: true,
			ClickHighlightMs:   600,
			ToastDurationMs:    2500,
			HelpOverlayEnabled: true,
		},
		Board: BoardConfig{
			Enabled:       true,
			WhiteboardRGB: Color{R: 255, G: 255, B: 255, A: 255},
			BlackboardRGB: Color{R: 20, G: 20, B: 20, A: 255},
			MaxBoards:     32,
		},
		Capture: CaptureConfig{
			FilenameTemplate: "scrawl-%Y%m%d-%H%M%S.png",
			Format:           "png",
			PortalTimeoutMs:  5000,
		},
		Session: SessionConfig{
			MaxShapesPerFrame: 5000,
			MaxFileSizeMB:     16,
		},
		Presets: PresetConfig{SlotCount: MaxPresetSlots},
		Bindings: DefaultBindingSpecs(),
	}
}
