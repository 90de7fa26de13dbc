package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagAngle      = flag.Float64("angle", 0, "Spot cone angle in degrees")
	flagExponent   = flag.Float64("exponent", -1, "Spot falloff exponent")
	flagTexture    = flag.String("texture", "", "Projected texture path")
	flagOutput     = flag.String("o", "", "Preview output path (.png or .webp)")
	flagFrames     = flag.Int("frames", 0, "Number of preview frames")
	flagFullscreen = flag.Bool("fullscreen", false, "Run viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAngle > 0 {
		cfg.Light.ConeAngleDeg = float32(*flagAngle)
	}
	if *flagExponent >= 0 {
		cfg.Light.Exponent = float32(*flagExponent)
	}
	if *flagTexture != "" {
		cfg.Light.ProjectedTexture = *flagTexture
	}
	if *flagOutput != "" {
		cfg.Preview.Output = *flagOutput
	}
	if *flagFrames > 0 {
		cfg.Preview.Frames = *flagFrames
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
