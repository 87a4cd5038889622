package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagScene       = flag.String("scene", "", "Scene file to operate on")
	flagDefaultPrim = flag.String("default-prim", "", "Root prim name for new scenes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments (the command and its operands).
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
	if *flagScene != "" {
		cfg.Scene.File = *flagScene
	}
	if *flagDefaultPrim != "" {
		cfg.Scene.DefaultPrim = *flagDefaultPrim
	}
}
