package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Write logs to this file")
	flagMesh    = flag.String("mesh", "", "Mesh for the sphere slot (.ply or .glb)")
	flagShading = flag.String("shading", "", "Shading mode: gouraud or flat")
	flagFPS     = flag.Int("fps", 0, "Target FPS")
	flagBG      = flag.String("bg", "", "Background color (R,G,B)")
	flagSave    = flag.String("save-config", "", "Write the effective config to this path and exit")
)

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath() string {
	return *flagConfig
}

// SavePath returns the --save-config destination, if any.
func SavePath() string {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
	if *flagShading != "" {
		cfg.Scene.Shading = *flagShading
	}
	if *flagFPS > 0 {
		cfg.Render.FPS = *flagFPS
	}
	if *flagBG != "" {
		cfg.Render.Background = *flagBG
	}
}
