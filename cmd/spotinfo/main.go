// spotinfo inspects a configured spot light: its matrices, its packed
// uniforms and a CPU render of its footprint on the ground.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch args[0] {
	case "matrix", "m":
		err = cmdMatrix(cfg)
	case "uniforms", "u":
		err = cmdUniforms(cfg)
	case "layout":
		err = cmdLayout(cfg)
	case "preview", "p":
		err = cmdPreview(cfg)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

const usage = `spotinfo - spot light projection inspector

Usage:
  spotinfo [flags] <command>

Commands:
  matrix     Print the texture, shadow and light matrices
  uniforms   Dump the packed uniform block as YAML
  layout     Print the declared uniform block layout
  preview    Render the light's footprint to an image (-o, -frames)

Flags:
  -config <path>     Config file (default ./spotlight.yaml)
  -angle <deg>       Cone angle
  -exponent <e>      Falloff exponent
  -texture <path>    Projected texture (.png .jpg .tga .webp)
  -o <path>          Preview output (.png or .webp)
  -frames <n>        Render n frames of a yaw sweep
  -debug             Debug logging

Notes:
  The texture projection follows the light's own position and direction,
  not the rig. During a -frames sweep the cone swings while a projected
  texture stays fixed on the ground, so it only shows where the two overlap.

Examples:
  spotinfo matrix
  spotinfo -angle 40 -texture cookie.tga uniforms
  spotinfo -frames 8 -o sweep.webp preview`

func printUsage() {
	fmt.Println(usage)
}
