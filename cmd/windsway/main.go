// windsway authors wind-sway blend shapes and animations into a scene file.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/windsway/internal/config"
	"github.com/Faultbox/windsway/internal/logger"
	"github.com/Faultbox/windsway/internal/skel"
	"github.com/Faultbox/windsway/pkg/scene"
)

func main() {
	config.ParseFlags()

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

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	if err := run(cfg, args[0], args[1:]); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`windsway - wind sway blend shapes for skeletal meshes

Usage:
  windsway [flags] <command> [args]

Commands:
  new                         Create an empty scene with a default prim
  setup                       Create SkelRoot, Skeleton and the wind animations
  blendshapes                 Add wind blend shapes to every mesh under the default prim
  bind <animation>            Make <animation> the skeleton's animation source
  sample <animation> <time>   Print the blend shape weights of <animation> at <time>
  config                      Save the effective settings to the user config directory

Flags:
  -scene <file>               Scene file (default scene.yaml)
  -default-prim <name>        Root prim for new scenes (default World)
  -config <file>              Config file
  -debug                      Debug logging

Workflow:
  windsway new && windsway setup
  (place your model under /<default prim>/SkelRoot)
  windsway blendshapes`)
}

func run(cfg *config.Config, command string, args []string) error {
	switch command {
	case "new":
		return cmdNew(cfg)
	case "setup":
		return cmdSetup(cfg)
	case "blendshapes", "add":
		return cmdBlendShapes(cfg)
	case "bind":
		return cmdBind(cfg, args)
	case "sample":
		return cmdSample(cfg, args)
	case "config":
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println("Saved", filepath.Join(config.ConfigDir(), config.FileName))
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func cmdNew(cfg *config.Config) error {
	if _, err := os.Stat(cfg.Scene.File); err == nil {
		return fmt.Errorf("%s already exists", cfg.Scene.File)
	}

	stage := scene.NewStage()
	root := scene.Root.AppendChild(cfg.Scene.DefaultPrim)
	if err := stage.Define(root, scene.TypeXform); err != nil {
		return err
	}
	if err := stage.SetDefaultPrim(root); err != nil {
		return err
	}
	if err := stage.Save(cfg.Scene.File); err != nil {
		return err
	}

	logger.Info("scene created", zap.String("file", cfg.Scene.File), zap.Stringer("defaultPrim", root))
	return nil
}

func cmdSetup(cfg *config.Config) error {
	stage, err := scene.Open(cfg.Scene.File)
	if err != nil {
		return err
	}
	root := stage.DefaultPrim()
	if root == "" {
		return skel.ErrNoDefaultPrim
	}
	skeleton, err := skel.Setup(stage, root)
	if err != nil {
		return err
	}
	if err := stage.Save(cfg.Scene.File); err != nil {
		return err
	}

	fmt.Printf("Skeleton: %s\n", skeleton)
	fmt.Println("Place your model under", skeleton.Parent(), "then run 'windsway blendshapes'.")
	return nil
}

func cmdBlendShapes(cfg *config.Config) error {
	stage, err := scene.Open(cfg.Scene.File)
	if err != nil {
		return err
	}
	n, err := skel.AddBlendShapes(stage)
	if errors.Is(err, skel.ErrSkelRootNotFound) || errors.Is(err, skel.ErrSkeletonNotFound) {
		return fmt.Errorf("%w - did you run 'windsway setup' first?", err)
	}
	if err != nil {
		return err
	}
	if err := stage.Save(cfg.Scene.File); err != nil {
		return err
	}

	fmt.Printf("Added wind blend shapes to %d mesh(es)\n", n)
	return nil
}

func cmdBind(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: windsway bind <animation>")
	}
	stage, err := scene.Open(cfg.Scene.File)
	if err != nil {
		return err
	}
	skeleton, err := skel.FindSkeleton(stage)
	if err != nil {
		return err
	}
	if err := skel.BindAnimation(stage, skeleton, args[0]); err != nil {
		return err
	}
	if err := stage.Save(cfg.Scene.File); err != nil {
		return err
	}

	fmt.Printf("Bound %s\n", args[0])
	return nil
}

func cmdSample(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: windsway sample <animation> <time>")
	}
	t, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", args[1], err)
	}
	stage, err := scene.Open(cfg.Scene.File)
	if err != nil {
		return err
	}
	skeleton, err := skel.FindSkeleton(stage)
	if err != nil {
		return err
	}
	w, err := skel.WeightsAt(stage, skeleton.AppendChild(args[0]), t)
	if err != nil {
		return err
	}

	fmt.Printf("east=%g west=%g south=%g north=%g\n", w[0], w[1], w[2], w[3])
	return nil
}
