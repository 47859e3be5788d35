package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nocis/vk-raytracing-tutorial/pkg/config"
	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/gpu"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
	"github.com/nocis/vk-raytracing-tutorial/pkg/scene"
	"github.com/nocis/vk-raytracing-tutorial/web/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "raytracer",
		Short:        "Procedural sphere and cube ray tracing pipeline",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML or YAML config file (defaults are used when empty)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newRenderCommand(opts), newVerifyCommand(opts), newServeCommand(opts))
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) load() (config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var (
		width, height, spheres, workers int
		seed                            uint64
		light, output                   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the sphere field to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger(cmd)

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("width") {
				cfg.Width = width
			}
			if flags.Changed("height") {
				cfg.Height = height
			}
			if flags.Changed("spheres") {
				cfg.Spheres = spheres
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("light") {
				cfg.Light.Type = light
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Debug("configuration", "width", cfg.Width, "height", cfg.Height,
				"spheres", cfg.Spheres, "seed", cfg.Seed, "light", cfg.Light.Type)

			p, err := cfg.NewPipeline(core.NewSlogLogger(log, slog.LevelInfo))
			if err != nil {
				return err
			}

			img, stats, err := p.Launch(cmd.Context(), cfg.Width, cfg.Height)
			if err != nil {
				return err
			}

			filename, err := writePNG(cfg.Output, img)
			if err != nil {
				return err
			}
			log.Info("render saved", "file", filename, "elapsed", stats.Duration,
				"intersections", stats.Counters.IntersectionCalls)
			return nil
		},
	}

	defaults := config.Default()
	cmd.Flags().IntVar(&width, "width", defaults.Width, "Image width")
	cmd.Flags().IntVar(&height, "height", defaults.Height, "Image height")
	cmd.Flags().IntVar(&spheres, "spheres", defaults.Spheres, "Number of procedural primitives")
	cmd.Flags().Uint64Var(&seed, "seed", defaults.Seed, "Sphere field seed")
	cmd.Flags().IntVar(&workers, "workers", defaults.Workers, "Launch workers (0 = all CPUs)")
	cmd.Flags().StringVar(&light, "light", defaults.Light.Type, "Light type: point, spot or directional")
	cmd.Flags().StringVarP(&output, "output", "o", defaults.Output,
		"Output PNG path; a path ending in / gets a timestamped file name")
	return cmd
}

// writePNG encodes img to path, creating parent directories. A path ending
// in a separator is treated as a directory and gets a timestamped name.
func writePNG(path string, img image.Image) (string, error) {
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		timestamp := time.Now().Format("20060102_150405")
		path = filepath.Join(path, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("saving PNG: %w", err)
	}
	return path, nil
}

func newVerifyCommand(opts *rootOptions) *cobra.Command {
	crossCheck := gpu.DefaultCrossCheckOptions()

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare the float32 device kernels against the reference intersection routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger(cmd)

			cfg, err := opts.load()
			if err != nil {
				return err
			}

			spheres := scene.GenerateSpheres(cfg.Spheres, cfg.Seed)
			s, err := scene.NewScene(spheres)
			if err != nil {
				return err
			}

			sphereBuf := gpu.EncodeSpheres(s.Spheres)
			aabbBuf := gpu.EncodeAABBs(s.AABBs)
			log.Info("device buffers", "primitives", s.PrimitiveCount(),
				"sphereBytes", len(sphereBuf), "aabbBytes", len(aabbBuf))

			decoded, err := gpu.DecodeSpheres(sphereBuf)
			if err != nil {
				return err
			}

			result := gpu.CrossCheck(decoded, crossCheck)
			log.Info("cross-check", "rays", result.Tested, "hits", result.Hits,
				"disagreements", result.Disagreements, "maxRelativeError", result.MaxRelativeError)

			if result.Disagreements > 0 {
				return fmt.Errorf("verify: %d of %d rays disagree on hit/miss", result.Disagreements, result.Tested)
			}

			constants, err := cfg.PushConstants()
			if err != nil {
				return err
			}
			_, constantsErr, err := gpu.CheckPushConstants(constants.ClearColor, constants.Light)
			if err != nil {
				return err
			}
			payload, payloadErr, err := gpu.CheckLightPayload(lights.NewDispatcher(), constants.Light, s.Bounds().Center())
			if err != nil {
				return err
			}
			log.Info("push constants", "bytes", gpu.PushConstantsSize, "light", constants.Light.Type,
				"maxRelativeError", constantsErr)
			log.Info("light payload", "bytes", gpu.LightPayloadRecordSize, "distance", payload.Distance,
				"intensity", payload.Intensity, "maxRelativeError", payloadErr)

			if constantsErr > gpu.MaxRoundTripError || payloadErr > gpu.MaxRoundTripError {
				return fmt.Errorf("verify: record round trip error too large (push constants %.3g, light payload %.3g)",
					constantsErr, payloadErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rays, %d hits, max relative error %.3g\n",
				result.Tested, result.Hits, result.MaxRelativeError)
			return nil
		},
	}

	cmd.Flags().IntVar(&crossCheck.Rays, "rays", crossCheck.Rays, "Number of random rays")
	cmd.Flags().Uint64Var(&crossCheck.Seed, "ray-seed", crossCheck.Seed, "Seed for ray generation")
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and inspect API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return server.NewServer(port, cfg, opts.logger(cmd)).Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve on")
	return cmd
}
