package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/config"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/headless"
	"github.com/thelolagemann/dmgcore/pkg/display/web"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	driver := flag.String("driver", "", "The display driver to use. Can be headless or web")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at, 0 is unthrottled")
	debug := flag.Bool("debug", false, "Trace every executed instruction")
	frames := flag.Int("frames", 0, "Frames to run before the headless driver stops")
	screenshot := flag.String("screenshot", "", "PNG file the headless driver saves its last frame to")
	serialOut := flag.String("serial", "", "File serial output is written to, - for stdout")
	addr := flag.String("addr", "", "Address the web driver listens on")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.New().Errorf("%v", err)
		os.Exit(2)
	}

	// flags given explicitly override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "boot":
			cfg.Boot = *bootROM
		case "driver":
			cfg.Driver = *driver
		case "speed":
			cfg.Speed = *speed
		case "debug":
			cfg.Debug = *debug
		case "frames":
			cfg.Headless.Frames = *frames
		case "screenshot":
			cfg.Headless.Screenshot = *screenshot
		case "serial":
			cfg.Serial = *serialOut
		case "addr":
			cfg.Web.Address = *addr
		}
	})

	logger := log.NewWithOutput(os.Stderr, cfg.Debug)
	if err := cfg.Validate(); err != nil {
		logger.Errorf("invalid configuration: %v", err)
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger log.Logger) error {
	rom, err := gameboy.Load(cfg.ROM)
	if err != nil {
		return err
	}

	fb := make(chan []byte, 60)
	buttons := &display.Buttons{}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithDisplay(display.Handler(fb)),
		gameboy.WithInput(buttons),
		gameboy.Speed(cfg.Speed),
	}
	if cfg.Debug {
		opts = append(opts, gameboy.Debug())
	}
	if cfg.Boot != "" {
		boot, err := gameboy.Load(cfg.Boot)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	var serial io.Writer
	switch cfg.Serial {
	case "":
	case "-":
		serial = os.Stdout
	default:
		f, err := os.Create(cfg.Serial)
		if err != nil {
			return err
		}
		defer f.Close()
		serial = f
	}
	if serial != nil {
		opts = append(opts, gameboy.WithSerialOutput(serial))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	var drv display.Driver
	switch cfg.Driver {
	case "web":
		drv = web.New(cfg.Web, logger)
	default:
		drv = headless.New(cfg.Headless, logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- gb.Run(ctx)
		cancel()
	}()

	var result *multierror.Error
	if err := drv.Start(ctx, fb, buttons); err != nil {
		result = multierror.Append(result, err)
	}
	cancel()
	if err := <-done; err != nil {
		result = multierror.Append(result, err)
	}

	logger.Infof("stopped %s", gb.Title())
	return result.ErrorOrNil()
}
