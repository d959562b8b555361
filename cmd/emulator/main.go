package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/kalida-labs/dmgo/backend"
	"github.com/kalida-labs/dmgo/backend/headless"
	"github.com/kalida-labs/dmgo/backend/terminal"
	"github.com/kalida-labs/dmgo/core"
	"github.com/kalida-labs/dmgo/input"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgo"
	app.Description = "A DMG-class handheld emulator"
	app.Usage = "dmgo [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a terminal display, for batch/CI use",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run before exiting, with any backend (0 = unbounded, runs until SIGINT/SIGTERM)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "display backend: terminal or headless",
			Value: "terminal",
		},
		cli.StringFlag{
			Name:  "keymap",
			Usage: "path to a JSON key-name -> button override for the terminal backend",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("emulator exited with error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	emu, err := core.NewWithFile(romPath)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	display, err := selectBackend(c)
	if err != nil {
		return err
	}
	defer display.Close()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, syscall.SIGINT, syscall.SIGTERM)

	frameLimit := c.Int("frames")
	for frame := 0; frameLimit == 0 || frame < frameLimit; frame++ {
		select {
		case <-interrupted:
			return nil
		default:
		}

		emu.RunFrame()

		if err := display.Present(emu.FrameBuffer()); err != nil {
			return fmt.Errorf("presenting frame: %w", err)
		}

		for _, ev := range display.PollInput() {
			if ev.Type == backend.Press {
				emu.PressKey(ev.Button)
			} else {
				emu.ReleaseKey(ev.Button)
			}
		}
	}

	return nil
}

// selectBackend honors --backend, falling back to headless automatically
// when stdout is not a terminal (e.g. piped output or CI), per §6.
func selectBackend(c *cli.Context) (backend.Display, error) {
	wantHeadless := c.Bool("headless") || c.String("backend") == "headless"
	if !wantHeadless && !term.IsTerminal(int(os.Stdout.Fd())) {
		slog.Warn("stdout is not a terminal, falling back to headless backend")
		wantHeadless = true
	}

	if wantHeadless {
		return headless.New(), nil
	}

	keymap, err := loadKeymap(c.String("keymap"))
	if err != nil {
		return nil, err
	}
	return terminal.New(keymap)
}

func loadKeymap(path string) (*input.Keymap, error) {
	if path == "" {
		return input.NewDefaultKeymap(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing keymap: %w", err)
	}

	bindings := make(map[input.KeyName]input.Button, len(raw))
	for key, name := range raw {
		button, ok := buttonByName(name)
		if !ok {
			return nil, fmt.Errorf("keymap: unknown button %q for key %q", name, key)
		}
		bindings[input.KeyName(key)] = button
	}
	return input.NewKeymap(bindings), nil
}

func buttonByName(name string) (input.Button, bool) {
	switch name {
	case "Up":
		return input.Up, true
	case "Down":
		return input.Down, true
	case "Left":
		return input.Left, true
	case "Right":
		return input.Right, true
	case "A":
		return input.A, true
	case "B":
		return input.B, true
	case "Start":
		return input.Start, true
	case "Select":
		return input.Select, true
	default:
		return 0, false
	}
}
