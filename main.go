// main.go - Gaelco3D main

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/golang/glog"
	"golang.org/x/term"
)

func boilerPlate() {
	title := "Gaelco3D"
	if term.IsTerminal(int(os.Stdout.Fd())) {
		title = "\033[38;2;255;20;147m" + title + "\033[0m"
	}
	fmt.Println()
	fmt.Println(title + " - Gaelco 3D arcade hardware emulator")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

type shellOptions struct {
	game       string
	rom        string
	save       string
	controller string
	width      int
	height     int
	fullscreen bool
	noThrottle bool
	showFPS    bool
	wav        string
	script     string
	frames     int

	set map[string]bool
}

func parseOptions(args []string) (*shellOptions, error) {
	opts := &shellOptions{set: make(map[string]bool)}

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	// glog registers on the default set; share its values.
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		flagSet.Var(f.Value, f.Name, f.Usage)
	})
	flagSet.StringVar(&opts.game, "game", "surfplnt", "Game profile: "+strings.Join(GameProfileNames(), ", "))
	flagSet.StringVar(&opts.rom, "rom", "", "ROM archive (default <game>.zip)")
	flagSet.StringVar(&opts.save, "save", "", "Saved data file (default <game>.dat)")
	flagSet.StringVar(&opts.controller, "controller", "", "Steering input: keyboard or mouse")
	flagSet.IntVar(&opts.width, "width", 0, "Output width")
	flagSet.IntVar(&opts.height, "height", 0, "Output height")
	flagSet.BoolVar(&opts.fullscreen, "fullscreen", false, "Start fullscreen")
	flagSet.BoolVar(&opts.noThrottle, "nothrottle", false, "Run as fast as possible")
	flagSet.BoolVar(&opts.showFPS, "fps", false, "Show the FPS overlay")
	flagSet.StringVar(&opts.wav, "wav", "", "Record audio to a WAV file")
	flagSet.StringVar(&opts.script, "script", "", "Lua script with an on_frame hook")
	flagSet.IntVar(&opts.frames, "frames", 0, "Exit after this many frames (0 runs until quit)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./gaelco3d [-game surfplnt|speedup|radikalb] [flags] [romset.zip]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
		}
		return nil, err
	}
	flagSet.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.rom == "" {
		opts.rom = flagSet.Arg(0)
	}
	if opts.frames < 0 {
		return nil, fmt.Errorf("-frames must not be negative")
	}
	return opts, nil
}

// validateResolutionOverride accepts an output size only when both
// dimensions are given.
func validateResolutionOverride(width, height int) (int, int, bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// applyOptions merges command-line overrides into the saved settings.
func applyOptions(saved *SavedData, opts *shellOptions) error {
	saved.ApplyDefaults()
	if opts.controller != "" {
		mode, err := ParseControllerMode(opts.controller)
		if err != nil {
			return err
		}
		saved.Controller = uint32(mode)
	}
	if opts.set["width"] || opts.set["height"] {
		w, h, ok := validateResolutionOverride(opts.width, opts.height)
		if !ok {
			return fmt.Errorf("-width and -height must be given together, got %dx%d", opts.width, opts.height)
		}
		saved.Width = uint32(w)
		saved.Height = uint32(h)
	}
	if opts.set["fullscreen"] {
		saved.Windowed = uint32(boolToInt(!opts.fullscreen))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		glog.Errorf("%v", err)
		fmt.Printf("Error: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	boilerPlate()

	profile, err := LookupGameProfile(opts.game)
	if err != nil {
		return err
	}
	if opts.rom == "" {
		opts.rom = profile.Filename + ".zip"
	}
	if opts.save == "" {
		opts.save = profile.Filename + ".dat"
	}

	saved, err := LoadSavedData(opts.save)
	if err != nil {
		return err
	}
	if err := applyOptions(saved, opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Loading %s from %s\n", profile.Title, opts.rom)
	roms, err := LoadRomSet(ctx, opts.rom, profile)
	if err != nil {
		return err
	}

	sound, err := NewOtoSoundOutput(ADSP_SAMPLE_RATE)
	if err != nil {
		return fmt.Errorf("failed to initialize sound: %w", err)
	}
	defer sound.Close()

	video, err := NewEbitenOutput()
	if err != nil {
		return fmt.Errorf("failed to initialize video: %w", err)
	}
	defer video.Close()

	width, height := int(saved.Width), int(saved.Height)
	if err := video.SetDisplayConfig(DisplayConfig{
		Width:      width,
		Height:     height,
		Scale:      1,
		Fullscreen: saved.Windowed == 0,
		VSync:      true,
	}); err != nil {
		return err
	}
	renderer := NewSoftwareRenderer(width, height)

	m, err := NewMachine(MachineConfig{
		Profile: profile,
		ROMs:    roms,
		Saved:   saved,
		Render:  renderer,
		Sound:   sound,
		Width:   width,
		Height:  height,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	sh := &shell{
		machine:  m,
		video:    video,
		renderer: renderer,
		throttle: NewFrameThrottle(GAME_FPS),
		showFPS:  opts.showFPS,
		frames:   opts.frames,
	}
	sh.throttle.SetEnabled(!opts.noThrottle)

	if opts.wav != "" {
		rec, err := NewWavRecorder(opts.wav, ADSP_SAMPLE_RATE)
		if err != nil {
			return err
		}
		m.Pump().SetTap(rec.Tap)
		defer func() {
			if err := rec.Close(); err != nil {
				glog.Errorf("%v", err)
			}
		}()
	}
	if opts.script != "" {
		script, err := NewLuaScript(opts.script, m)
		if err != nil {
			return err
		}
		defer script.Close()
		sh.script = script
	}

	if err := video.Start(); err != nil {
		return err
	}
	sound.Start()

	runErr := sh.loop(ctx)
	if err := saved.Save(opts.save); err != nil {
		if runErr == nil {
			return err
		}
		glog.Errorf("%v", err)
	}
	fmt.Printf("%d frames, %.1f fps\n", m.Frame(), sh.throttle.FPS())
	return runErr
}
