// Command ascii01 compiles 01ASCII bit order descriptions into device files
// for programmer tools and prints existing device files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pborges/ascii01"
	"github.com/pborges/ascii01/internal/config"
	"github.com/pborges/ascii01/internal/devfile"
	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/logging"
	"github.com/pborges/ascii01/internal/pattern"
)

// Globals are the flags shared by every command. Unset flags fall back to
// the settings file.
type Globals struct {
	Config    string `help:"Settings file (default: nearest ascii01.toml)." type:"path" placeholder:"FILE"`
	Width     int    `help:"Integer width of the device description, 32 or 64." placeholder:"BITS"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	LogFormat string `name:"log-format" help:"Log format: text or json." placeholder:"FORMAT"`
}

// CLI defines the command line interface.
type CLI struct {
	Globals

	Compile CompileCmd `cmd:"" help:"Compile a description into a device file"`
	Show    ShowCmd    `cmd:"" help:"Print the contents of a device file"`
	Check   CheckCmd   `cmd:"" help:"Parse and validate a description without writing output"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// env is what every command runs with once flags and settings are merged.
type env struct {
	width  device.Width
	stdout io.Writer
}

type CompileCmd struct {
	Input  string `arg:"" help:"Description source file." type:"path"`
	Output string `arg:"" help:"Device file to write." type:"path"`
}

func (c *CompileCmd) Run(e *env) error {
	if err := pattern.CompileFile(c.Input, c.Output, e.width); err != nil {
		return err
	}
	slog.Info("compiled", "input", c.Input, "output", c.Output, "width", int(e.width))
	return nil
}

type ShowCmd struct {
	File string `arg:"" help:"Device file to print." type:"path"`
}

func (c *ShowCmd) Run(e *env) error {
	d, err := devfile.Load(c.File, e.width)
	if err != nil {
		return err
	}
	sum, err := devfile.FileDigest(c.File)
	if err != nil {
		return err
	}
	if err := d.WriteListing(e.stdout); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "\nblake3: %s\n", sum)
	return err
}

type CheckCmd struct {
	Input   string `arg:"" help:"Description source file." type:"path"`
	Listing bool   `help:"Print the descriptor listing."`
}

func (c *CheckCmd) Run(e *env) error {
	d, err := pattern.Check(c.Input, e.width)
	if err != nil {
		return err
	}
	if c.Listing {
		return d.WriteListing(e.stdout)
	}
	_, err = fmt.Fprintf(e.stdout, "%s: ok (%s)\n", c.Input, d.Name)
	return err
}

type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	_, err := fmt.Fprintf(e.stdout, "ascii01 %s\n", ascii01.Version())
	return err
}

// settings loads the settings file and applies flag overrides.
func (g *Globals) settings() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}
	if g.Width != 0 {
		cfg.Width = g.Width
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("ascii01"),
		kong.Description("01ASCII bit order description compiler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
	)
}

// run executes one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "ascii01:", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, "ascii01: error:", err)
		return 2
	}

	cfg, err := cli.Globals.settings()
	if err != nil {
		fmt.Fprintln(stderr, "ascii01: error:", err)
		return 2
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr); err != nil {
		fmt.Fprintln(stderr, "ascii01: error:", err)
		return 2
	}
	if cfg.Path != "" {
		slog.Debug("settings loaded", "path", cfg.Path)
	}

	if err := ctx.Run(&env{width: cfg.DeviceWidth(), stdout: stdout}); err != nil {
		slog.Error("command failed", "command", ctx.Command(), "err", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
