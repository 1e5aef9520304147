// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/warthog618/config"
	"github.com/warthog618/config/keys"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/go-gpioline"
)

// Version is set at link time.
var Version = "undefined"

// Option describes a command specific flag.
type Option struct {
	Short   rune
	Name    string
	IsBool  bool
	Arg     string
	Usage   string
	Default string
}

// Command describes a command line tool.
type Command struct {
	Name    string
	Args    string
	Summary string
	Options []Option
}

// commonOptions are supported by all the tools.
var commonOptions = []Option{
	{Short: 'h', Name: "help", IsBool: true, Usage: "display this message and exit"},
	{Short: 'v', Name: "version", IsBool: true, Usage: "display the version and exit"},
	{Short: 'C', Name: "consumer", Arg: "name", Usage: "the consumer label for requested lines"},
	{Name: "abi", Arg: "version", Usage: "the uAPI ABI version to use, 1 or 2"},
	{Name: "loglevel", Arg: "level", Usage: "the level to log at, 0 (panic) to 6 (trace)", Default: "3"},
}

// Config is the configuration of a tool, loaded from the command line.
type Config struct {
	cfg   *config.Config
	flags *pflag.Getter
	cmd   *Command

	// Log is the logger for the tool.
	Log *logrus.Entry
}

// Load parses the command line for the command.
//
// Help and version requests are handled here, and exit the process.
func (c *Command) Load() *Config {
	cfg, err := c.load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", c.Name, err)
		os.Exit(1)
	}
	if cfg.Bool("help") {
		c.PrintHelp(os.Stdout)
		os.Exit(0)
	}
	if cfg.Bool("version") {
		fmt.Printf("%s (gpioline) %s\n", c.Name, Version)
		os.Exit(0)
	}
	return cfg
}

func (c *Command) load(args []string) (*Config, error) {
	var ff []pflag.Flag
	for _, o := range c.options() {
		f := pflag.Flag{Short: o.Short, Name: o.Name}
		if o.IsBool {
			f.Options = pflag.IsBool
		}
		ff = append(ff, f)
	}
	// flag names are used as keys unaltered, so "active-low" is not
	// split into "active.low"
	flags := pflag.New(
		pflag.WithFlags(ff),
		pflag.WithCommandLine(args),
		pflag.WithKeyReplacer(keys.NullReplacer()))
	cfg := &Config{
		cfg:   config.New(flags),
		flags: flags,
		cmd:   c,
	}
	level, err := ParseLogLevel(cfg.String("loglevel"))
	if err != nil {
		return nil, err
	}
	cfg.Log = NewLogger(c.Name, level)
	return cfg, nil
}

// Args returns the positional arguments.
func (c *Config) Args() []string {
	return append([]string(nil), c.flags.Args()...)
}

// Bool returns the value of a boolean flag.
func (c *Config) Bool(name string) bool {
	v, _ := c.cfg.Get(name)
	return v.Bool()
}

// Int returns the value of an integer flag, or its default.
//
// An unset flag with no default is zero.
func (c *Config) Int(name string) (int, error) {
	s := c.String(name)
	if len(s) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArg, "invalid %s '%s'", name, s)
	}
	return n, nil
}

// String returns the value of a flag, or its default.
func (c *Config) String(name string) string {
	if v, err := c.cfg.Get(name); err == nil {
		return v.String()
	}
	for _, o := range c.cmd.options() {
		if o.Name == name {
			return o.Default
		}
	}
	return ""
}

// ChipOptions returns the options for opening chips, as selected by the
// common flags.
func (c *Config) ChipOptions() ([]gpioline.ChipOption, error) {
	opts := []gpioline.ChipOption{gpioline.WithLogger(c.Log)}
	if s := c.String("abi"); len(s) > 0 {
		switch s {
		case "1":
			opts = append(opts, gpioline.WithABIVersion(1))
		case "2":
			opts = append(opts, gpioline.WithABIVersion(2))
		default:
			return nil, errors.Wrapf(ErrInvalidArg, "invalid abi version '%s'", s)
		}
	}
	if s := c.String("consumer"); len(s) > 0 {
		opts = append(opts, gpioline.WithConsumer(s))
	}
	return opts, nil
}

// PrintHelp writes the usage of the command.
func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS] %s\n", c.Name, c.Args)
	fmt.Fprintln(w, c.Summary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	for _, o := range c.options() {
		flag := "    --" + o.Name
		if o.Short != 0 {
			flag = fmt.Sprintf("-%c, --%s", o.Short, o.Name)
		}
		if len(o.Arg) > 0 {
			flag += "=<" + o.Arg + ">"
		}
		usage := o.Usage
		if len(o.Default) > 0 {
			usage += " (default " + o.Default + ")"
		}
		fmt.Fprintf(w, "  %-28s %s\n", flag, usage)
	}
}

func (c *Command) options() []Option {
	oo := make([]Option, 0, len(c.Options)+len(commonOptions))
	oo = append(oo, c.Options...)
	return append(oo, commonOptions...)
}

// ParseLogLevel converts the numeric log level to a logrus.Level.
func ParseLogLevel(s string) (logrus.Level, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return logrus.Level(s[0] - '0'), nil
	}
	return logrus.ParseLevel(s)
}
