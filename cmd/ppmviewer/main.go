// Command ppmviewer decodes an ASCII PPM (P3) image and shows it in the
// terminal. It can also print image information or export the decoded
// image to a common raster format.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ppmviewer/core/digest"
	"github.com/FocuswithJustin/ppmviewer/core/ppm"
	"github.com/FocuswithJustin/ppmviewer/internal/display"
	"github.com/FocuswithJustin/ppmviewer/internal/logging"
	"github.com/FocuswithJustin/ppmviewer/internal/validation"
)

const version = "0.1.0"

const usageHint = "Supply a file path as an argument. Example:\nppmviewer example/file/path.ppm\n"

// CLI defines the command-line interface for ppmviewer.
type CLI struct {
	Path string `arg:"" optional:"" help:"ASCII PPM (P3) file, optionally gzip or xz compressed"`

	// Decoding
	Strict    bool `help:"Fail unless the file holds exactly width*height pixels"`
	MaxPixels int  `name:"max-pixels" default:"${max_pixels}" help:"Largest accepted width*height"`
	MaxToken  int  `name:"max-token" default:"${max_token}" help:"Longest accepted number, in digits"`

	// Output modes
	Info   bool   `help:"Print header, statistics and digests instead of displaying"`
	JSON   bool   `name:"json" help:"Print --info output as JSON"`
	Export string `help:"Write the decoded image to this file (png, jpg, gif, tif, bmp) instead of displaying"`

	// Logging
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (${enum})"`

	Version bool `help:"Print version information"`
}

// Validate rejects decode limits the decoder would otherwise replace with
// its defaults.
func (c *CLI) Validate() error {
	if c.MaxToken < 1 || c.MaxToken > ppm.TokenLengthLimit {
		return fmt.Errorf("--max-token must be between 1 and %d, got %d", ppm.TokenLengthLimit, c.MaxToken)
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("--max-pixels must be positive, got %d", c.MaxPixels)
	}
	return nil
}

// openDisplay creates the terminal surface and its event source.
var openDisplay = func() (display.Surface, display.EventSource, error) {
	t, err := display.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return nil, nil, err
	}
	return t, display.NewKeyboard(os.Stdin, t.Size, display.DefaultResizeInterval), nil
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("ppmviewer"),
		kong.Description("Terminal viewer for ASCII PPM (P3) images"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"max_pixels": strconv.Itoa(validation.MaxPixels),
			"max_token":  strconv.Itoa(ppm.DefaultMaxTokenLength),
		},
		kong.Writers(stdout, stderr),
	)
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ppmviewer: %v\n", err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "ppmviewer: error: %v\n", err)
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			_ = perr.Context.PrintUsage(true)
		}
		return 1
	}

	if err := initLogging(stderr, cli.LogLevel, cli.LogFormat); err != nil {
		fmt.Fprintf(stderr, "ppmviewer: %v\n", err)
		return 1
	}

	if cli.Version {
		fmt.Fprintf(stdout, "ppmviewer version %s\n", version)
		return 0
	}

	// A missing path is not an error.
	if cli.Path == "" {
		fmt.Fprint(stdout, usageHint)
		return 0
	}

	opts := ppm.DefaultOptions()
	opts.Strict = cli.Strict
	opts.MaxPixels = cli.MaxPixels
	opts.MaxTokenLength = cli.MaxToken

	var hasher *digest.Hasher
	if cli.Info {
		hasher = digest.NewHasher()
		opts.Tee = hasher
	}

	start := time.Now()
	img, err := ppm.DecodeFile(cli.Path, opts)
	if err != nil {
		// Nothing to display; report and exit cleanly.
		logging.DecodeFailed(cli.Path, err)
		fmt.Fprintf(stderr, "ppmviewer: %v\n", err)
		return 0
	}
	logging.ImageDecoded(cli.Path, img.Header.Width, img.Header.Height, img.Header.MaxVal,
		time.Since(start), "pixels", img.Stats.Pixels, "dropped", img.Stats.Dropped)

	switch {
	case cli.Info:
		if err := printInfo(stdout, cli.Path, img, hasher, cli.JSON); err != nil {
			fmt.Fprintf(stderr, "ppmviewer: %v\n", err)
			return 1
		}
		return 0
	case cli.Export != "":
		if err := display.Export(img, cli.Export); err != nil {
			logging.Error("export failed", "path", cli.Export, "error", err)
			fmt.Fprintf(stderr, "ppmviewer: %v\n", err)
			return 1
		}
		logging.Info("image exported", "path", cli.Export)
		return 0
	}

	if err := show(context.Background(), img); err != nil {
		fmt.Fprintf(stderr, "ppmviewer: %v\n", err)
	}
	return 0
}

func initLogging(w io.Writer, level, format string) error {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	fmtv, err := logging.ParseFormat(format)
	if err != nil {
		return err
	}
	logging.InitLoggerWithWriter(w, lvl, fmtv)
	return nil
}

// show runs a display session until the user quits.
func show(ctx context.Context, img *ppm.Image) error {
	surface, events, err := openDisplay()
	if err != nil {
		logging.Error("display initialization failed", "error", err)
		return fmt.Errorf("failed to initialize display: %w", err)
	}

	sess, err := display.New(display.DefaultConfig(), img, surface, events)
	if err != nil {
		return errors.Join(err, events.Close(), surface.Close())
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logging.Warn("display close failed", "session_id", sess.ID(), "error", err)
		}
	}()

	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// imageInfo is the --info report.
type imageInfo struct {
	Path   string             `json:"path"`
	Header ppm.Header         `json:"header"`
	Stats  ppm.Stats          `json:"stats"`
	File   *digest.HashResult `json:"file"`
	Size   int64              `json:"file_size"`
	Pixels string             `json:"pixels_blake3"`
}

// printInfo reports img. h holds the raw file bytes hashed while decoding.
func printInfo(w io.Writer, path string, img *ppm.Image, h *digest.Hasher, asJSON bool) error {
	info := imageInfo{
		Path:   path,
		Header: img.Header,
		Stats:  img.Stats,
		File:   h.Result(),
		Size:   h.Size(),
		Pixels: digest.Pixels(img.Pix),
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(w, "Path:      %s\n", info.Path)
	fmt.Fprintf(w, "Header:    %s\n", info.Header)
	fmt.Fprintf(w, "Pixels:    %d (dropped %d, channels %d)\n", info.Stats.Pixels, info.Stats.Dropped, info.Stats.Channels)
	fmt.Fprintf(w, "File size: %d bytes\n", info.Size)
	fmt.Fprintf(w, "SHA-256:   %s\n", info.File.SHA256)
	fmt.Fprintf(w, "BLAKE3:    %s\n", info.File.BLAKE3)
	fmt.Fprintf(w, "Pixel sum: %s\n", info.Pixels)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
