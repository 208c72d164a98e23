package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bgrewell/bootimg-kit"
	"github.com/bgrewell/bootimg-kit/pkg/logging"
	"github.com/bgrewell/bootimg-kit/pkg/option"
	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

// CreateProgressCallback returns a callback that updates the spinner's message.
func CreateProgressCallback(spinner *yacspin.Spinner) option.ExtractionProgressCallback {
	return func(
		currentSection string,
		bytesTransferred int64,
		totalBytes int64,
		currentSectionNumber int,
		totalSectionCount int,
	) {
		if spinner == nil {
			return
		}
		percent := 100.0
		if totalBytes > 0 {
			percent = float64(bytesTransferred) / float64(totalBytes) * 100
		}
		spinner.Message(fmt.Sprintf(" [%d/%d] %s - %.2f%%",
			currentSectionNumber, totalSectionCount, currentSection, percent))
	}
}

// InitializeSpinner sets up and starts the yacspin spinner.
func InitializeSpinner() (*yacspin.Spinner, error) {
	settings := yacspin.Config{
		Frequency:         100 * time.Millisecond,
		ShowCursor:        false,
		SpinnerAtEnd:      false,
		CharSet:           yacspin.CharSets[14],
		Colors:            []string{"fgHiCyan"},
		StopColors:        []string{"fgHiGreen"},
		StopFailColors:    []string{"fgHiRed"},
		StopFailCharacter: "✗",
		StopCharacter:     "✓",
	}

	spinner, err := yacspin.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create spinner: %w", err)
	}

	if err := spinner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start spinner: %w", err)
	}

	return spinner, nil
}

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("bootextract"),
		usage.WithApplicationDescription("bootextract writes each payload section of an Android boot or vendor boot image (kernel, ramdisk, dtb, ...) to its own file."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	debug := u.AddBooleanOption("v", "verbose", false, "Enable verbose (debug) logging", "", nil)
	trace := u.AddBooleanOption("vv", "trace", false, "Enable trace logging", "", nil)
	path := u.AddArgument(1, "image-path", "Path to the boot or vendor boot image", "")
	outputDir := u.AddArgument(2, "output-dir", "Directory the sections are written to (default ./extracted)", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("location of the image file <image-path> must be provided"))
		os.Exit(1)
	}

	out := "./extracted"
	if outputDir != nil && *outputDir != "" {
		out = *outputDir
	}

	logger := logging.DefaultLogger()
	switch {
	case *trace:
		logger = logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_TRACE, term.IsTerminal(int(os.Stderr.Fd()))))
	case *debug:
		logger = logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_DEBUG, term.IsTerminal(int(os.Stderr.Fd()))))
	}

	// Logging and the spinner both draw on the terminal; only spin when logging is quiet.
	var spinner *yacspin.Spinner
	if !*debug && !*trace && term.IsTerminal(int(os.Stdout.Fd())) {
		var err error
		spinner, err = InitializeSpinner()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize spinner: %v\n", err)
			fmt.Fprintf(os.Stderr, "Progress updates will be disabled.\n")
		}
	}

	fail := func(msg string, err error) {
		if spinner != nil {
			spinner.StopFailMessage(fmt.Sprintf(" %s: %v", msg, err))
			spinner.StopFail()
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		}
		os.Exit(1)
	}

	img, err := bootimg.Open(*path,
		option.WithLogger(logger),
		option.WithExtractionProgress(CreateProgressCallback(spinner)),
	)
	if err != nil {
		fail("Failed to open image", err)
	}
	defer img.Close()

	if err = img.Extract(out); err != nil {
		img.Close()
		fail("Failed to extract image", err)
	}

	msg := fmt.Sprintf(" %s sections extracted successfully to %s", img, out)
	if spinner != nil {
		spinner.StopMessage(msg)
		spinner.Stop()
	} else {
		fmt.Println(msg)
	}
}
