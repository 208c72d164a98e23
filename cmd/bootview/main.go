package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/bootimg-kit"
	"github.com/bgrewell/bootimg-kit/pkg/logging"
	"github.com/bgrewell/bootimg-kit/pkg/option"
	"github.com/bgrewell/usage"
	"golang.org/x/term"
)

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("bootview"),
		usage.WithApplicationDescription("bootview prints the header fields and section layout of an Android boot or vendor boot image."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print debug logging to stderr", "", nil)
	asJSON := u.AddBooleanOption("j", "json", false, "Print the header as JSON", "", nil)
	hexOffsets := u.AddBooleanOption("x", "hex", false, "Print section offsets in hexadecimal", "", nil)
	strict := u.AddBooleanOption("s", "strict", false, "Reject images whose header_size does not match the header version or whose string fields are malformed", "", nil)
	noMmap := u.AddBooleanOption("r", "read", false, "Read the image into memory instead of memory mapping it", "", nil)
	path := u.AddArgument(1, "image-path", "Path to the boot or vendor boot image", "")
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

	logger := logging.DefaultLogger()
	if *verbose {
		logger = logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_DEBUG, term.IsTerminal(int(os.Stderr.Fd()))))
	}

	img, err := bootimg.Open(*path,
		option.WithLogger(logger),
		option.WithStrictHeaderSize(*strict),
		option.WithMmap(!*noMmap),
	)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer img.Close()

	if *strict {
		if err = img.Validate(); err != nil {
			img.Close()
			u.PrintError(err)
			os.Exit(1)
		}
	}

	i := img.Info()
	if *asJSON {
		fmt.Println(i.PrettyJSON())
		return
	}
	i.Print(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())), *hexOffsets)
}
