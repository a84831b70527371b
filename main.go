package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sollie/png2c/internal/cheader"
	"github.com/sollie/png2c/internal/ident"
	"github.com/sollie/png2c/internal/imageinfo"
	"github.com/sollie/png2c/internal/picture"
)

const usage = `Usage: png2c [-v] [-sanitize] <filepath.png>
Writes a C header embedding the decoded pixels to standard output.
Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP, HEIF/HEIC, AVIF
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "png2c: ", 0)

	fs := flag.NewFlagSet("png2c", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	verbose := fs.Bool("v", false, "print image details to stderr")
	sanitize := fs.Bool("sanitize", false, "rewrite the identifier into a valid C identifier")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() < 1 {
		fs.Usage()
		logger.Print("expected file path")
		return 1
	}
	filepath := fs.Arg(0)

	pic, err := picture.Load(filepath)
	if err != nil {
		logger.Printf("could not load file `%s`: %v", filepath, err)
		return 1
	}

	if *verbose {
		info, err := imageinfo.Inspect(filepath)
		if err != nil {
			logger.Printf("inspect %s: %v", filepath, err)
		} else {
			logger.Printf("%s: %s", filepath, info)
		}
	}

	id, err := ident.Derive(filepath)
	if err != nil {
		logger.Printf("%s: %v", filepath, err)
		return 1
	}
	if *sanitize {
		id = ident.Sanitize(id)
	}

	var out bytes.Buffer
	if err := cheader.Write(&out, ident.NamesFor(id), pic); err != nil {
		logger.Printf("render header: %v", err)
		return 1
	}
	if _, err := out.WriteTo(stdout); err != nil {
		logger.Printf("write header: %v", err)
		return 1
	}

	return 0
}
