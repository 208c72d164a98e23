package main

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bgrewell/bootimg-kit"
	"github.com/bgrewell/bootimg-kit/pkg/logging"
	"github.com/bgrewell/bootimg-kit/pkg/option"
	"github.com/bgrewell/usage"
)

func generateFileMD5(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	hashBytes := hash.Sum(nil)
	return fmt.Sprintf("%x", hashBytes), nil
}

func generateRangeMD5(filePath string, offset, size int64) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, io.NewSectionReader(file, offset, size)); err != nil {
		return "", err
	}

	hashBytes := hash.Sum(nil)
	return fmt.Sprintf("%x", hashBytes), nil
}

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("open_and_extract"),
		usage.WithApplicationDescription("open_and_extract is a functional testing application that is part of bootimg-kit and is designed to verify that the open, parse and extraction logic of bootimg-kit agrees with the bytes on disk."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	rm := u.AddBooleanOption("rm", "remove-test-files", true, "Remove the extracted sections after running the tests", "", nil)
	input := u.AddArgument(1, "input", "The input boot or vendor boot image to run the tests against", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if input == nil || *input == "" {
		u.PrintError(fmt.Errorf("location of the input image <input> must be provided"))
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_TRACE, true))
	i, err := bootimg.Open(*input,
		option.WithLogger(logger))
	if err != nil {
		fmt.Printf("Failed to open image file: %s\n", err)
		os.Exit(1)
	}
	defer i.Close()

	dir, err := os.MkdirTemp("", "open_and_extract_test_*")
	if err != nil {
		fmt.Printf("Failed to create temporary directory: %s\n", err)
		os.Exit(1)
	}

	if *rm {
		defer os.RemoveAll(dir)
	} else {
		fmt.Printf("Extracted to: %s\n", dir)
	}

	err = i.Extract(dir)
	if err != nil {
		fmt.Printf("Failed to extract image: %s\n", err)
		os.Exit(1)
	}

	layout, err := i.Layout()
	if err != nil {
		fmt.Printf("Failed to compute layout: %s\n", err)
		os.Exit(1)
	}

	// Every extracted section must match the same byte range read straight from the file
	failed := false
	for _, s := range layout.Sections {
		if s.Name == "header" || s.Size == 0 {
			continue
		}

		inputHash, err := generateRangeMD5(*input, s.Offset, s.Size)
		if err != nil {
			fmt.Printf("Failed to generate MD5 hash for %s in input file: %s\n", s.Name, err)
			os.Exit(1)
		}

		outputHash, err := generateFileMD5(filepath.Join(dir, s.Name))
		if err != nil {
			fmt.Printf("Failed to generate MD5 hash for extracted %s: %s\n", s.Name, err)
			os.Exit(1)
		}

		if inputHash != outputHash {
			fmt.Printf("MD5 hash of %s does not match the input file:\n  Input:  %s\n  Output: %s\n", s.Name, inputHash, outputHash)
			failed = true
		}
	}

	if failed {
		i.Close()
		os.Exit(1)
	}
}
