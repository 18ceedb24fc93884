// Package main provides the pagekit maintenance CLI.
//
// It is not part of the test lifecycle; it exists so suites can provision
// browser binaries and sanity-check their settings outside of a test run:
//
//	pagekit install                   # download engine binaries
//	pagekit check -config suite.yaml  # load, validate and print settings
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/driver"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "install":
		err = runInstall()
	case "check":
		err = runCheck(os.Args[2:])
	case "version":
		fmt.Printf("pagekit v%s\n", version)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pagekit: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pagekit <install|check|version> [flags]")
}

func runInstall() error {
	fmt.Println("Installing browser engine binaries...")
	if err := driver.Install(); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("config", "", "path to the settings file (.json, .yaml or .yml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(*path)
	if err != nil {
		return err
	}

	fmt.Printf("engine_variant:     %s\n", settings.EngineVariant)
	fmt.Printf("headless:           %t\n", settings.Headless)
	fmt.Printf("base_url:           %s\n", settings.BaseURL)
	fmt.Printf("default_timeout_ms: %d\n", settings.DefaultTimeoutMs)
	fmt.Printf("viewport:           %dx%d\n", settings.Viewport.Width, settings.Viewport.Height)
	return nil
}
