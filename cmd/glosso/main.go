/*
The glosso command manages translation catalogs: one JSON document per
project holding every language, key and value.

Settings come from a TOML config file. By default the command looks for
glosso.toml in the working directory; point it elsewhere with -config.

Run it with a command argument:

  - serve: start the HTTP editing API for the configured project.
  - init: create an empty catalog for the configured project.
  - export: write the catalog, one language or per-language files.
  - import: apply a single-language document and save.
  - help: print usage instructions.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/glosso/glosso/internal/config"
)

var configPath string

const commands = "serve, init, export, import, help"

func init() {
	flag.StringVar(&configPath, "config", "./glosso.toml", "`path` to the TOML config file")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: glosso [flags] <command> [command flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands: %s\n\n", commands)
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Command flags:

  init -languages en,de
        create an empty catalog with the given language columns

  export [-language code] [-format json|yaml|flat] [-out file] [-dir dir]
        write the whole document (default), one language, or with -dir
        one file per language

  import -language code [-format json|yaml] [-create-missing] <file>
        apply a single-language document ("-" reads stdin) and save
`)
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	cmd := flag.Arg(0)
	args := flag.Args()
	if len(args) > 0 {
		args = args[1:]
	}

	switch cmd {
	case "help":
		printUsage()
		return
	case "":
		fmt.Fprintf(os.Stderr, "No command given. Command can be one of: %s\n\n", commands)
		printUsage()
		os.Exit(2)
	case "serve", "init", "export", "import":
	default:
		fmt.Fprintf(os.Stderr, "Command %q not recognised. Command must be one of: %s\n\n", cmd, commands)
		printUsage()
		os.Exit(2)
	}

	conf, err := config.Load(configPath)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	switch cmd {
	case "serve":
		err = runServe(ctx, conf)
	case "init":
		err = runInit(ctx, conf, args)
	case "export":
		err = runExport(ctx, conf, args)
	case "import":
		err = runImport(ctx, conf, args)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// parseLanguages splits a comma-separated language list.
func parseLanguages(s string) []string {
	var codes []string
	for _, code := range strings.Split(s, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
