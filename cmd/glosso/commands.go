package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/glosso/glosso"
	"github.com/glosso/glosso/internal/config"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/logger"
	"github.com/glosso/glosso/pkg/store"
)

// openSession builds the configured store and loads the project into a
// fresh session for one-shot commands.
func openSession(ctx context.Context, conf config.Config) (*glosso.Session, error) {
	log := logger.Discard()
	st, _, _, err := buildStore(ctx, conf, log)
	if err != nil {
		return nil, err
	}
	sess, err := glosso.New(st, conf.Project.Name, sessionOptions(conf, log)...)
	if err != nil {
		return nil, err
	}
	if err := sess.Load(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

func runInit(ctx context.Context, conf config.Config, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	languages := fs.String("languages", "", "comma-separated language codes, e.g. \"en,de\"")
	if err := fs.Parse(args); err != nil {
		return err
	}

	codes := parseLanguages(*languages)
	if len(codes) == 0 {
		return errors.New("init requires -languages, e.g. -languages en,de")
	}

	st, _, _, err := buildStore(ctx, conf, logger.Discard())
	if err != nil {
		return err
	}
	if _, err := st.Load(ctx, conf.Project.Name); err == nil {
		return fmt.Errorf("project %q already has a catalog", conf.Project.Name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	cat, err := glosso.NewCatalog(conf.Project.Name, codes)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, cat); err != nil {
		return err
	}
	fmt.Printf("Created catalog %q with languages %v\n", conf.Project.Name, codes)
	return nil
}

func runExport(ctx context.Context, conf config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	language := fs.String("language", "", "export a single language")
	formatName := fs.String("format", "json", "output format: json, yaml or flat")
	out := fs.String("out", "", "write to a file instead of stdout")
	dir := fs.String("dir", "", "write one file per language into this directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := catalog.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	sess, err := openSession(ctx, conf)
	if err != nil {
		return err
	}

	if *dir != "" {
		if err := sess.WriteLanguageFiles(ctx, *dir, format); err != nil {
			return err
		}
		fmt.Printf("Exported language files to %s\n", *dir)
		return nil
	}

	data, err := sess.Export(*language, format)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", *out)
	return nil
}

func runImport(ctx context.Context, conf config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	language := fs.String("language", "", "language the document holds (required)")
	formatName := fs.String("format", "json", "input format: json or yaml")
	createMissing := fs.Bool("create-missing", false, "create keys missing from the catalog")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *language == "" {
		return errors.New("import requires -language")
	}
	if fs.NArg() != 1 {
		return errors.New("import requires exactly one input file, or \"-\" for stdin")
	}

	format, err := catalog.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	var data []byte
	if name := fs.Arg(0); name == "-" {
		if data, err = io.ReadAll(os.Stdin); err != nil {
			return err
		}
	} else if data, err = os.ReadFile(name); err != nil {
		return err
	}

	sess, err := openSession(ctx, conf)
	if err != nil {
		return err
	}
	applied, err := sess.Import(*language, format, data, *createMissing)
	if err != nil {
		return err
	}
	if err := sess.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("Imported %d values into %q\n", applied, conf.Project.Name)
	return nil
}
