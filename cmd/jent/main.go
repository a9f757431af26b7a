// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

// Program jent canonicalizes and inspects editable JSON documents.
//
// Usage:
//
//	jent fmt config.json        # render canonical 2-space form
//	jent check -l config.hujson # report duplicate object keys
//
// With no file argument, input is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/croussille/jent/entity"
)

var cli struct {
	Fmt   fmtCmd   `cmd:"" help:"Render a JSON document in canonical form."`
	Check checkCmd `cmd:"" help:"Report duplicate object keys in a JSON document."`
}

type inputArgs struct {
	Lenient bool   `help:"Accept comments and trailing commas in the input." short:"l"`
	Path    string `arg:"" optional:"" help:"Input file (default stdin)." type:"path"`
}

// load reads and parses the input document.
func (a inputArgs) load() (entity.Entity, error) {
	var data []byte
	var err error
	if a.Path == "" || a.Path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(a.Path)
	}
	if err != nil {
		return nil, err
	}
	if a.Lenient {
		return entity.ParseLenient(data)
	}
	return entity.ParseBytes(data)
}

type fmtCmd struct{ inputArgs }

func (c fmtCmd) Run() error {
	root, err := c.load()
	if err != nil {
		return err
	}
	data, err := entity.Marshal(root)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

type checkCmd struct{ inputArgs }

func (c checkCmd) Run() error {
	root, err := c.load()
	if err != nil {
		return err
	}
	dups := entity.DuplicateKeys(root)
	if len(dups) == 0 {
		fmt.Println("no duplicate keys")
		return nil
	}
	warn := color.New(color.FgRed)
	for _, key := range dups {
		warn.Fprintf(os.Stderr, "duplicate key %q\n", key)
	}
	return fmt.Errorf("%d duplicate keys", len(dups))
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("jent"),
		kong.Description("Canonicalize and inspect editable JSON documents."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
