// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jval decodes, checks, compares, and re-encodes JSON documents.
//
// Usage:
//
//	jval fmt [--pretty] [--jwcc] [--yaml] [--key-case=snake] [FILE ...]
//	jval check [--jwcc] [FILE ...]
//	jval equal [--jwcc] A B
//	jval get [--jwcc] FILE [--] PATH ...
//
// A FILE of "-", or no FILE at all, means standard input. Path elements that
// parse as integers are array offsets; use "--" before a negative offset.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jval"
	"github.com/creachadair/jval/cursor"
	"github.com/creachadair/jval/jwcc"
	"github.com/creachadair/jval/value"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// errNotEqual is reported by the equal command when its inputs differ.
var errNotEqual = errors.New("values are not equal")

type cli struct {
	JWCC bool `help:"Accept JSON with commas and comments." name:"jwcc"`

	Fmt   fmtCmd   `cmd:"" help:"Decode and re-encode JSON documents."`
	Check checkCmd `cmd:"" help:"Check that JSON documents are valid."`
	Equal equalCmd `cmd:"" help:"Report whether two JSON documents are structurally equal."`
	Get   getCmd   `cmd:"" help:"Print the value at a path in a JSON document."`
}

// env carries the I/O streams and global options for a command.
type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	jwcc           bool
}

func main() {
	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(os.Args[1:], e, kong.UsageOnError()); errors.Is(err, errNotEqual) {
		os.Exit(1)
	} else if err != nil {
		log.Fatalf("jval: %v", err)
	}
}

// run parses args and executes the selected command.
func run(args []string, e *env, opts ...kong.Option) error {
	var c cli
	parser, err := kong.New(&c, append([]kong.Option{
		kong.Name("jval"),
		kong.Description("Decode, check, compare, and encode JSON documents."),
		kong.Writers(e.stdout, e.stderr),
	}, opts...)...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	e.jwcc = c.JWCC
	return ctx.Run(e)
}

type fmtCmd struct {
	Pretty  bool     `help:"Indent arrays and objects." short:"p"`
	YAML    bool     `help:"Write YAML instead of JSON." name:"yaml"`
	KeyCase string   `help:"Rewrite object keys to this case." enum:"none,snake,kebab,camel,lower-camel" default:"none"`
	Files   []string `arg:"" optional:"" help:"Input files (default stdin)."`
}

func (f *fmtCmd) Run(e *env) error {
	for _, name := range inputNames(f.Files) {
		v, err := e.decodeFile(name)
		if err != nil {
			return err
		}
		if f.KeyCase != "none" {
			v = rekey(v, keyCaseFunc(f.KeyCase))
		}
		if f.YAML {
			out, err := yaml.Marshal(value.Any(v))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if _, err := e.stdout.Write(out); err != nil {
				return err
			}
			continue
		}
		if err := jval.Encode(e.stdout, v, f.Pretty); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintln(e.stdout)
	}
	return nil
}

type checkCmd struct {
	Files []string `arg:"" optional:"" help:"Input files (default stdin)."`
}

func (c *checkCmd) Run(e *env) error {
	var nerr int
	for _, name := range inputNames(c.Files) {
		if _, err := e.decodeFile(name); err != nil {
			fmt.Fprintln(e.stderr, err)
			nerr++
		}
	}
	if nerr > 0 {
		return fmt.Errorf("%d invalid input(s)", nerr)
	}
	return nil
}

type equalCmd struct {
	A string `arg:"" help:"First input file."`
	B string `arg:"" help:"Second input file."`
}

func (c *equalCmd) Run(e *env) error {
	a, err := e.decodeFile(c.A)
	if err != nil {
		return err
	}
	b, err := e.decodeFile(c.B)
	if err != nil {
		return err
	}
	if !jval.Equal(a, b) {
		fmt.Fprintf(e.stdout, "%s and %s differ\n", c.A, c.B)
		return errNotEqual
	}
	return nil
}

type getCmd struct {
	Pretty bool     `help:"Indent arrays and objects." short:"p"`
	File   string   `arg:"" help:"Input file."`
	Path   []string `arg:"" optional:"" help:"Object keys and array offsets."`
}

func (g *getCmd) Run(e *env) error {
	v, err := e.decodeFile(g.File)
	if err != nil {
		return err
	}
	path := make([]any, len(g.Path))
	for i, p := range g.Path {
		if n, err := strconv.Atoi(p); err == nil {
			path[i] = n
		} else {
			path[i] = p
		}
	}
	c := cursor.New(v).Down(path...)
	if err := c.Err(); err != nil {
		return fmt.Errorf("%s: %w", g.File, err)
	}
	if err := jval.Encode(e.stdout, c.Value(), g.Pretty); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout)
	return nil
}

func inputNames(files []string) []string {
	if len(files) == 0 {
		return []string{"-"}
	}
	return files
}

// decodeFile reads and decodes the named file, or stdin for "-".
func (e *env) decodeFile(name string) (jval.Value, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	var v jval.Value
	if e.jwcc {
		v, err = jwcc.Decode(data)
	} else {
		v, err = jval.Decode(data)
	}
	if err != nil {
		var serr *jval.SyntaxError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%s:%v: %s\n%s", name, serr.Location, serr.Message, serr.Snippet())
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func keyCaseFunc(name string) func(string) string {
	switch name {
	case "snake":
		return strcase.ToSnake
	case "kebab":
		return strcase.ToKebab
	case "camel":
		return strcase.ToCamel
	case "lower-camel":
		return strcase.ToLowerCamel
	default:
		panic("unknown key case " + name)
	}
}

// rekey returns a copy of v in which each object key has been rewritten by f.
// If two keys of an object map to the same new key, the last one wins.
func rekey(v jval.Value, f func(string) string) jval.Value {
	switch t := v.(type) {
	case value.Array:
		out := value.NewArray(t.Len())
		for _, elt := range t.All() {
			if err := out.Append(rekey(elt, f)); err != nil {
				panic(err)
			}
		}
		return out
	case value.Object:
		out, err := value.NewObject(t.Len())
		if err != nil {
			panic(err)
		}
		for key, elt := range t.All() {
			if err := out.Set(f(key), rekey(elt, f)); err != nil {
				panic(err)
			}
		}
		return out
	default:
		return v
	}
}
