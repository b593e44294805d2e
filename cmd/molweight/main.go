package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/apex/log"
	clilog "github.com/apex/log/handlers/cli"
	"github.com/urfave/cli/v2"

	"github.com/zephyrtronium/molweight"
)

func main() {
	log.SetHandler(clilog.New(os.Stderr))
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("molweight")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "molweight",
		Usage:       "compute molecular weights of chemical formulas",
		ArgsUsage:   "[formula...]",
		Description: "With no formulas given as arguments, formulas are read from standard input, one per line.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "table",
				Aliases: []string{"t"},
				Usage:   "YAML or JSON `file` of symbol: weight entries added to the IUPAC table",
				EnvVars: []string{"MOLWEIGHT_TABLE"},
			},
			&cli.UintFlag{
				Name:    "prec",
				Aliases: []string{"p"},
				Usage:   "precision of calculations in bits",
				Value:   64,
			},
			&cli.StringFlag{
				Name:  "fmt",
				Usage: "result formatting string",
				Value: "%.6g",
			},
			&cli.IntFlag{
				Name:  "places",
				Usage: "round results to `n` decimal places",
			},
			&cli.IntFlag{
				Name:  "sig",
				Usage: "round results to `n` significant digits",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "reject characters that are not element symbols, counts, or brackets",
			},
			&cli.BoolFlag{
				Name:    "composition",
				Aliases: []string{"c"},
				Usage:   "print atom counts and mass fractions",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "print the element table and exit",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"debug"},
				Usage:   "debug log level",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	table, err := loadTable(c.String("table"))
	if err != nil {
		return err
	}
	if c.Bool("list") {
		return listElements(c.App.Writer, table)
	}
	if c.IsSet("sig") && c.IsSet("places") {
		return errors.New("--sig and --places cannot be used together")
	}
	if c.IsSet("sig") && c.Int("sig") < 1 {
		return fmt.Errorf("significant digits (%d) must be positive", c.Int("sig"))
	}

	r := reporter{
		w:      c.App.Writer,
		ctx:    molweight.NewContext(molweight.WithTable(table), molweight.Prec(c.Uint("prec"))),
		verb:   c.String("fmt"),
		places: c.Int("places"),
		round:  c.IsSet("places"),
		sig:    c.Int("sig"),
		comp:   c.Bool("composition"),
	}
	var opts []molweight.ParseOption
	if c.Bool("strict") {
		opts = append(opts, molweight.Strict())
	}

	if c.NArg() == 0 {
		if err := r.lines(c.App.Reader, opts); err != nil {
			return err
		}
		return r.err()
	}
	for _, arg := range c.Args().Slice() {
		f, err := molweight.Parse(strings.NewReader(arg), opts...)
		r.report(arg, f, err)
	}
	return r.err()
}

func loadTable(name string) (*molweight.Table, error) {
	if name == "" {
		return molweight.DefaultTable(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := molweight.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	log.WithField("file", name).WithField("entries", t.Len()).Debug("loaded element table")
	return molweight.DefaultTable().Merge(t), nil
}

func listElements(w io.Writer, table *molweight.Table) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Z\tSymbol\tName\tWeight")
	known := make(map[string]bool)
	for _, e := range molweight.Elements() {
		known[e.Symbol] = true
		wt, _ := table.WeightOf(e.Symbol)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g\n", e.Number, e.Symbol, e.Name, wt)
	}
	// Entries from a custom table that aren't real elements.
	for _, sym := range table.Symbols() {
		if !known[sym] {
			wt, _ := table.WeightOf(sym)
			fmt.Fprintf(tw, "-\t%s\t\t%g\n", sym, wt)
		}
	}
	return tw.Flush()
}

type reporter struct {
	w      io.Writer
	ctx    *molweight.Context
	verb   string
	places int
	round  bool
	sig    int
	comp   bool

	n, failed int
}

// lines reports each line of in as a separate formula.
func (r *reporter) lines(in io.Reader, opts []molweight.ParseOption) error {
	br := bufio.NewReader(in)
	opts = append(opts, molweight.StopOn('\n'))
	for {
		// First check whether we're done with the input.
		if _, _, err := br.ReadRune(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		br.UnreadRune()
		f, err := molweight.Parse(br, opts...)
		if err != nil {
			var lerr *molweight.LexError
			if !errors.As(err, &lerr) {
				return err
			}
			// Skip the rest of the bad line.
			rest, _ := br.ReadString('\n')
			r.report(lerr.Formula+strings.TrimRight(rest, "\r\n"), nil, err)
			continue
		}
		if f.Empty() {
			continue
		}
		r.report(f.Source(), f, nil)
	}
}

func (r *reporter) report(src string, f *molweight.Formula, err error) {
	r.n++
	if err == nil {
		err = r.print(f)
	}
	if err == nil {
		return
	}
	r.failed++
	e := log.WithError(err).WithField("formula", src)
	var ie molweight.InputError
	if errors.As(err, &ie) {
		e = e.WithField("col", ie.Pos())
	}
	e.Error("cannot compute molecular weight")
}

func (r *reporter) print(f *molweight.Formula) error {
	wt, err := r.ctx.Weight(f)
	if err != nil {
		return err
	}
	switch {
	case r.sig > 0:
		wt = molweight.RoundSig(wt, r.sig)
	case r.round:
		wt = molweight.Round(wt, r.places)
	}
	log.WithField("formula", f.Source()).WithField("tokens", f.String()).Debug("evaluated")
	fmt.Fprintf(r.w, "%s\t"+r.verb+"\n", f, wt)
	if !r.comp {
		return nil
	}
	comp, err := r.ctx.Composition(f)
	if err != nil {
		return err
	}
	fracs, err := r.ctx.MassFractions(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.w, "\t%s\n", comp.Hill())
	for _, sym := range f.Symbols() {
		pct := 0.0
		if x := fracs[sym]; x != nil {
			pct, _ = x.Float64()
			pct *= 100
		}
		fmt.Fprintf(r.w, "\t%s\t%s\t%.2f%%\n", sym, comp[sym], pct)
	}
	return nil
}

func (r *reporter) err() error {
	if r.failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d formulas failed", r.failed, r.n)
}
