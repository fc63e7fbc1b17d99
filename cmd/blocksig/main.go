package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/blocksig"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "generate":
		generateCmd(os.Args[2:])
	case "buckets":
		bucketsCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "blocksig CLI\n\nUsage:\n  blocksig generate -config strategies.yaml [-in records.csv] [-header] [-json] [-v]\n  blocksig buckets -config strategies.yaml [-in records.csv] [-header] [-min 2] [-v]\n  blocksig schema\n\nNotes:\n  - Records are CSV rows; columns are the feature indices used by the strategies.\n  - Rows are numbered from 1, excluding the header.")
}

type inputFlags struct {
	config  string
	in      string
	header  bool
	verbose bool
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "strategy set file (.json, .yaml or .yml)")
	fs.StringVar(&f.in, "in", "-", "CSV records file, - for stdin")
	fs.BoolVar(&f.header, "header", false, "skip the first CSV row")
	fs.BoolVar(&f.verbose, "v", false, "enable verbose logs")
}

func (f *inputFlags) logf(format string, a ...any) {
	if f.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

// run loads the strategy set and calls fn with the signatures of every record.
func (f *inputFlags) run(fn func(row int, sigs blocksig.Signatures)) {
	set := loadStrategies(f.config)
	f.logf("loaded %d strategies from %s", len(set), f.config)

	var src io.Reader = os.Stdin
	if f.in != "-" {
		file, err := os.Open(f.in)
		if err != nil {
			fatalf("open records: %v", err)
		}
		defer file.Close()
		src = file
	}
	r := csv.NewReader(bufio.NewReader(src))
	r.FieldsPerRecord = -1
	row := 0
	skipHeader := f.header
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fatalf("read records: %v", err)
		}
		if skipHeader {
			skipHeader = false
			f.logf("skipping header: %s", strings.Join(fields, ","))
			continue
		}
		row++
		sigs, err := blocksig.Generate(set, blocksig.Strings(fields...))
		if err != nil {
			fatalf("row %d: %v", row, err)
		}
		fn(row, sigs)
	}
	f.logf("processed %d records", row)
}

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var in inputFlags
	var asJSON bool
	in.register(fs)
	fs.BoolVar(&asJSON, "json", false, "emit one JSON object per record")
	_ = fs.Parse(args)
	if in.config == "" {
		fs.Usage()
		os.Exit(2)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	enc := json.NewEncoder(w)
	in.run(func(row int, sigs blocksig.Signatures) {
		if asJSON {
			if err := enc.Encode(struct {
				Row        int      `json:"row"`
				Signatures []string `json:"signatures"`
			}{row, sigs.Sorted()}); err != nil {
				fatalf("write: %v", err)
			}
			return
		}
		fmt.Fprintf(w, "%d\t%s\n", row, strings.Join(sigs.Sorted(), ","))
	})
}

func bucketsCmd(args []string) {
	fs := flag.NewFlagSet("buckets", flag.ExitOnError)
	var in inputFlags
	var minSize int
	in.register(fs)
	fs.IntVar(&minSize, "min", 2, "only print buckets with at least this many records")
	_ = fs.Parse(args)
	if in.config == "" {
		fs.Usage()
		os.Exit(2)
	}

	buckets := map[string][]int{}
	in.run(func(row int, sigs blocksig.Signatures) {
		for _, s := range sigs.Sorted() {
			buckets[s] = append(buckets[s], row)
		}
	})
	for k, rows := range buckets {
		if len(rows) < minSize {
			delete(buckets, k)
		}
	}
	in.logf("%d buckets with at least %d records", len(buckets), minSize)
	out, err := json.MarshalIndent(buckets, "", "  ")
	if err != nil {
		fatalf("encode buckets: %v", err)
	}
	fmt.Println(string(out))
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	_ = fs.Parse(args)
	out, err := json.MarshalIndent(blocksig.ConfigSchema(), "", "  ")
	if err != nil {
		fatalf("encode schema: %v", err)
	}
	fmt.Println(string(out))
}

func loadStrategies(path string) blocksig.StrategySet {
	f, err := os.Open(path)
	if err != nil {
		fatalf("open config: %v", err)
	}
	defer f.Close()
	set, err := blocksig.Decode(f, blocksig.FormatFromPath(path))
	if err != nil {
		if iss, ok := blocksig.AsIssues(err); ok {
			for _, it := range iss {
				fmt.Fprintf(os.Stderr, "%s: %s at %s: %s\n", path, it.Code, it.Path, it.Message)
			}
			os.Exit(1)
		}
		fatalf("decode config: %v", err)
	}
	return set
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "blocksig: "+format+"\n", a...)
	os.Exit(1)
}
