package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jengzang/igs-backend-go/internal/auth"
	"github.com/jengzang/igs-backend-go/internal/config"
	"github.com/jengzang/igs-backend-go/internal/floorplan"
	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/session"
	"github.com/jengzang/igs-backend-go/internal/trail"
)

const usage = `igsctl inspects IGS data files and mints API tokens.

Usage:
  igsctl inspect [-annotator naive|cursor] [-min-stop seconds] <file>...
  igsctl token [-subject name] [-ttl duration]
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	_ = godotenv.Load()

	switch args[0] {
	case "inspect":
		return inspect(args[1:], stdout, stderr)
	case "token":
		return token(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
	return 2
}

type inspectResult struct {
	Reports   []models.IngestReport `json:"reports"`
	Errors    []string              `json:"errors,omitempty"`
	Summaries []models.TrailSummary `json:"summaries"`
	Codes     []models.CodeInfo     `json:"codes"`
	Timeline  models.TimelineInfo   `json:"timeline"`
	Floorplan *models.Floorplan     `json:"floorplan,omitempty"`
}

// inspect merges the files into a fresh store the way an upload would and
// prints what came out of it.
func inspect(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	annotatorName := fs.String("annotator", "naive", "code annotator: naive or cursor")
	minStop := fs.Float64("min-stop", trail.DefaultMinStopLength, "minimum stop length in seconds")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "inspect: no files given")
		return 2
	}
	if *minStop < 0 {
		fmt.Fprintln(stderr, "inspect: -min-stop must not be negative")
		return 2
	}

	annotator, err := trail.NewAnnotator(*annotatorName)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 2
	}
	store := session.New(session.Options{Annotator: annotator, MinStopLength: minStop})
	loader := floorplan.NewLoader(10 * time.Second)

	result := inspectResult{Reports: []models.IngestReport{}}
	for _, name := range fs.Args() {
		report, err := ingestFile(store, loader, name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		result.Reports = append(result.Reports, report)
	}

	for _, u := range store.Users() {
		summary, err := store.Summary(u.Name)
		if err != nil {
			continue
		}
		result.Summaries = append(result.Summaries, summary)
	}
	result.Codes = store.Codes()
	result.Timeline = store.Timeline()
	result.Floorplan = store.Floorplan()

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 1
	}
	if len(result.Reports) == 0 {
		return 1
	}
	return 0
}

func ingestFile(store *session.Store, loader *floorplan.Loader, name string) (models.IngestReport, error) {
	if floorplan.IsImageFile(name) {
		fp, err := loader.LoadFile(name)
		if err != nil {
			return models.IngestReport{}, err
		}
		store.SetFloorplan(fp)
		return models.IngestReport{File: filepath.Base(name), Kind: models.FileKindFloorplan}, nil
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return models.IngestReport{}, fmt.Errorf("unsupported file type")
	}

	f, err := os.Open(name)
	if err != nil {
		return models.IngestReport{}, err
	}
	defer f.Close()
	return store.IngestCSV(filepath.Base(name), f)
}

func token(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	subject := fs.String("subject", "igs-client", "token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "token: %v\n", err)
		return 1
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(stderr, "token: JWT_SECRET is not set")
		return 1
	}
	tok, err := auth.Issue(cfg.JWTSecret, *subject, *ttl)
	if err != nil {
		fmt.Fprintf(stderr, "token: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, tok)
	return 0
}
