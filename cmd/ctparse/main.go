/*************************************************************************
 * Copyright 2018 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Command ctparse is a single-binary CLI around the parsing engine: it
// reads one time expression per line (from positional args, or stdin
// if none are given) and prints the best resolution for each, or runs
// a labeled corpus file with -corpus / -train.
//
// Grounded on gravwell/SimpleRelay/main.go's flag/init/main shape.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comtravo/ctparse/config"
	"github.com/comtravo/ctparse/corpus"
	"github.com/comtravo/ctparse/log"
	"github.com/comtravo/ctparse/match"
	"github.com/comtravo/ctparse/nb"
	"github.com/comtravo/ctparse/postprocess"
	"github.com/comtravo/ctparse/rule"
	"github.com/comtravo/ctparse/scorer"
	"github.com/comtravo/ctparse/search"
	"github.com/comtravo/ctparse/utils"
	"github.com/comtravo/ctparse/version"

	_ "github.com/comtravo/ctparse/timerules"
)

var (
	cpuprofile     = flag.String("cpuprofile", "", "write a pprof CPU profile to this file")
	configFile     = flag.String("config-file", "", "path to a ctparse engine config file")
	verbose        = flag.Bool("v", false, "set the log level to debug")
	debug          = flag.Bool("debug", false, "print every candidate resolution and its score, not just the best")
	stderrOverride = flag.String("stderr", "", "redirect stderr to this file, keeping the original fd 2 as an extra log writer")
	printVersion   = flag.Bool("version", false, "print version information and exit")
	corpusFile     = flag.String("corpus", "", "run the labeled corpus at this path instead of parsing input")
	trainOut       = flag.String("train", "", "train a scorer model from -corpus's samples and write it here")
	refTimeFlag    = flag.String("ref-time", "", "reference time as RFC3339 (defaults to now)")
)

func init() {
	flag.Parse()
	if *printVersion {
		version.PrintVersion(os.Stdout)
		os.Exit(0)
	}
}

func main() {
	if *cpuprofile != `` {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(-1)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	lg, err := log.NewStderrLoggerEx(*stderrOverride, func(w io.Writer) {
		version.PrintVersion(w)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(-1)
	}
	defer lg.Close()

	cfg := config.EngineConfig{Locales: []string{`en`}, Fast_Path: true}
	if *configFile != `` {
		var fc struct {
			Global config.EngineConfig
		}
		if err := config.LoadConfigFile(&fc, *configFile); err != nil {
			lg.FatalCode(-1, "failed to load config file", log.KV("file", *configFile), log.KVErr(err))
		}
		cfg = fc.Global
	}
	if err := cfg.Verify(); err != nil {
		lg.FatalCode(-1, "invalid configuration", log.KVErr(err))
	}
	if cfg.Log_File != `` {
		fout, err := os.OpenFile(cfg.Log_File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			lg.FatalCode(-1, "failed to open log file", log.KV("file", cfg.Log_File), log.KVErr(err))
		}
		if err := lg.AddWriter(fout); err != nil {
			lg.FatalCode(-1, "failed to add log writer", log.KVErr(err))
		}
	}
	if *verbose {
		cfg.Log_Level = `DEBUG`
	}
	if err := lg.SetLevelString(cfg.Log_Level); err != nil {
		lg.Error("invalid log level, leaving default in place", log.KV("level", cfg.Log_Level))
	}

	runID := uuid.New()
	lg.Info("ctparse starting", log.KV("run-id", runID.String()))

	reg := rule.Global

	if *corpusFile != `` {
		os.Exit(runCorpusMode(lg, reg, runID))
	}

	sc := loadScorer(lg, cfg)

	refTime := time.Now()
	if *refTimeFlag != `` {
		t, err := time.Parse(time.RFC3339, *refTimeFlag)
		if err != nil {
			lg.FatalCode(-1, "invalid -ref-time", log.KV("value", *refTimeFlag), log.KVErr(err))
		}
		refTime = t
	}

	timeout, err := cfg.ParseTimeout()
	if err != nil {
		lg.FatalCode(-1, "invalid timeout", log.KVErr(err))
	}
	opts := search.Options{
		Timeout:          timeout,
		RelativeMatchLen: cfg.Relative_Match_Len,
		MaxStackDepth:    cfg.Max_Stack_Depth,
		EnableFastPath:   cfg.Fast_Path,
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if args := flag.Args(); len(args) > 0 {
		for _, text := range args {
			parseOne(lg, reg, sc, text, refTime, opts, cfg.Latent_Time, runID, out)
		}
		return
	}

	if err := runStream(lg, reg, sc, os.Stdin, out, refTime, opts, cfg.Latent_Time, runID); err != nil {
		lg.FatalCode(-1, "failed to read input", log.KVErr(err))
	}
}

// runStream parses one time expression per non-blank line read from in
// until EOF or a shutdown signal arrives, mirroring the ingesters'
// signal-driven run loop (utils.WaitForQuit/GetQuitChannel) so a
// long-lived pipe can be interrupted cleanly instead of left hanging.
func runStream(lg *log.Logger, reg *rule.Registry, sc scorer.Scorer, in io.Reader, out io.Writer, refTime time.Time, opts search.Options, latent bool, runID uuid.UUID) error {
	quit := utils.GetQuitChannel()
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanErr <- scanNonBlankLines(in, func(line string) { lines <- line })
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			parseOne(lg, reg, sc, line, refTime, opts, latent, runID, out)
		case sig := <-quit:
			lg.Info("shutting down on signal", log.KV("run-id", runID.String()), log.KV("signal", sig.String()))
			return nil
		}
	}
}

// scanNonBlankLines reads r line by line, invoking emit with each
// trimmed, non-blank line in order.
func scanNonBlankLines(r io.Reader, emit func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != `` {
			emit(line)
		}
	}
	return scanner.Err()
}

// parseOne runs the search engine over one line of input and prints
// either its single best resolution, or (with -debug) every candidate
// found, ranked by score.
func parseOne(lg *log.Logger, reg *rule.Registry, sc scorer.Scorer, text string, refTime time.Time, opts search.Options, latent bool, runID uuid.UUID, out io.Writer) {
	results, err := search.Parse(reg, sc, match.Preprocess(text), refTime, opts)
	if err != nil {
		lg.Warn("parse failed", log.KV("run-id", runID.String()), log.KV("text", text), log.KVErr(err))
		fmt.Fprintf(out, "%s\t<no parse: %v>\n", text, err)
		return
	}
	if len(results) == 0 {
		lg.Debug("no resolution found", log.KV("run-id", runID.String()), log.KV("text", text))
		fmt.Fprintf(out, "%s\t<no parse>\n", text)
		return
	}
	lg.Debug("parsed", log.KV("run-id", runID.String()), log.KV("text", text), log.KV("candidates", len(results)))

	if latent {
		for i := range results {
			results[i].Resolution = postprocess.Apply(refTime, results[i].Resolution)
		}
	}

	if !*debug {
		best, _ := search.Best(results)
		fmt.Fprintf(out, "%s\t%s\n", text, best.Resolution.String())
		return
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	fmt.Fprintf(out, "%s\n", text)
	for _, r := range results {
		fmt.Fprintf(out, "\t%-0.4f\t%s\t%s\n", r.Score, r.Resolution.String(), strings.Join(r.Rules, ","))
	}
}

// loadScorer returns a trained scorer.Model if cfg names a model file,
// otherwise scorer.Dummy{} -- mirrors ctparse()'s fallback to an
// untrained NaiveBayesScorer.
func loadScorer(lg *log.Logger, cfg config.EngineConfig) scorer.Scorer {
	if cfg.Scorer_Model == `` {
		return scorer.Dummy{}
	}
	f, err := os.Open(cfg.Scorer_Model)
	if err != nil {
		lg.FatalCode(-1, "failed to open scorer model", log.KV("path", cfg.Scorer_Model), log.KVErr(err))
	}
	defer f.Close()
	model, err := nb.LoadModel(f)
	if err != nil {
		lg.FatalCode(-1, "failed to decode scorer model", log.KV("path", cfg.Scorer_Model), log.KVErr(err))
	}
	return scorer.NewModel(model)
}

// runCorpusMode replays the labeled corpus at *corpusFile. With -train
// set, it also fits an nb.NB model on the harvested samples and writes
// it to that path. Returns the process exit code.
func runCorpusMode(lg *log.Logger, reg *rule.Registry, runID uuid.UUID) int {
	examples, err := corpus.LoadFile(*corpusFile)
	if err != nil {
		lg.Error("failed to load corpus", log.KV("run-id", runID.String()), log.KV("path", *corpusFile), log.KVErr(err))
		return -1
	}

	result, err := corpus.Run(reg, examples)
	if err != nil {
		lg.Error("corpus run failed", log.KV("run-id", runID.String()), log.KVErr(err))
		return -1
	}

	fmt.Printf("total tests:       %d\n", result.Stats.TotalTests)
	fmt.Printf("positive parses:   %d\n", result.Stats.PosParses)
	fmt.Printf("negative parses:   %d\n", result.Stats.NegParses)
	fmt.Printf("positive first:    %d\n", result.Stats.PosFirstParses)
	fmt.Printf("positive best:     %d\n", result.Stats.PosBestScored)
	if len(result.Stats.FailedTargets) > 0 {
		fmt.Printf("failed targets:\n")
		for _, t := range result.Stats.FailedTargets {
			fmt.Printf("  %s\n", t)
		}
	}

	if *trainOut != `` {
		model := nb.NewNB().Fit(result.Samples, result.Labels)
		f, err := os.Create(*trainOut)
		if err != nil {
			lg.Error("failed to create model file", log.KV("path", *trainOut), log.KVErr(err))
			return -1
		}
		defer f.Close()
		if err := nb.SaveModel(f, model); err != nil {
			lg.Error("failed to save model", log.KV("path", *trainOut), log.KVErr(err))
			return -1
		}
		lg.Info("wrote trained scorer model", log.KV("path", *trainOut), log.KV("samples", len(result.Samples)))
	}

	if !result.AllPass {
		return 1
	}
	return 0
}
