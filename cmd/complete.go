package cmd

import (
	"flag"

	"github.com/etnz/reit/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// jsonl predicts the files a subcommand reads or writes.
var jsonl = predict.Files("*.jsonl")

// argPredictors predicts positional arguments, by subcommand.
var argPredictors = map[string]complete.Predictor{
	"run":       jsonl,
	"shell":     jsonl,
	"chain":     jsonl,
	"query":     jsonl,
	"portfolio": jsonl,
	"assist":    jsonl,
	"topic":     predict.Set(topics()),
}

func topics() []string {
	all, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return all
}

// fileFlags are the flags naming a JSONL file.
var fileFlags = map[string]bool{"export": true, "record": true}

// Completion describes the commands registered in c, with their flags, for
// shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}

	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		sub := &complete.Command{Args: argPredictors[sc.Name()]}
		sub.Flags = flags(sc.SetFlags)
		if sub.Args == nil {
			sub.Args = predict.Nothing
		}
		root.Sub[sc.Name()] = sub
	})
	return root
}

// flags predicts the flags declared by setFlags.
func flags(setFlags func(*flag.FlagSet)) map[string]complete.Predictor {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	setFlags(fs)
	return predictFlags(fs)
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	result := map[string]complete.Predictor{}
	fs.VisitAll(func(fl *flag.Flag) {
		switch flagKind(fl) {
		case fileFlag:
			result[fl.Name] = jsonl
		case boolFlag:
			result[fl.Name] = predict.Nothing
		default:
			result[fl.Name] = predict.Something
		}
	})
	return result
}

type kind int

const (
	valueFlag kind = iota
	boolFlag
	fileFlag
)

func flagKind(fl *flag.Flag) kind {
	if fileFlags[fl.Name] {
		return fileFlag
	}
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return boolFlag
	}
	return valueFlag
}
