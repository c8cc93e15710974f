// Package cmd implements the subcommands of the cfc command-line tool.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/xiruizhao/cashflow-forecast"
)

// Commands lists every subcommand, in registration order.
var Commands = []subcommands.Command{
	&forecastCmd{},
	&addCmd{},
	&deleteCmd{},
	&listCmd{},
	&fmtCmd{},
	&ruleCmd{},
	&shareCmd{},
	&topicCmd{},
	&assistCmd{},
}

const seriesFileEnv = "CASHFLOW_FILE"

var seriesFileFlag = flag.String("f", "", "Path to the cash-flow series file (CSV).\n If missing it will read the environment variable \""+seriesFileEnv+"\", defaulting to \"cashflow.csv\".")

func seriesFile() string {
	if *seriesFileFlag == "" {
		*seriesFileFlag = os.Getenv(seriesFileEnv)
	}
	if *seriesFileFlag == "" {
		*seriesFileFlag = "cashflow.csv"
	}
	return *seriesFileFlag
}

// OpenSeries is the central function to load the cash-flow series.
func OpenSeries() (*cashflow.Series, error) {
	file, err := os.Open(seriesFile())
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, series file does not exist, starting with an empty series instead")
		return &cashflow.Series{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	s, err := cashflow.DecodeSeries(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", seriesFile(), err)
	}
	return s, nil
}

// SaveSeries writes the series back to the series file.
func SaveSeries(s *cashflow.Series) error {
	file, err := os.Create(seriesFile())
	if err != nil {
		return err
	}
	if err := cashflow.EncodeSeries(file, s); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
