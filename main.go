/*
 * ppcpu - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/ppcpu/command/reader"
	"github.com/rcornwell/ppcpu/emu/core"
	"github.com/rcornwell/ppcpu/emu/uart"
	"github.com/rcornwell/ppcpu/util/logger"
)

func main() {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Echo debug logging to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("prog.bin data.bin [sd.img]")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("can't create log file: " + err.Error())
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	slog.SetDefault(slog.New(logger.NewHandler(file,
		&slog.HandlerOptions{Level: programLevel}, *optDebug)))

	args := getopt.Args()
	if len(args) < 2 {
		getopt.Usage()
		os.Exit(1)
	}

	prog, err := os.ReadFile(args[0])
	if err != nil {
		slog.Error("can't read program image: " + err.Error())
		os.Exit(1)
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		slog.Error("can't read data image: " + err.Error())
		os.Exit(1)
	}

	var sdImage io.ReadSeeker
	if len(args) > 2 {
		sdFile, err := os.Open(args[2])
		if err != nil {
			slog.Error("can't open SD image: " + err.Error())
			os.Exit(1)
		}
		defer sdFile.Close()
		sdImage = sdFile
	}

	console, err := uart.New()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer console.Close()

	machine, err := core.New(core.Config{
		Prog:    prog,
		Data:    data,
		SDImage: sdImage,
		Console: console,
	})
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	slog.Info("ppcpu started")
	reader.ConsoleReader(machine)
	slog.Info("ppcpu shut down")
}
