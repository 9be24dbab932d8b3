// Copyright 2024 The goevm Authors
// This file is part of the goevm library.
//
// The goevm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The goevm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the goevm library. If not, see <http://www.gnu.org/licenses/>.

// Command goevm is a standalone harness for the EVM bytecode engine: it
// runs a single piece of code against optional calldata and prints the
// outcome (status, return data, gas used and remaining, refund, and any
// error) as JSON, the way the
// teacher's own probec compiler driver exposes its language's pipeline
// from the command line.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/probechain/goevm/core/vm"
	"github.com/probechain/goevm/log"
	"gopkg.in/urfave/cli.v1"
)

const version = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "goevm"
	app.Usage = "run a single piece of EVM bytecode and report the outcome"
	app.Version = version
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "execute code against optional calldata and print the outcome as JSON",
			Action: run,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "code", Usage: "hex-encoded bytecode to execute (0x-prefixed or bare)"},
				cli.StringFlag{Name: "input", Usage: "hex-encoded calldata (default: empty)"},
				cli.Uint64Flag{Name: "gas", Value: 1_000_000, Usage: "gas limit for the frame"},
				cli.BoolFlag{Name: "debug", Usage: "log one structured trace line per executed opcode"},
				cli.BoolFlag{Name: "disassemble", Usage: "print a disassembly of the code and exit"},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "goevm:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	codeHex := c.String("code")
	if codeHex == "" {
		return cli.NewExitError("goevm: -code is required", 1)
	}
	code, err := decodeHexArg(codeHex)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("goevm: bad -code: %v", err), 1)
	}

	if c.Bool("disassemble") {
		for _, line := range vm.Disassemble(code) {
			fmt.Println(line)
		}
		return nil
	}

	input, err := decodeHexArg(c.String("input"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("goevm: bad -input: %v", err), 1)
	}

	var tracer vm.Tracer
	if c.Bool("debug") {
		log.Root().SetLevel(log.LvlDebug)
		tracer = vm.NewLogTracer()
	}

	frame := vm.NewFrame(vm.FrameConfig{
		Code:     code,
		Calldata: input,
		GasLimit: c.Uint64("gas"),
		Tracer:   tracer,
	})
	outcome := frame.Run()
	frame.Release()

	return printOutcome(outcome)
}

// runResult is the JSON shape printed on stdout; it exists separately
// from vm.Outcome so the wire form stays stable even if the internal
// struct grows fields the CLI has no business exposing.
type runResult struct {
	Status       string `json:"status"`
	ReturnData   string `json:"returnData"`
	GasUsed      uint64 `json:"gasUsed"`
	GasRemaining uint64 `json:"gasRemaining"`
	Refund       uint64 `json:"refund,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorKind    string `json:"errorKind,omitempty"`
}

func printOutcome(out vm.Outcome) error {
	result := runResult{
		Status:       out.Kind.String(),
		ReturnData:   "0x" + hex.EncodeToString(out.ReturnData),
		GasUsed:      out.GasUsed,
		GasRemaining: out.GasRemaining,
		Refund:       out.Refund,
	}
	if out.Err != nil {
		result.Error = out.Err.Error()
		result.ErrorKind = string(out.ErrKind)
	}

	enc, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))

	if out.Kind == vm.OutcomeFailure {
		return cli.NewExitError("", 1)
	}
	return nil
}

// decodeHexArg accepts both 0x-prefixed and bare hex strings, treating
// an empty string as zero-length input rather than an error.
func decodeHexArg(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
