//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

// Command yaocmp runs one side of the two-party maximum-comparison
// protocol, grounded on apps/garbled/main.go's flag shape (role selector,
// -v/-d verbosity) and original_source/src/main.py's Alice/Bob split,
// adapted from its pickled-socket transport to transport.Conn over TCP.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/input"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/protocol"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/session"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":4217", "listen address (alice) or dial address (bob)")
	bits := flag.Int("bits", session.DefaultBits, "comparator circuit bit width")
	scale := flag.Int("scale", session.DefaultScale, "fixed-point scale factor each input value is multiplied by")
	verbose := flag.Bool("v", false, "print a timing/transfer report")
	debug := flag.Bool("d", false, "print debug logs of connection setup")
	verify := flag.String("verify", "", "skip the network protocol; compare two local files in the clear (format: alice.txt,bob.txt)")
	flag.Usage = usage
	flag.Parse()

	if *verify != "" {
		return runVerify(*verify, *bits)
	}

	args := flag.Args()
	if len(args) != 2 {
		usage()
		return 1
	}
	role, file := args[0], args[1]

	values, err := loadFile(file, *scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yaocmp: %v\n", err)
		return protocol.ExitCode(err)
	}

	var timing *protocol.Timing
	if *verbose {
		timing = protocol.NewTiming()
	}

	var verdict protocol.Verdict
	switch role {
	case "alice":
		verdict, err = runAlice(*addr, *bits, *scale, values, timing, *debug)
	case "bob":
		verdict, err = runBob(*addr, values, timing, *debug)
	default:
		fmt.Fprintf(os.Stderr, "yaocmp: unknown role %q, expected alice or bob\n", role)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "yaocmp: %v\n", err)
		return protocol.ExitCode(err)
	}

	printVerdict(role, verdict)
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  yaocmp [flags] alice <file>   garble the circuit, listen on -addr, compare
  yaocmp [flags] bob <file>     dial -addr, evaluate the circuit, compare
  yaocmp -verify a.txt,b.txt    compare two local files without the network protocol

flags:
`)
	flag.PrintDefaults()
}

func loadFile(path string, scale int) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return input.ParseNumbers(strings.TrimSpace(string(data)), scale)
}

func runAlice(addr string, bits, scale int, values []int64, timing *protocol.Timing, debug bool) (protocol.Verdict, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return protocol.Verdict{}, err
	}
	defer ln.Close()
	if debug {
		fmt.Fprintf(os.Stderr, "yaocmp: alice listening on %s\n", addr)
	}

	nc, err := ln.Accept()
	if err != nil {
		return protocol.Verdict{}, err
	}
	defer nc.Close()
	if debug {
		fmt.Fprintf(os.Stderr, "yaocmp: connection from %s\n", nc.RemoteAddr())
	}

	conn := transport.NewConn(nc)
	sess := session.New(bits, scale)

	verdict, err := protocol.RunGarbler(conn, sess, values, timing)
	closeAndReport(conn, timing)
	return verdict, err
}

func runBob(addr string, values []int64, timing *protocol.Timing, debug bool) (protocol.Verdict, error) {
	var nc net.Conn
	var err error
	for i := 0; i < 10; i++ {
		nc, err = net.Dial("tcp", addr)
		if err == nil {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	if err != nil {
		return protocol.Verdict{}, err
	}
	defer nc.Close()
	if debug {
		fmt.Fprintf(os.Stderr, "yaocmp: bob connected to %s\n", addr)
	}

	conn := transport.NewConn(nc)
	verdict, err := protocol.RunEvaluator(conn, values, timing)
	closeAndReport(conn, timing)
	return verdict, err
}

func closeAndReport(conn *transport.Conn, timing *protocol.Timing) {
	if timing != nil {
		timing.Print(conn.Stats)
	}
	_ = conn.Close()
}

func runVerify(spec string, bits int) int {
	parts := strings.SplitN(spec, ",", 2)
	if len(parts) != 2 {
		fmt.Fprintf(os.Stderr, "yaocmp: -verify expects \"alice.txt,bob.txt\"\n")
		return 1
	}
	aliceValues, err := loadFile(strings.TrimSpace(parts[0]), session.DefaultScale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yaocmp: %v\n", err)
		return protocol.ExitCode(err)
	}
	bobValues, err := loadFile(strings.TrimSpace(parts[1]), session.DefaultScale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yaocmp: %v\n", err)
		return protocol.ExitCode(err)
	}

	verdict, err := protocol.VerifyInClear(aliceValues, bobValues, bits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yaocmp: %v\n", err)
		return protocol.ExitCode(err)
	}
	printVerdict("verify", verdict)
	return 0
}

func printVerdict(who string, v protocol.Verdict) {
	var msg string
	switch {
	case v.Equal():
		msg = "A and B have equal maxima"
	case v.BWins():
		msg = "B has the larger maximum"
	default:
		msg = "A has the larger maximum"
	}
	fmt.Printf("%s: %s (%s)\n", who, v.Code(), msg)
}
