// Command normalize reads a raw agent payload from stdin or a file and
// prints the canonical report, for inspecting what an agent response
// will turn into without running the dashboard.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"finsight/pkg/core/gateway"
	"finsight/pkg/core/report"
)

func main() {
	file := flag.String("f", "", "payload file (default: stdin)")
	asEnvelope := flag.Bool("envelope", false, "input is a full gateway envelope, not a bare result")
	flag.Parse()

	var raw []byte
	var err error
	if *file != "" {
		raw, err = os.ReadFile(*file)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var env *gateway.Envelope
	if *asEnvelope {
		env = &gateway.Envelope{}
		if err := json.Unmarshal(raw, env); err != nil {
			fmt.Fprintf(os.Stderr, "parse envelope: %v\n", err)
			os.Exit(1)
		}
	} else {
		env = &gateway.Envelope{
			Success:  true,
			Response: &gateway.Payload{Result: json.RawMessage(raw)},
		}
	}

	r := report.Normalize(env)
	if r == nil {
		fmt.Fprintln(os.Stderr, "payload did not normalize (failure envelope or empty result)")
		os.Exit(2)
	}

	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
