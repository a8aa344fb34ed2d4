package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonhteper/errorkindgen/compiler"
)

type failureReport struct {
	OK          bool                  `json:"ok"`
	Error       string                `json:"error"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty"`
}

// reportFailure prints a failed run: every collected diagnostic first,
// then the stage error that aborted the pipeline.
func reportFailure(prefix string, res *compiler.Result, err error, jsonOut bool) {
	if jsonOut {
		report := failureReport{Error: err.Error()}
		if res != nil {
			report.Diagnostics = res.Diagnostics
		}
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		return
	}
	if res != nil {
		for _, d := range res.Diagnostics {
			fmt.Println(d.String())
		}
	}
	fmt.Printf("\n❌ %s FAILED: %v\n", prefix, err)
}
