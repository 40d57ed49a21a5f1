// cmd/tools/registry-check/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"loan-workers/pkg/registry"
)

func main() {
	if len(os.Args) < 2 {
		help(os.Stdout)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	path := fs.String("path", "configs/task-registry.json", "Path to task registry file")
	taskType := fs.String("taskType", "", "Task type to check the payload against")
	payload := fs.String("payload", "", "Path to a JSON file with job variables")

	switch cmd {
	case "list", "validate", "check":
	case "help":
		help(out)
		return nil
	default:
		help(out)
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		for _, tt := range reg.TaskTypes() {
			t, _ := reg.Task(tt)
			fmt.Fprintf(out, "%-28s %-10s timeout=%s retries=%d errors=%s\n",
				tt, t.Category, t.Timeout, t.Retries, strings.Join(t.ErrorCodes, ","))
		}
	case "validate":
		if len(reg.TaskTypes()) == 0 {
			return errors.New("registry contains no tasks")
		}
		fmt.Fprintf(out, "Registry %s is valid. Found %d tasks.\n", reg.Version(), len(reg.TaskTypes()))
	case "check":
		if *taskType == "" || *payload == "" {
			return errors.New("taskType and payload are required for check")
		}
		data, err := os.ReadFile(*payload)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		if err := reg.ValidateInput(*taskType, string(data)); err != nil {
			return err
		}
		fmt.Fprintf(out, "Payload is valid for %s.\n", *taskType)
	}
	return nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-check <command> [flags]

Commands:
  list      Print every task type with its timeout, retries and error codes
  validate  Parse the registry and compile every input schema
  check     Validate a job variables file against a task's input schema
  help      Show this help message

Examples:
  registry-check validate -path configs/task-registry.json
  registry-check check -taskType create-loan-application -payload payload.json`)
}
