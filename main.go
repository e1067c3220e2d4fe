package main

import (
	"os"

	"github.com/jira-tools/jira-weekly-report/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
