package main

import (
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"

	"github.com/open-cli-collective/blocks-cli/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
