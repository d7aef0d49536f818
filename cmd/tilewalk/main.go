// Command tilewalk runs scenes described by YAML startup scripts.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/tilewalk/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
