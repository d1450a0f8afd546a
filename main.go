package main

import (
	"fmt"

	"github.com/maydayroblox/bitflow-finance/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
