package main

import "github.com/LegacyCodeHQ/includedeps/cmd"

func main() {
	cmd.Execute()
}
