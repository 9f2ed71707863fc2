package main

import "github.com/meetfewer/meetfewer/cmd"

// version is overridden by the release build.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
