package main

import "github.com/WilsonSunBritten/serverless-tools/cmd/democtl/cmd"

func main() {
	cmd.Execute()
}
