package main

import "github.com/rumor-ml/commons.systems/bankledger/internal/cli"

func main() {
	cli.Execute()
}
