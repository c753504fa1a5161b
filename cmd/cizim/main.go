package main

import "github.com/kaganatalay/ciz.im/internal/cli"

func main() {
	cli.Execute()
}
