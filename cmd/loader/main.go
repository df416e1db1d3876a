package main

import (
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/cli"
)

func main() {
	cli.Execute()
}
