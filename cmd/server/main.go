package main

import "github.com/matiasroldan/cuchilleria/internal/cmd"

func main() {
	cmd.Execute()
}
