package main

import "github.com/viant/pgvec/cmd/pgvec/cmd"

func main() {
	cmd.Execute()
}
