package main

import "github.com/nyambati/nlufn/cmd/nlufn"

func main() {
	nlufn.Execute()
}
