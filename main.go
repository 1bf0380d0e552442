package main

import "github.com/heitorcapra/contas-backend/cmd"

func main() {
	cmd.Execute()
}
