package main

import "github.com/rhanlin/graphql-demo/cmd"

func main() {
	cmd.Execute()
}
