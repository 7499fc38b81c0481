package main

import "github.com/hoppxi/lumactl/internal/cmd"

func main() {
	cmd.Execute()
}
