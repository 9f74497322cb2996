package main

import "github.com/eddieantonio/blobfs/cmd"

func main() {
	cmd.Execute()
}
