package main

import (
	"log"

	"jpegvault/cmd/jv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatal(err)
	}
}
