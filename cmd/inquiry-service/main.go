package main

import (
	"log"

	"github.com/areeshaabbas/inquiry-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
