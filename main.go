package main

import (
	"os"

	"github.com/render-shortcodes/render/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
