package main

import (
	"os"

	"quill/cmd"
)

// @title        Quill API
// @version      1.0
// @description  Paraphrase gateway backed by the Gemini generateContent API.
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
