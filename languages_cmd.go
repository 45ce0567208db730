package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docvoice/docvoice/voice"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages documents can be translated to",
	Args:  cobra.NoArgs,
	Run: func(*cobra.Command, []string) {
		for _, code := range voice.Supported() {
			fmt.Printf("%-4s %s\n", code, voice.DisplayName(code))
		}
	},
}
