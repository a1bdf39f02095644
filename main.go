package main

import "tradeboard/internal/ui"

func main() {
	ui.RunApp()
}
