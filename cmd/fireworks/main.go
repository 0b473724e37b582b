package main

import "fireworks/internal/game"

func main() {
	game.RunDesktop()
}
