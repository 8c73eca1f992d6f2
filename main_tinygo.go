//go:build tinygo

package main

import (
	"chime/app"
	"chime/hal"
)

func main() {
	app.RunWithConfig(hal.New(), app.Config{Loop: true})
}
