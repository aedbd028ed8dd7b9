// Command fcdemo exercises the frame cache against a software surface,
// printing the regions each frame actually repainted and saving the
// final frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/framecache"
	"github.com/gogpu/framecache/surface"
	"github.com/gogpu/framecache/text"
)

func main() {
	var (
		width    = flag.Int("width", 800, "surface width in pixels")
		height   = flag.Int("height", 600, "surface height in pixels")
		frames   = flag.Int("frames", 4, "number of frames to render")
		fontName = flag.String("font", "DejaVu Sans", "font for the text lines")
		size     = flag.Float64("size", 14, "font size in points")
		output   = flag.String("output", "frame.png", "output file")
		overlay  = flag.Bool("overlay", false, "tint repainted regions")
	)
	flag.Parse()

	s := surface.NewImageSurface(*width, *height)
	defer s.Close()

	fc := framecache.New(framecache.WithDebugOverlay(*overlay))

	var fonts *text.FontGroup
	if f, err := text.LoadByName(*fontName, *size); err != nil {
		log.Printf("No usable font %q, drawing shapes only: %v", *fontName, err)
	} else {
		fonts = text.GroupOf(f)
	}

	for i := 0; i < *frames; i++ {
		fc.BeginFrame(s)
		drawScene(fc, fonts, *width, *height, i)
		dirty := fc.EndFrame()
		fmt.Printf("frame %d: %d repainted region(s) %v\n", i+1, len(dirty), dirty)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer out.Close()
	if err := png.Encode(out, s.Image()); err != nil {
		log.Fatalf("Failed to encode: %v", err)
	}

	log.Printf("Final frame saved to %s (%dx%d)\n", *output, *width, *height)
}

// drawScene redraws the full frame, as callers of the cache always do.
// Only the caret moves between frames, so after the first frame the
// cache repaints just the cells the caret left and entered.
func drawScene(fc *framecache.Cache, fonts *text.FontGroup, w, h, frame int) {
	fc.DrawRect(framecache.Rect{W: w, H: h}, framecache.Hex("#282c34"))
	fc.DrawRect(framecache.Rect{W: w, H: 24}, framecache.Hex("#21252b"))

	caretX := 40 + frame*30
	fc.DrawRect(framecache.Rect{X: caretX, Y: 60, W: 2, H: 18}, framecache.Hex("#61afef"))

	fc.DrawPoly([]framecache.Point{
		{X: float64(w) - 60, Y: 40},
		{X: float64(w) - 20, Y: 40},
		{X: float64(w) - 40, Y: 70},
	}, framecache.Hex("#98c379"))

	if fonts == nil {
		return
	}
	y := 100.0
	for _, line := range []string{
		"package main",
		"",
		"func main() {",
		"\tprintln(\"differential redraw\")",
		"}",
	} {
		fc.DrawText(fonts, line, 16, y, framecache.Hex("#abb2bf"), text.Tab{})
		y += float64(fonts.Height())
	}
}
