package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/typeshape"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f := mustLoadFont(fontPath)
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	width := mustFlagInt(flags["width"], "width")
	height := mustFlagInt(flags["height"], "height")
	showBBoxes := mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	if width <= 0 || height <= 0 {
		fatalf("--width and --height must be > 0")
	}
	buf := shapeFromFlags(f, args, flags)
	if buf.Len() == 0 {
		fatalf("shaping produced no glyphs")
	}
	img, err := renderGlyphRun(f, buf, width, height, ppem, showBBoxes)
	if err != nil {
		fatalf("render failed: %v", err)
	}
	if err := writePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (glyphs=%d)\n", outPath, buf.Len())
}

type glyphPath struct {
	segs   sfnt.Segments
	dx, dy float32
	box    fixed.Rectangle26_6
}

// renderGlyphRun rasterizes the glyphs of a shaped buffer, centered in an
// image of the given size.
func renderGlyphRun(f *typeshape.ScalableFont, buf *otlayout.Buffer, width, height, ppem int,
	showBBoxes bool) (*image.RGBA, error) {
	//
	upem := float32(f.UnitsPerEm())
	if upem <= 0 {
		return nil, errors.New("invalid units-per-em")
	}
	scale := float32(ppem) / upem
	paths := make([]glyphPath, 0, buf.Len())
	var penX, penY float32
	var minX, minY, maxX, maxY float32
	var sbuf sfnt.Buffer
	for i := range buf.Glyphs {
		gd := buf.At(i)
		segs, err := f.SFNT.LoadGlyph(&sbuf, sfnt.GlyphIndex(gd.GlyphID), fixed.I(ppem), nil)
		if err == nil {
			// segments become invalid once the buffer is re-used
			segs = append(sfnt.Segments(nil), segs...)
			dx := penX + float32(gd.Pos.XOffset)*scale
			dy := penY - float32(gd.Pos.YOffset)*scale // image y grows downwards
			b := segs.Bounds()
			x0, y0 := float32(b.Min.X)/64+dx, float32(b.Min.Y)/64+dy
			x1, y1 := float32(b.Max.X)/64+dx, float32(b.Max.Y)/64+dy
			if len(paths) == 0 {
				minX, minY, maxX, maxY = x0, y0, x1, y1
			} else {
				minX, minY = min(minX, x0), min(minY, y0)
				maxX, maxY = max(maxX, x1), max(maxY, y1)
			}
			paths = append(paths, glyphPath{segs: segs, dx: dx, dy: dy, box: b})
		}
		penX += float32(gd.Pos.XAdvance) * scale
		penY -= float32(gd.Pos.YAdvance) * scale
	}
	if len(paths) == 0 {
		return nil, errors.New("no drawable glyph paths found")
	}
	shiftX := (float32(width)-(maxX-minX))/2 - minX
	shiftY := (float32(height)-(maxY-minY))/2 - minY

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, p := range paths {
		tx, ty := shiftX+p.dx, shiftY+p.dy
		pt := func(q fixed.Point26_6) (float32, float32) {
			return tx + float32(q.X)/64, ty + float32(q.Y)/64
		}
		for _, seg := range p.segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				rast.MoveTo(pt(seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				rast.LineTo(pt(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				x0, y0 := pt(seg.Args[0])
				x1, y1 := pt(seg.Args[1])
				rast.QuadTo(x0, y0, x1, y1)
			case sfnt.SegmentOpCubeTo:
				x0, y0 := pt(seg.Args[0])
				x1, y1 := pt(seg.Args[1])
				x2, y2 := pt(seg.Args[2])
				rast.CubeTo(x0, y0, x1, y1, x2, y2)
			}
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	if showBBoxes {
		for _, p := range paths {
			tx, ty := int(shiftX+p.dx), int(shiftY+p.dy)
			drawRectOutline(img, p.box.Min.X.Floor()+tx, p.box.Min.Y.Floor()+ty,
				p.box.Max.X.Ceil()+tx, p.box.Max.Y.Ceil()+ty, color.RGBA{255, 0, 0, 255})
		}
	}
	return img, nil
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	// top and bottom
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	// left and right
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
