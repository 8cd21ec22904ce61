package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"kochsnowflake/koch"
)

// WritePNG strokes segs onto a black canvas of the given size and encodes it
// as PNG.
func WritePNG(w io.Writer, segs []koch.Vector, width, height int, pal Palette) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("png canvas %dx%d: %w", width, height, koch.ErrInvalidConfig)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(gg.Black)
	dc.SetLineWidth(1)
	for i, s := range segs {
		dc.SetColor(pal.At(i).Color())
		dc.DrawLine(
			float64(s.Start.X)+0.5, float64(s.Start.Y)+0.5,
			float64(s.End.X)+0.5, float64(s.End.Y)+0.5,
		)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking segment %d: %w", i, err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
