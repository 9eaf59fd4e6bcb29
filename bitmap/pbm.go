package bitmap

import (
	"bufio"
	"fmt"
	"io"
)

// EncodePBM writes the bitmap in raw PBM (P4) format, the tracing engine's
// preferred input. Pixels darker than mid-gray are written as black bits;
// the bitmap should normally be binarized with Threshold first.
func (b *Bitmap) EncodePBM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P4\n%d %d\n", b.width, b.height); err != nil {
		return err
	}

	rowBytes := (b.width + 7) / 8
	row := make([]byte, rowBytes)
	for y := 0; y < b.height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < b.width; x++ {
			if b.pix[y*b.width+x] < 128 {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
