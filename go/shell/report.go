package shell

import (
	"fmt"

	"github.com/chzyer/logex"
	"github.com/fogleman/gg"

	"github.com/tomasklepac/Virtual-Filesystem/go/vfs"
)

const (
	repWidth  = 640
	repCell   = 16
	repPerRow = 32
)

// Report renders the superblock summary and both allocation bitmaps as a
// PNG image: one colored cell per allocation unit.
func Report(vol *vfs.Volume, path string) error {
	st, err := vol.Statfs()
	if err != nil {
		return err
	}
	inodes, blocks, err := vol.BitmapSnapshot()
	if err != nil {
		return err
	}

	rows := func(n int) int { return (n + repPerRow - 1) / repPerRow }
	height := 200 + (rows(len(inodes))+rows(len(blocks)))*repCell + 80
	dc := gg.NewContext(repWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := 20.0
	dc.SetRGB(0.2, 0.4, 0.6)
	dc.DrawRectangle(0, y, repWidth, 30)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("FILESYSTEM REPORT", repWidth/2, y+15, 0.5, 0.5)
	y += 50

	dc.SetRGB(0, 0, 0)
	lines := []string{
		fmt.Sprintf("signature: %s", st.Signature),
		fmt.Sprintf("descriptor: %s", st.Descriptor),
		fmt.Sprintf("disk size: %d B, cluster size: %d B, clusters: %d",
			st.DiskSize, st.ClusterSize, st.ClusterCount),
		fmt.Sprintf("inodes: %d used / %d free", st.UsedInodes, st.FreeInodes),
		fmt.Sprintf("blocks: %d used / %d free", st.UsedBlocks, st.FreeBlocks),
	}
	for _, line := range lines {
		dc.DrawString(line, 20, y)
		y += 20
	}
	y += 10

	y = drawBitmap(dc, "inode bitmap", inodes, y)
	y += 20
	drawBitmap(dc, "data bitmap", blocks, y)

	return logex.Trace(dc.SavePNG(path))
}

func drawBitmap(dc *gg.Context, title string, bitmap []byte, y float64) float64 {
	dc.SetRGB(0, 0, 0)
	dc.DrawString(title, 20, y)
	y += 8
	for i, b := range bitmap {
		x := float64(20 + (i%repPerRow)*repCell)
		cy := y + float64(i/repPerRow)*repCell
		if b != 0 {
			dc.SetRGB(0.8, 0.3, 0.2)
		} else {
			dc.SetRGB(0.85, 0.85, 0.85)
		}
		dc.DrawRectangle(x, cy, repCell-2, repCell-2)
		dc.Fill()
	}
	return y + float64((len(bitmap)+repPerRow-1)/repPerRow)*repCell + 12
}
