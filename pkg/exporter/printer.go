package exporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"jpegvault/pkg/core"
)

// PrintSegments 以表格形式打印容器里的段 (类似 git ls-tree)
func PrintSegments(w io.Writer, segments []core.SegmentInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "#\tDIGEST\tSIZE\tNAME\n")
	for i, seg := range segments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, seg.Digest.Short(), FmtSize(seg.Size), seg.Path)
	}
	return tw.Flush()
}

func FmtSize(s int64) string {
	if s < 1024 {
		return fmt.Sprintf("%dB", s)
	} else if s < 1024*1024 {
		return fmt.Sprintf("%.1fKB", float64(s)/1024)
	}
	return fmt.Sprintf("%.2fMB", float64(s)/1024/1024)
}
