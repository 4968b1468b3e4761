// Package archive persists run artifacts to disk: simulated datasets,
// summary tables, posterior draws, and rendered reports.
//
// # Overview
//
// Artifacts are plain CSV or text, optionally compressed. A Writer binds a
// directory to one compression scheme and names files by artifact plus
// codec extension, so a run directory reads at a glance:
//
//	run/
//	  clean.csv.zst
//	  outlier.csv.zst
//	  draws_gaussian.csv.zst
//	  report.txt.zst
//
// ReadTable and ReadDataset detect the codec from the extension, so
// artifacts round-trip regardless of which scheme wrote them.
//
// # Compression
//
// Four schemes are built in:
//   - None: artifacts stay directly readable on disk
//   - Zstd: best ratio, the default for archived runs
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// Posterior-draw tables dominate artifact volume (thousands of rows of
// decimal text) and compress well under any of the three real codecs.
//
// # Example
//
//	w, err := archive.NewWriter("run", archive.WithCompression(archive.Zstd))
//	if err != nil {
//	    return err
//	}
//	info, err := w.WriteDataset("clean", ds)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("wrote %s (%.0f%% saved)\n", info.Path, info.Savings())
package archive
