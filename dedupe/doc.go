// Package dedupe removes duplicate lines from large text streams.
//
// Every line is reduced to a 64-bit content hash, which is the key of a
// probing.AutoTable. Lines are not compared byte by byte, so two different
// lines whose hashes collide are treated as duplicates. With 64-bit hashes
// this is rare enough for the corpora the tools are meant for.
//
// The table can be saved after a run and loaded by the next one, so that
// several inputs are deduplicated against each other:
//
//	set, err := dedupe.Load("lines.table", probing.CompressionNone)
//	if err != nil { ... }
//	defer set.Close()
//
//	stats, err := set.Filter(os.Stdin, os.Stdout)
//	if err != nil { ... }
//
//	err = set.Save("lines.table", probing.CompressionNone)
package dedupe
