// Package region implements the Linear region model and its codec.
//
// A Region holds up to 1024 chunk payloads of one 32×32 chunk area together with a
// modification timestamp per slot. Slot i covers the chunk at local position
// (i % 32, i / 32); its world coordinates are (32*regionX + i%32, 32*regionZ + i/32).
//
// # Writing
//
//	r := region.NewRegion(-1, 4)
//	if err := r.SetChunkAt(3, 7, payload, int32(time.Now().Unix())); err != nil {
//	    return err
//	}
//
//	encoder, err := region.NewEncoder(region.WithCompressionLevel(6))
//	if err != nil {
//	    return err
//	}
//	path, err := encoder.WriteFile(r, worldDir) // worldDir/r.-1.4.linear
//
// WriteFile writes to a temporary file in the target directory and renames it over
// the final name, so readers never observe a partially written region.
//
// # Reading
//
//	decoder, _ := region.NewDecoder()
//	r, err := decoder.Open("world/region/r.-1.4.linear")
//
// The region coordinates are parsed from the file name. Every structural check
// (signatures, version, payload size, chunk count) fails with a distinct error from
// the errs package; no partially decoded Region is ever returned.
//
// Neither Encoder nor Decoder holds mutable state, both are safe for concurrent use.
// Concurrent writes of the same region file are not serialized: the last rename wins.
package region
