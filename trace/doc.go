// Package trace records timestamped CAN frames into a compact, checksummed blob.
//
// A trace is what a bus logger keeps: every frame built from an encoded message,
// stamped with the time it was sent or seen. Traces are written once by a
// Recorder and read back with Open.
//
// # Layout
//
//	+--------------------+------------------------------+
//	| header (32 bytes)  | payload (compressed records) |
//	+--------------------+------------------------------+
//
// Header fields, by byte offset:
//
//	0-1    magic 0xCA11 (always little-endian)
//	2      flags: bit 0 set for big-endian, bits 1-7 reserved (zero)
//	3      compression type (format.CompressionType)
//	4-7    frame count
//	8-11   payload size in the blob (after compression)
//	12-15  raw payload size (before compression)
//	16-23  source ID (xxHash64 of the source name)
//	24-31  checksum (xxHash64 of the raw payload)
//
// Fields from offset 4 on use the byte order recorded in the flags.
//
// Each raw payload record is 21 bytes: the timestamp in Unix microseconds
// (8 bytes, trace byte order) followed by the 13-byte frame record from
// frame.Frame.MarshalBinary.
//
// # Usage
//
//	rec, err := trace.NewRecorder(
//	    trace.WithSource("powertrain"),
//	    trace.WithCompression(format.CompressionZstd),
//	)
//	if err != nil {
//	    return err
//	}
//
//	f, _ := frame.New(0x123, msg)
//	if err := rec.Record(time.Now(), f); err != nil {
//	    return err
//	}
//
//	data, err := rec.Finish()
//
//	r, err := trace.Open(data)
//	for ts, f := range r.All() {
//	    fmt.Println(ts, f.SLCAN())
//	}
//
// # Thread Safety
//
// A Recorder is not safe for concurrent use. A Reader is immutable after Open
// and may be shared.
package trace
