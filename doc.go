// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

/*
Package xpress implements an encoder for the Xpress-Huffman (MS-XCA)
compressed stream format, used by WIM archives, SMB compression and Windows
hibernation files.

Input is split into 64 KiB chunks. Each chunk is LZ77-parsed with a hash-chain
match finder over a 64 KiB sliding window, then entropy-coded with a canonical
length-limited Huffman code over a 512-symbol alphabet: 256 literal byte
values plus 256 offset/length match symbols, with symbol 256 doubling as
end-of-stream. A chunk's output is 256 header bytes holding the 512 code
lengths packed two per byte, followed by a bitstream of 16-bit little-endian
words with raw match-length extension bytes interleaved.

Any conforming Xpress-Huffman decoder (for example RtlDecompressBufferEx with
COMPRESSION_FORMAT_XPRESS_HUFF) reproduces the original input bit-exactly.
Only compression is provided.

# Compress

	out, err := xpress.Compress(data)

To reuse caller-managed output memory (no per-call output allocation):

	dst := make([]byte, xpress.MaxCompressedSize(len(data)))
	n, err := xpress.CompressInto(data, dst)
	// compressed stream is dst[:n]
*/
package xpress
