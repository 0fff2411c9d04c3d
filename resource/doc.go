// Package resource loads the binary assets a document refers to: images
// for pattern fills and image nodes, and font files for text.
//
// Assets are addressed by an opaque GUID. A [Provider] turns a GUID into
// bytes; [DirProvider] reads them from a directory and [MemoryProvider]
// serves them from memory. [DecodeImage] decodes the bytes into an image,
// downscaling oversized images.
package resource
