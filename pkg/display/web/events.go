package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame carries a new frame: cache index (2 bytes, little
	// endian) followed by the frame data.
	Frame Type = iota
	// FrameCache repeats the frame stored at the given cache index.
	FrameCache
	// FrameCacheSync carries every cache entry to a new client, each
	// as length (4 bytes), index (2 bytes) and data.
	FrameCacheSync
	// FrameSync carries the current frame to a new client.
	FrameSync
	// ClientInfo tells a new client its ID and whether frames are
	// brotli compressed.
	ClientInfo
	// ServerInfo periodically reports each client's ID and average
	// latency in milliseconds (2 bytes).
	ServerInfo
)

// Closing is sent by a client before it disconnects. Any other
// client message is a button event: the joypad.Button followed by
// its state, 0 for released and 1 for pressed.
const Closing = 255
