package shard

import "fmt"

// BadMagicError indicates the shard buffer does not start with the "STRI" magic.
type BadMagicError struct {
	Got [4]byte
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("shard: bad magic %q, want \"STRI\"", e.Got[:])
}

// UnsupportedVersionError indicates a version byte outside the supported set
// {3,4,5,6,7,9,10,11,12}. Versions 1, 2 predate this format and 8 is an
// intentional gap in the version history.
type UnsupportedVersionError struct {
	Version byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("shard: unsupported version %d", e.Version)
}

// BadFormatError indicates any structural decode failure: a read past the end
// of the buffer, invalid UTF-8, an inconsistent count, or an out-of-range
// index. Offset is the byte position at which the failure was detected.
type BadFormatError struct {
	Offset  int
	Message string
}

func (e *BadFormatError) Error() string {
	return fmt.Sprintf("shard: bad format at offset %d: %s", e.Offset, e.Message)
}

// badFormatf builds a BadFormatError with a formatted message.
func badFormatf(offset int, format string, args ...any) error {
	return &BadFormatError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// GunzipUnavailableError indicates a gzip-framed shard buffer was decoded
// without a GunzipFunc collaborator to decompress it.
type GunzipUnavailableError struct{}

func (e *GunzipUnavailableError) Error() string {
	return "shard: gzip-framed buffer but no gunzip collaborator configured"
}

// TransportError wraps a failure from the fetch collaborator (a non-2xx
// response, a network error, a malformed URL, etc).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shard: transport failure fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShardNotFoundError indicates the fetch collaborator reported the shard
// does not exist at the derived URL.
type ShardNotFoundError struct {
	ShardKey string
	URL      string
}

func (e *ShardNotFoundError) Error() string {
	return fmt.Sprintf("shard: not found for key %q at %s", e.ShardKey, e.URL)
}
