package compress

// NoopCodec passes block payloads through unchanged, for files that
// declare MethodNone per block.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

func (NoopCodec) Method() Method { return MethodNone }

func (NoopCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (NoopCodec) Decompress(data []byte, _ int) ([]byte, error) { return data, nil }
