package compress

// ZstdCodec implements Codec for the Native wire format's ZSTD block
// method.
//
// Two implementations exist: the default pure-Go klauspost/compress
// decoder (zstd_pure.go) and a cgo-backed valyala/gozstd variant
// (zstd_cgo.go) behind the "nobuild" tag for builds that trade portability
// for decode speed.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

func (ZstdCodec) Method() Method { return MethodZSTD }
