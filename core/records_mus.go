package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted record types. They are written by hand
// against mus-go's primitive serializers; the record set is small enough
// that codegen is not worth a build step. Vector elements use the raw
// little-endian float32 encoding so the persisted layout stays byte-exact
// with externally generated indexes.
var (
	IDMUS              = idMUS{}
	CatalogEntryMUS    = catalogEntryMUS{}
	EmbeddingRecordMUS = embeddingRecordMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type catalogEntryMUS struct{}

func (s catalogEntryMUS) Marshal(v CatalogEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Code, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	return n
}

func (s catalogEntryMUS) Unmarshal(bs []byte) (v CatalogEntry, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Code, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s catalogEntryMUS) Size(v CatalogEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Code)
	size += ord.String.Size(v.Description)
	return size
}

type embeddingRecordMUS struct{}

func (s embeddingRecordMUS) Marshal(v EmbeddingRecord, bs []byte) (n int) {
	n = CatalogEntryMUS.Marshal(v.Entry, bs)
	n += varint.Int.Marshal(len(v.Vector), bs[n:])
	for _, f := range v.Vector {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (s embeddingRecordMUS) Unmarshal(bs []byte) (v EmbeddingRecord, n int, err error) {
	v.Entry, n, err = CatalogEntryMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var (
		length int
		n1     int
	)
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length < 0 {
		err = ErrMalformedVectorBytes
		return
	}
	if length > 0 {
		v.Vector = make([]float32, length)
		for i := 0; i < length; i++ {
			v.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
		}
	}
	return
}

func (s embeddingRecordMUS) Size(v EmbeddingRecord) (size int) {
	size = CatalogEntryMUS.Size(v.Entry)
	size += varint.Int.Size(len(v.Vector))
	for _, f := range v.Vector {
		size += raw.Float32.Size(f)
	}
	return size
}
